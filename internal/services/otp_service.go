package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"furnimart/internal/repositories"
)

var ErrInvalidOrExpiredCode = errors.New("invalid or expired code")

const (
	otpTTL          = 10 * time.Minute
	cleanupInterval = 5 * time.Minute
)

type OTPService interface {
	Issue(email string) error
	Verify(email, code string) error
	StartCleanup(ctx context.Context)
}

type otpService struct {
	repo   repositories.OTPRepository
	users  repositories.UserRepository
	emails EmailService
	now    func() time.Time
}

func NewOTPService(repo repositories.OTPRepository, users repositories.UserRepository, emails EmailService) OTPService {
	return &otpService{
		repo:   repo,
		users:  users,
		emails: emails,
		now:    time.Now,
	}
}

// generateCode draws a 6-digit code uniformly from [100000, 999999] using
// crypto/rand, so codes are not predictable from send times.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue stores a fresh 10-minute code for email and dispatches it. The code
// itself goes out by email only and is never logged or returned.
func (s *otpService) Issue(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	code, err := generateCode()
	if err != nil {
		return err
	}
	if _, err := s.repo.Create(email, code, s.now().Add(otpTTL)); err != nil {
		return err
	}
	if err := s.emails.SendOTPEmail(email, code); err != nil {
		// the stored row stays — it is unusable by the client anyway and
		// expires on its own
		return fmt.Errorf("dispatch otp: %w", err)
	}
	log.Printf("[otp][issue] code sent email=%s ttl=%s", email, otpTTL)
	return nil
}

// Verify consumes a live code and marks the user's email verified. The
// consume is one conditional UPDATE at the store, so a code is spendable at
// most once even under concurrent attempts.
func (s *otpService) Verify(email, code string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	ok, err := s.repo.Consume(email, code, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOrExpiredCode
	}
	if err := s.users.MarkEmailVerified(email); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	log.Printf("[otp][verify] email verified email=%s", email)
	return nil
}

// StartCleanup deletes expired rows every 5 minutes until ctx is done. A
// failed cycle is logged and does not stop future cycles.
func (s *otpService) StartCleanup(ctx context.Context) {
	go func() {
		t := time.NewTicker(cleanupInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				n, err := s.repo.DeleteExpired(s.now())
				if err != nil {
					log.Printf("[otp][cleanup] failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("[otp][cleanup] removed %d expired codes", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
