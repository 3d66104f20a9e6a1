package services

import (
	"sync"
	"time"

	"furnimart/internal/models"
	"furnimart/internal/repositories"
)

// fakeUserRepo is an in-memory repositories.UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	byMail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byMail: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byMail[user.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.byMail[user.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byMail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byMail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) MarkEmailVerified(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byMail[email]; ok {
		u.EmailVerified = true
	}
	return nil
}

func testUser(email string) *models.User {
	return &models.User{Name: "Test User", Email: email, PasswordHash: "$2a$12$test"}
}

// fakeOTPRepo mimics the store's conditional-update consume under a mutex,
// the same at-most-once contract the SQL UPDATE gives.
type fakeOTPRepo struct {
	mu     sync.Mutex
	nextID int64
	codes  []*models.OtpCode
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{}
}

func (f *fakeOTPRepo) Create(email, code string, expiresAt time.Time) (*models.OtpCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rec := &models.OtpCode{ID: f.nextID, Email: email, Code: code, ExpiresAt: expiresAt}
	f.codes = append(f.codes, rec)
	cp := *rec
	return &cp, nil
}

func (f *fakeOTPRepo) Consume(email, code string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.codes {
		if rec.Email == email && rec.Code == code && !rec.Used && now.Before(rec.ExpiresAt) {
			rec.Used = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOTPRepo) DeleteExpired(now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.codes[:0]
	var n int64
	for _, rec := range f.codes {
		if rec.ExpiresAt.Before(now) {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	f.codes = kept
	return n, nil
}

// fakeEmailService records dispatched messages instead of talking SMTP.
type fakeEmailService struct {
	mu       sync.Mutex
	otps     map[string]string // email -> last code
	welcomes []string
	fail     bool
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{otps: make(map[string]string)}
}

func (f *fakeEmailService) SendOTPEmail(email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errSMTPDown
	}
	f.otps[email] = code
	return nil
}

func (f *fakeEmailService) SendWelcomeEmail(email, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errSMTPDown
	}
	f.welcomes = append(f.welcomes, email)
	return nil
}

func (f *fakeEmailService) lastOTP(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.otps[email]
}
