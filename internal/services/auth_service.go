package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"furnimart/internal/middleware"
	"furnimart/internal/models"
	"furnimart/internal/repositories"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	bcryptCost = 12
	tokenTTL   = 7 * 24 * time.Hour
)

type AuthService interface {
	Signup(name, email, password string) (string, *models.User, error)
	Login(email, password string) (string, *models.User, error)
	GetUser(id int) (*models.User, error)
	HashPassword(plain string) (string, error)
	IssueToken(user *models.User) (string, error)
}

type authService struct {
	users     repositories.UserRepository
	emails    EmailService
	jwtSecret []byte
}

func NewAuthService(users repositories.UserRepository, emails EmailService, jwtSecret []byte) AuthService {
	return &authService{
		users:     users,
		emails:    emails,
		jwtSecret: jwtSecret,
	}
}

func (s *authService) GetUser(id int) (*models.User, error) {
	return s.users.GetByID(id)
}

func (s *authService) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// IssueToken signs an HS256 session token carrying user id and email,
// valid for 7 days.
func (s *authService) IssueToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) Signup(name, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	hash, err := s.HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		EmailVerified: false,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return "", nil, ErrDuplicateEmail
		}
		return "", nil, err
	}

	tokenStr, err := s.IssueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	if s.emails != nil {
		// best effort, never fails the signup
		if err := s.emails.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("[auth][signup] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}

	return tokenStr, user, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password return the same error so responses cannot be used to
// enumerate accounts.
func (s *authService) Login(email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	tokenStr, err := s.IssueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return tokenStr, user, nil
}
