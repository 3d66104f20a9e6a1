package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"furnimart/internal/models"
)

type OTPRepository interface {
	Create(email, code string, expiresAt time.Time) (*models.OtpCode, error)
	Consume(email, code string, now time.Time) (bool, error)
	DeleteExpired(now time.Time) (int64, error)
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

// Create inserts a fresh code row. Every send is a new row; older unused
// codes for the same email simply age out.
func (r *otpRepository) Create(email, code string, expiresAt time.Time) (*models.OtpCode, error) {
	const q = `
		INSERT INTO otp_codes (email, code, expires_at, used)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id
	`
	rec := &models.OtpCode{Email: email, Code: code, ExpiresAt: expiresAt}
	if err := r.DB.QueryRow(q, email, code, expiresAt).Scan(&rec.ID); err != nil {
		return nil, fmt.Errorf("otp create: %w", err)
	}
	return rec, nil
}

// Consume flips used=TRUE for a matching live code in a single conditional
// UPDATE, so two concurrent verifications of the same code cannot both win.
// Zero rows affected means no valid code existed (wrong, used or expired).
func (r *otpRepository) Consume(email, code string, now time.Time) (bool, error) {
	const q = `
		UPDATE otp_codes
		SET used=TRUE
		WHERE email=$1 AND code=$2 AND used=FALSE AND expires_at > $3
		RETURNING id
	`
	var id int64
	err := r.DB.QueryRow(q, email, code, now).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("otp consume: %w", err)
	}
	return true, nil
}

func (r *otpRepository) DeleteExpired(now time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM otp_codes WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("otp delete expired: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
