package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/placementcell/placement-portal/internal/domain"
)

const userColumns = "id, email, password_hash, password_salt, role, is_verified, otp, otp_expires_at, created_at, updated_at"

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, email string, passwordHash, passwordSalt []byte, role domain.Role, otp string, otpExpiresAt time.Time) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (email, password_hash, password_salt, role, otp, otp_expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, passwordHash, passwordSalt, role, otp, otpExpiresAt)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_account WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_account WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindVerifiedByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_account WHERE email = $1 AND is_verified = TRUE`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmailAndValidOTP(ctx context.Context, email, otp string, now time.Time) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE email = $1 AND otp = $2 AND otp_expires_at > $3
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, otp, now); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ResetCredentials(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte, otp string, otpExpiresAt time.Time) error {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            password_salt = $3,
            otp = $4,
            otp_expires_at = $5,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt, otp, otpExpiresAt)
	return err
}

func (r *UserRepository) SetOTP(ctx context.Context, id uuid.UUID, otp string, otpExpiresAt time.Time) error {
	const query = `
        UPDATE user_account
        SET otp = $2,
            otp_expires_at = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, otp, otpExpiresAt)
	return err
}

func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE user_account
        SET is_verified = TRUE,
            otp = NULL,
            otp_expires_at = NULL,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            password_salt = $3,
            otp = NULL,
            otp_expires_at = NULL,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt)
	return err
}
