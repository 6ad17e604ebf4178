package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/satari/satari-api/internal/database"
	"github.com/satari/satari-api/internal/models"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
	ErrUserNotFound   = errors.New("user not found")
)

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, username, email, password_hash, ip_address, token_version,
		avatar, mfa_enabled, global_name, verified, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IPAddress,
		&user.TokenVersion, &user.Avatar, &user.MFAEnabled, &user.GlobalName,
		&user.Verified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a user with an initial token version of 1. Username and
// email are checked first so the caller can tell which one collided.
func (s *UserService) Register(ctx context.Context, username, email, passwordHash, ipAddress string) (*models.User, error) {
	var existingUsername string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT username FROM users WHERE username = $1 OR email = $2
	`, username, email).Scan(&existingUsername)
	if err == nil {
		if existingUsername == username {
			return nil, ErrUsernameExists
		}
		return nil, ErrEmailExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, ip_address)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, username, email, passwordHash, ipAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE username = $1
	`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// IncrementTokenVersion bumps the counter that would invalidate previously
// issued tokens. Verification does not check it yet; signup bumps it anyway.
func (s *UserService) IncrementTokenVersion(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE users SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}
