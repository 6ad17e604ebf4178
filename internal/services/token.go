package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/satari/satari-api/internal/database"
)

// TokenService records every issued session token against its user. The
// records are bookkeeping only; verification never reads them back.
type TokenService struct {
	db *database.DB
}

func NewTokenService(db *database.DB) *TokenService {
	return &TokenService{db: db}
}

func (s *TokenService) Store(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO user_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	return err
}

func (s *TokenService) CleanupExpired(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM user_tokens WHERE expires_at < NOW()`)
	return err
}
