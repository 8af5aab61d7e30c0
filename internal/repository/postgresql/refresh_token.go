package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/orbithr/hr-backend-go/internal/pkg/database"
)

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked server-side. Tokens are stored hashed; a leaked table row is not
// enough to mint a session.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, employeeID string, token string, expiresAt int64) error
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllForEmployee(ctx context.Context, employeeID string) error
}

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

func (r *refreshTokenRepositoryImpl) hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (r *refreshTokenRepositoryImpl) CreateRefreshToken(ctx context.Context, employeeID string, token string, expiresAt int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (employee_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`

	_, err := q.Exec(ctx, query, employeeID, r.hashToken(token), time.Unix(expiresAt, 0).UTC())
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// IsRefreshTokenValid reports whether the token is known, unrevoked and
// unexpired. An unknown token is invalid: only tokens this server issued
// and stored can be exchanged.
func (r *refreshTokenRepositoryImpl) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM refresh_tokens
		WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > NOW()
	`

	var count int
	if err := q.QueryRow(ctx, query, r.hashToken(token)).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return count > 0, nil
}

func (r *refreshTokenRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = $1 AND revoked_at IS NULL`,
		r.hashToken(token),
	)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

func (r *refreshTokenRepositoryImpl) RevokeAllForEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE employee_id = $1 AND revoked_at IS NULL`,
		employeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for employee %s: %w", employeeID, err)
	}

	return nil
}
