package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/models"
)

// userTokenRepository implements UserTokenRepository
type userTokenRepository struct {
	db *sql.DB
}

// NewUserTokenRepository creates a new user token repository
func NewUserTokenRepository(db *sql.DB) *userTokenRepository {
	return &userTokenRepository{
		db: db,
	}
}

// GetOrCreate returns the token bound to the user, storing candidate if the user has none.
//
// user_tokens.user_id is unique, so concurrent callers for the same user all get the stored token.
func (r *userTokenRepository) GetOrCreate(ctx context.Context, userID int, candidate string) (*models.UserToken, error) {
	query := `
		INSERT INTO user_tokens (user_id, token)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE user_id = user_id
	`

	if _, err := r.db.ExecContext(ctx, query, userID, candidate); err != nil {
		return nil, fmt.Errorf("failed to create user token: %w", err)
	}

	return r.getOne(ctx, `
		SELECT id, user_id, token, created_at
		FROM user_tokens
		WHERE user_id = ?
		LIMIT 1
	`, userID)
}

// GetByToken retrieves a user token by token string
func (r *userTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	return r.getOne(ctx, `
		SELECT id, user_id, token, created_at
		FROM user_tokens
		WHERE token = ?
		LIMIT 1
	`, token)
}

func (r *userTokenRepository) getOne(ctx context.Context, query string, arg any) (*models.UserToken, error) {
	userToken := &models.UserToken{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&userToken.ID,
		&userToken.UserID,
		&userToken.Token,
		&userToken.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("token")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user token: %w", err)
	}

	return userToken, nil
}

// DeleteByToken deletes a token record by token string
func (r *userTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM user_tokens WHERE token = ?`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete user token: %w", err)
	}

	return nil
}

// DeleteExpiredTokens deletes all user tokens with created_at older than or equal to expiryTime
func (r *userTokenRepository) DeleteExpiredTokens(ctx context.Context, expiryTime time.Time) (int, error) {
	query := `DELETE FROM user_tokens WHERE created_at <= ?`

	result, err := r.db.ExecContext(ctx, query, expiryTime)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
