package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/dberrors"
	"github.com/lppm/research-portal/internal/pkg/logger"
)

// TokenRepository handles issued access token records
type TokenRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(database *db.PostgresDB) *TokenRepository {
	return &TokenRepository{db: database, sb: newBuilder()}
}

// CreateToken records an issued token id
func (r *TokenRepository) CreateToken(ctx context.Context, token *models.AccessToken) error {
	sql, args, err := r.sb.Insert("access_tokens").
		Columns("user_id", "token_id", "expires_at", "revoked", "created_at").
		Values(token.UserID, token.TokenID, token.ExpiresAt, false, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create token SQL")
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&token.ID, &token.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "access_tokens_token_id_unique") {
			logger.Warn().Str("tokenID", token.TokenID).Msg("Attempted to create duplicate token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("userID", token.UserID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// GetActive returns the token record for tokenID, failing when it is unknown, revoked or expired.
func (r *TokenRepository) GetActive(ctx context.Context, tokenID string) (*models.AccessToken, error) {
	sql, args, err := r.sb.Select("id", "user_id", "token_id", "expires_at", "revoked", "created_at").
		From("access_tokens").
		Where(squirrel.Eq{"token_id": tokenID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	var t models.AccessToken
	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&t.ID, &t.UserID, &t.TokenID, &t.ExpiresAt, &t.Revoked, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error retrieving token: %w", err)
	}

	if t.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if t.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}
	return &t, nil
}

// RevokeToken revokes a token
func (r *TokenRepository) RevokeToken(ctx context.Context, tokenID string) error {
	sql, args, err := r.sb.Update("access_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"token_id": tokenID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("tokenID", tokenID).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenInvalid
	}
	return nil
}

// RevokeAllUserTokens revokes every active token of a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("access_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"user_id": userID, "revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke all user tokens query: %w", err)
	}

	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing revoke all user tokens query")
		return fmt.Errorf("error revoking user tokens: %w", err)
	}
	return nil
}

// CleanupExpiredTokens removes expired tokens and revoked tokens older than 30 days
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	now := time.Now()
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour)

	sql, args, err := r.sb.Delete("access_tokens").
		Where(squirrel.Or{
			squirrel.Lt{"expires_at": now},
			squirrel.And{
				squirrel.Eq{"revoked": true},
				squirrel.Lt{"created_at": thirtyDaysAgo},
			},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build cleanup tokens query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup tokens query")
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}

	deleted := tag.RowsAffected()
	logger.Info().Int64("deletedCount", deleted).Msg("Cleaned up expired/old revoked tokens")
	return deleted, nil
}
