package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// KeysRepo reads and issues back-office API keys through sqlx
type KeysRepo struct {
	db *sqlx.DB
}

func NewApiKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

// GetStatus returns the key row, or (nil, nil) when the key is unknown
func (r *KeysRepo) GetStatus(ctx context.Context, key string) (*entities.ApiKey, error) {
	var keyRes entities.ApiKey

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(constants.GetStatusByApiKey), key).StructScan(&keyRes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch api key: %w", err)
	}

	return &keyRes, nil
}

// Create issues a new active key and returns it
func (r *KeysRepo) Create(ctx context.Context, label string) (string, error) {
	key := uuid.New().String()

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(constants.InsertApiKey), key, label, true); err != nil {
		return "", fmt.Errorf("failed to insert api key: %w", err)
	}
	return key, nil
}

// Revoke marks a key inactive
func (r *KeysRepo) Revoke(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(constants.RevokeApiKey), false, key); err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	return nil
}
