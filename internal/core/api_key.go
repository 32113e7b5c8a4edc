package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/halvard/teamstore/internal/platform"
)

// APIKeyService manages API keys for the HTTP surface.
type APIKeyService struct {
	db DB
}

func NewAPIKeyService(db DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// Create generates a new API key with the given scopes, stores its hash, and
// returns the raw key. The raw key is shown to the operator exactly once.
func (s *APIKeyService) Create(ctx context.Context, name string, scopes []string) (string, error) {
	raw := platform.NewAPIKey("ts_")
	hash := sha256.Sum256([]byte(raw))

	_, err := s.db.Exec(ctx,
		`INSERT INTO api_keys (id, name, key_hash, scopes) VALUES ($1, $2, $3, $4)`,
		platform.NewID(), name, hex.EncodeToString(hash[:]), scopes,
	)
	if err != nil {
		return "", fmt.Errorf("insert api key: %w", err)
	}

	return raw, nil
}

// Revoke marks an API key as revoked.
func (s *APIKeyService) Revoke(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE api_keys SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	return nil
}
