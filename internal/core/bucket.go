package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/halvard/teamstore/internal/model"
	"github.com/halvard/teamstore/internal/secrets"
)

// BucketService answers direct object-store queries for a team. All calls go
// straight to the team's endpoint; nothing is cached.
type BucketService struct {
	db    DB
	creds CredentialSource
	store ObjectStore
}

func NewBucketService(db DB, creds CredentialSource, store ObjectStore) *BucketService {
	return &BucketService{db: db, creds: creds, store: store}
}

// List returns the names of all buckets on the team's object store.
func (s *BucketService) List(ctx context.Context, teamID int64) ([]string, error) {
	creds, err := s.teamCredentials(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.store.ListBuckets(ctx, creds)
}

// Delete removes a bucket from the team's object store. The bucket must
// exist.
func (s *BucketService) Delete(ctx context.Context, teamID int64, bucketName string) error {
	name := NormalizeBucketName(bucketName)
	if name == "" {
		return ErrInvalidBucketName
	}

	creds, err := s.teamCredentials(ctx, teamID)
	if err != nil {
		return err
	}

	exists, err := s.store.BucketExists(ctx, creds, name)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		return ErrBucketNotFound
	}

	return s.store.DeleteBucket(ctx, creds, name)
}

func (s *BucketService) teamCredentials(ctx context.Context, teamID int64) (model.Credentials, error) {
	var name string
	if err := s.db.QueryRow(ctx, `SELECT name FROM teams WHERE id = $1`, teamID).Scan(&name); err != nil {
		return model.Credentials{}, ErrTeamNotFound
	}

	c, err := s.creds.Get(ctx, name)
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			return model.Credentials{}, ErrCredentialsNotFound
		}
		return model.Credentials{}, fmt.Errorf("get credentials: %w", err)
	}
	return c, nil
}
