package core

import (
	"context"
	"fmt"

	"github.com/halvard/teamstore/internal/model"
)

// CredentialService manages per-team object-store credentials. Values are
// write-only from the API's perspective: there is no read operation here, and
// only the provisioning path ever decrypts them.
type CredentialService struct {
	db    DB
	creds CredentialSource
}

func NewCredentialService(db DB, creds CredentialSource) *CredentialService {
	return &CredentialService{db: db, creds: creds}
}

// Put stores or replaces the credentials for a team.
func (s *CredentialService) Put(ctx context.Context, teamID int64, creds model.Credentials) error {
	team, err := s.teamName(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.creds.Put(ctx, team, creds); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

// Delete removes the credentials for a team.
func (s *CredentialService) Delete(ctx context.Context, teamID int64) error {
	team, err := s.teamName(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.creds.Delete(ctx, team); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}

func (s *CredentialService) teamName(ctx context.Context, teamID int64) (string, error) {
	var name string
	err := s.db.QueryRow(ctx, `SELECT name FROM teams WHERE id = $1`, teamID).Scan(&name)
	if err != nil {
		return "", ErrTeamNotFound
	}
	return name, nil
}
