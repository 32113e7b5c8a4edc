package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/halvard/teamstore/internal/crypto"
	"github.com/halvard/teamstore/internal/model"
)

// ErrNotFound is returned when a team has no stored credentials.
var ErrNotFound = errors.New("credentials not found")

// DB defines the database operations used by the store.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store keeps per-team object-store credentials in Postgres, with the access
// and secret keys encrypted at rest using a process-lifetime key.
type Store struct {
	db  DB
	key []byte
}

func NewStore(db DB, key []byte) *Store {
	return &Store{db: db, key: key}
}

// Get returns the decrypted credentials for a team.
func (s *Store) Get(ctx context.Context, teamName string) (model.Credentials, error) {
	var creds model.Credentials
	var accessEnc, secretEnc string

	err := s.db.QueryRow(ctx,
		`SELECT endpoint, access_key_enc, secret_key_enc FROM team_credentials WHERE team_name = $1`,
		teamName,
	).Scan(&creds.Endpoint, &accessEnc, &secretEnc)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Credentials{}, ErrNotFound
	}
	if err != nil {
		return model.Credentials{}, fmt.Errorf("get credentials for %s: %w", teamName, err)
	}

	access, err := crypto.Decrypt(accessEnc, s.key)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("decrypt access key for %s: %w", teamName, err)
	}
	secret, err := crypto.Decrypt(secretEnc, s.key)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("decrypt secret key for %s: %w", teamName, err)
	}

	creds.AccessKey = string(access)
	creds.SecretKey = string(secret)
	return creds, nil
}

// Put inserts or replaces the credentials for a team.
func (s *Store) Put(ctx context.Context, teamName string, creds model.Credentials) error {
	accessEnc, err := crypto.Encrypt([]byte(creds.AccessKey), s.key)
	if err != nil {
		return fmt.Errorf("encrypt access key: %w", err)
	}
	secretEnc, err := crypto.Encrypt([]byte(creds.SecretKey), s.key)
	if err != nil {
		return fmt.Errorf("encrypt secret key: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO team_credentials (team_name, endpoint, access_key_enc, secret_key_enc, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (team_name) DO UPDATE
		 SET endpoint = EXCLUDED.endpoint,
		     access_key_enc = EXCLUDED.access_key_enc,
		     secret_key_enc = EXCLUDED.secret_key_enc,
		     updated_at = now()`,
		teamName, creds.Endpoint, accessEnc, secretEnc,
	)
	if err != nil {
		return fmt.Errorf("store credentials for %s: %w", teamName, err)
	}
	return nil
}

// Delete removes the credentials for a team. Deleting credentials that do not
// exist is not an error.
func (s *Store) Delete(ctx context.Context, teamName string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM team_credentials WHERE team_name = $1`, teamName)
	if err != nil {
		return fmt.Errorf("delete credentials for %s: %w", teamName, err)
	}
	return nil
}
