package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	temporalclient "go.temporal.io/sdk/client"

	"github.com/halvard/teamstore/internal/model"
)

// DB defines the database operations used by core services.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CredentialSource reads and writes a team's object-store credentials.
// *secrets.Store satisfies this interface.
type CredentialSource interface {
	Get(ctx context.Context, teamName string) (model.Credentials, error)
	Put(ctx context.Context, teamName string, creds model.Credentials) error
	Delete(ctx context.Context, teamName string) error
}

// ObjectStore defines the bucket operations used by core services.
// *objectstore.Client satisfies this interface.
type ObjectStore interface {
	BucketExists(ctx context.Context, creds model.Credentials, name string) (bool, error)
	DeleteBucket(ctx context.Context, creds model.Credentials, name string) error
	ListBuckets(ctx context.Context, creds model.Credentials) ([]string, error)
}

type Services struct {
	Team         *TeamService
	Credential   *CredentialService
	Request      *RequestService
	Bucket       *BucketService
	Notification *NotificationService
	APIKey       *APIKeyService
}

func NewServices(db DB, tc temporalclient.Client, creds CredentialSource, store ObjectStore) *Services {
	return &Services{
		Team:         NewTeamService(db),
		Credential:   NewCredentialService(db, creds),
		Request:      NewRequestService(db, tc, creds, store),
		Bucket:       NewBucketService(db, creds, store),
		Notification: NewNotificationService(db),
		APIKey:       NewAPIKeyService(db),
	}
}
