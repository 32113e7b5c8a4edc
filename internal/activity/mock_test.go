package activity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/halvard/teamstore/internal/model"
)

// mockDB implements the DB interface for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// mockPublisher implements the Publisher interface for testing.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic, message string) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

// mockCredentialSource implements the CredentialSource interface for testing.
type mockCredentialSource struct {
	mock.Mock
}

func (m *mockCredentialSource) Get(ctx context.Context, teamName string) (model.Credentials, error) {
	args := m.Called(ctx, teamName)
	return args.Get(0).(model.Credentials), args.Error(1)
}

// mockObjectStore implements the ObjectStore interface for testing.
type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) BucketExists(ctx context.Context, creds model.Credentials, name string) (bool, error) {
	args := m.Called(ctx, creds, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockObjectStore) CreateBucket(ctx context.Context, creds model.Credentials, name string) error {
	args := m.Called(ctx, creds, name)
	return args.Error(0)
}
