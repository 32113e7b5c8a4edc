package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"go.temporal.io/sdk/converter"

	"github.com/halvard/teamstore/internal/model"
)

// ---------- Mock DB ----------

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

// ---------- Mock Row ----------

// mockRow implements pgx.Row for testing.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// ---------- Mock Rows ----------

// mockRows implements pgx.Rows for testing.
// It iterates through a list of scan functions, one per row.
type mockRows struct {
	callIndex int
	scanFuncs []func(dest ...any) error
	err       error
}

func newMockRows(scanFuncs ...func(dest ...any) error) *mockRows {
	return &mockRows{scanFuncs: scanFuncs}
}

func (m *mockRows) Next() bool {
	return m.callIndex < len(m.scanFuncs)
}

func (m *mockRows) Scan(dest ...any) error {
	if m.callIndex < len(m.scanFuncs) {
		fn := m.scanFuncs[m.callIndex]
		m.callIndex++
		return fn(dest...)
	}
	return nil
}

func (m *mockRows) Err() error                                   { return m.err }
func (m *mockRows) Close()                                       {}
func (m *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *mockRows) RawValues() [][]byte                          { return nil }
func (m *mockRows) Values() ([]any, error)                       { return nil, nil }
func (m *mockRows) Conn() *pgx.Conn                              { return nil }

// ---------- Collaborator mocks ----------

// mockCredentialSource implements the CredentialSource interface for testing.
type mockCredentialSource struct {
	mock.Mock
}

func (m *mockCredentialSource) Get(ctx context.Context, teamName string) (model.Credentials, error) {
	args := m.Called(ctx, teamName)
	return args.Get(0).(model.Credentials), args.Error(1)
}

func (m *mockCredentialSource) Put(ctx context.Context, teamName string, creds model.Credentials) error {
	args := m.Called(ctx, teamName, creds)
	return args.Error(0)
}

func (m *mockCredentialSource) Delete(ctx context.Context, teamName string) error {
	args := m.Called(ctx, teamName)
	return args.Error(0)
}

// mockObjectStore implements the ObjectStore interface for testing.
type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) BucketExists(ctx context.Context, creds model.Credentials, name string) (bool, error) {
	args := m.Called(ctx, creds, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockObjectStore) DeleteBucket(ctx context.Context, creds model.Credentials, name string) error {
	args := m.Called(ctx, creds, name)
	return args.Error(0)
}

func (m *mockObjectStore) ListBuckets(ctx context.Context, creds model.Credentials) ([]string, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// ---------- Encoded value ----------

// testEncodedValue implements converter.EncodedValue for mocking
// QueryWorkflow results. The wrapped value round-trips through the default
// data converter like a real query result would.
type testEncodedValue struct {
	v any
}

func (e testEncodedValue) HasValue() bool {
	return e.v != nil
}

func (e testEncodedValue) Get(valuePtr any) error {
	dc := converter.GetDefaultDataConverter()
	p, err := dc.ToPayload(e.v)
	if err != nil {
		return err
	}
	return dc.FromPayload(p, valuePtr)
}
