package activity

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/halvard/teamstore/internal/model"
	"github.com/halvard/teamstore/internal/secrets"
)

// CredentialSource provides a team's object-store credentials.
// *secrets.Store satisfies this interface.
type CredentialSource interface {
	Get(ctx context.Context, teamName string) (model.Credentials, error)
}

// ObjectStore defines the bucket operations used by the provisioning activity.
// *objectstore.Client satisfies this interface.
type ObjectStore interface {
	BucketExists(ctx context.Context, creds model.Credentials, name string) (bool, error)
	CreateBucket(ctx context.Context, creds model.Credentials, name string) error
}

// Provision contains the bucket provisioning activity. All mutation of
// external object-store state is funneled through here.
type Provision struct {
	creds CredentialSource
	store ObjectStore
}

// NewProvision creates a new Provision activity struct.
func NewProvision(creds CredentialSource, store ObjectStore) *Provision {
	return &Provision{creds: creds, store: store}
}

// ProvisionBucketParams holds the parameters for ProvisionBucket.
type ProvisionBucketParams struct {
	TeamID     int64  `json:"team_id"`
	TeamName   string `json:"team_name"`
	BucketName string `json:"bucket_name"`
}

// ProvisionResult is the structured outcome of a provisioning attempt.
// Expected failures (the bucket already exists because a concurrent creation
// won the race) are reported here rather than as errors, so host-level
// retries stay safe.
type ProvisionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProvisionBucket creates the requested bucket on the team's object store.
// It is idempotent: re-invocation for a bucket that already exists returns a
// structured failure, never a destructive error. Transient store errors are
// returned as errors and retried by the host's retry policy.
func (a *Provision) ProvisionBucket(ctx context.Context, params ProvisionBucketParams) (ProvisionResult, error) {
	logger := activity.GetLogger(ctx)

	creds, err := a.creds.Get(ctx, params.TeamName)
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			// Retrying cannot help until someone stores credentials.
			return ProvisionResult{}, temporal.NewNonRetryableApplicationError(
				fmt.Sprintf("no object-store credentials for team %s", params.TeamName),
				"MISSING_CREDENTIALS", err)
		}
		return ProvisionResult{}, err
	}

	exists, err := a.store.BucketExists(ctx, creds, params.BucketName)
	if err != nil {
		return ProvisionResult{}, err
	}
	if exists {
		logger.Warn("bucket already exists, skipping creation",
			"team", params.TeamName, "bucket", params.BucketName)
		return ProvisionResult{Success: false, Message: "bucket already exists"}, nil
	}

	if err := a.store.CreateBucket(ctx, creds, params.BucketName); err != nil {
		return ProvisionResult{}, err
	}

	return ProvisionResult{
		Success: true,
		Message: fmt.Sprintf("bucket %s created", params.BucketName),
	}, nil
}
