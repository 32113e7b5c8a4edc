package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/temporal"

	"github.com/halvard/teamstore/internal/model"
	"github.com/halvard/teamstore/internal/secrets"
	"github.com/halvard/teamstore/internal/workflow"
)

// TaskQueue is the Temporal task queue shared by the api and the worker.
const TaskQueue = "teamstore-tasks"

// Search attribute keys registered on the Temporal cluster. They form the
// attribute index used to list pending requests by team and requester.
var (
	teamIDAttr      = temporal.NewSearchAttributeKeyInt64("TeamID")
	requesterIDAttr = temporal.NewSearchAttributeKeyInt64("RequesterID")
	bucketNameAttr  = temporal.NewSearchAttributeKeyKeyword("BucketName")
)

// RequestService manages bucket provisioning requests. All request state
// lives in the workflow host; the service holds only workflow IDs and talks
// to instances through the host's start/signal/query/list surface.
type RequestService struct {
	db    DB
	tc    temporalclient.Client
	creds CredentialSource
	store ObjectStore
}

func NewRequestService(db DB, tc temporalclient.Client, creds CredentialSource, store ObjectStore) *RequestService {
	return &RequestService{db: db, tc: tc, creds: creds, store: store}
}

// NormalizeBucketName lower-cases the name and strips all whitespace.
func NormalizeBucketName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

// requestWorkflowID derives the workflow ID for a bucket request. One live
// request per (team, bucket) pair: a second start while the first is running
// fails with WorkflowExecutionAlreadyStarted.
func requestWorkflowID(teamID int64, bucketName string) string {
	return fmt.Sprintf("bucket-request-%d-%s", teamID, bucketName)
}

// Submit starts a new bucket request workflow and returns its request ID.
// The object-store pre-check and the eventual creation are not transactional;
// the provisioning activity handles the raced "already exists" outcome.
func (s *RequestService) Submit(ctx context.Context, requesterID, teamID int64, bucketName string) (string, error) {
	name := NormalizeBucketName(bucketName)
	if name == "" {
		return "", ErrInvalidBucketName
	}

	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return "", err
	}

	creds, err := s.creds.Get(ctx, team.Name)
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			return "", ErrCredentialsNotFound
		}
		return "", fmt.Errorf("get credentials: %w", err)
	}

	exists, err := s.store.BucketExists(ctx, creds, name)
	if err != nil {
		return "", fmt.Errorf("check bucket existence: %w", err)
	}
	if exists {
		return "", ErrBucketExists
	}

	requestID := requestWorkflowID(teamID, name)
	_, err = s.tc.ExecuteWorkflow(ctx, temporalclient.StartWorkflowOptions{
		ID:        requestID,
		TaskQueue: TaskQueue,
		TypedSearchAttributes: temporal.NewSearchAttributes(
			teamIDAttr.ValueSet(teamID),
			requesterIDAttr.ValueSet(requesterID),
			bucketNameAttr.ValueSet(name),
		),
	}, "BucketRequestWorkflow", model.BucketRequestParams{
		RequestID:   requestID,
		RequesterID: requesterID,
		TeamID:      teamID,
		TeamName:    team.Name,
		BucketName:  name,
	})
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			return "", ErrDuplicateActiveRequest
		}
		return "", fmt.Errorf("start bucket request workflow: %w", err)
	}

	return requestID, nil
}

// Decide delivers an admin decision to a pending request. The returned
// resolution lets the caller render its response; the workflow itself owns
// notification dispatch.
func (s *RequestService) Decide(ctx context.Context, requestID string, approved bool) (model.Resolution, error) {
	desc, err := s.tc.DescribeWorkflowExecution(ctx, requestID, "")
	if err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) {
			return model.Resolution{}, ErrRequestNotFound
		}
		return model.Resolution{}, fmt.Errorf("describe bucket request: %w", err)
	}
	if desc.GetWorkflowExecutionInfo().GetStatus() != enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING {
		return model.Resolution{}, ErrAlreadyResolved
	}

	// The instance may still be running while it provisions after a first
	// decision; the status query closes that window.
	statusVal, err := s.tc.QueryWorkflow(ctx, requestID, "", workflow.StatusQuery)
	if err != nil {
		return model.Resolution{}, fmt.Errorf("query request status: %w", err)
	}
	var status string
	if err := statusVal.Get(&status); err != nil {
		return model.Resolution{}, fmt.Errorf("decode request status: %w", err)
	}
	if status != model.StatusPending {
		return model.Resolution{}, ErrAlreadyResolved
	}

	detailsVal, err := s.tc.QueryWorkflow(ctx, requestID, "", workflow.DetailsQuery)
	if err != nil {
		return model.Resolution{}, fmt.Errorf("query request details: %w", err)
	}
	var details model.RequestDetails
	if err := detailsVal.Get(&details); err != nil {
		return model.Resolution{}, fmt.Errorf("decode request details: %w", err)
	}

	err = s.tc.SignalWorkflow(ctx, requestID, "", model.DecisionSignalName, model.DecisionSignal{Approved: approved})
	if err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) {
			return model.Resolution{}, ErrAlreadyResolved
		}
		return model.Resolution{}, fmt.Errorf("signal bucket request: %w", err)
	}

	return model.Resolution{
		RequesterID: details.RequesterID,
		BucketName:  details.BucketName,
	}, nil
}

// ListPendingForTeam returns all pending requests for a team. Ordering is
// host-determined.
func (s *RequestService) ListPendingForTeam(ctx context.Context, teamID int64) ([]model.RequestSummary, error) {
	query := fmt.Sprintf(
		"WorkflowType = 'BucketRequestWorkflow' AND ExecutionStatus = 'Running' AND TeamID = %d",
		teamID)
	return s.listPending(ctx, query)
}

// ListPendingForUser returns the pending requests a single requester has open
// in a team. Used to restrict non-privileged callers to their own requests.
func (s *RequestService) ListPendingForUser(ctx context.Context, requesterID, teamID int64) ([]model.RequestSummary, error) {
	query := fmt.Sprintf(
		"WorkflowType = 'BucketRequestWorkflow' AND ExecutionStatus = 'Running' AND TeamID = %d AND RequesterID = %d",
		teamID, requesterID)
	return s.listPending(ctx, query)
}

func (s *RequestService) listPending(ctx context.Context, query string) ([]model.RequestSummary, error) {
	summaries := []model.RequestSummary{}
	var nextPageToken []byte

	for {
		resp, err := s.tc.ListWorkflow(ctx, &workflowservice.ListWorkflowExecutionsRequest{
			Query:         query,
			NextPageToken: nextPageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("list bucket requests: %w", err)
		}

		for _, info := range resp.GetExecutions() {
			summaries = append(summaries, summaryFromExecution(info))
		}

		nextPageToken = resp.GetNextPageToken()
		if len(nextPageToken) == 0 {
			return summaries, nil
		}
	}
}

// summaryFromExecution builds a request summary from a visibility record,
// decoding the indexed search attributes.
func summaryFromExecution(info *workflowpb.WorkflowExecutionInfo) model.RequestSummary {
	summary := model.RequestSummary{
		RequestID: info.GetExecution().GetWorkflowId(),
	}
	if t := info.GetStartTime(); t != nil {
		summary.SubmittedAt = t.AsTime()
	}

	dc := converter.GetDefaultDataConverter()
	fields := info.GetSearchAttributes().GetIndexedFields()
	if p, ok := fields[bucketNameAttr.GetName()]; ok {
		_ = dc.FromPayload(p, &summary.BucketName)
	}
	if p, ok := fields[requesterIDAttr.GetName()]; ok {
		_ = dc.FromPayload(p, &summary.RequesterID)
	}
	return summary
}

func (s *RequestService) getTeam(ctx context.Context, teamID int64) (*model.Team, error) {
	var t model.Team
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM teams WHERE id = $1`, teamID,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get team %d: %w", teamID, err)
	}
	return &t, nil
}
