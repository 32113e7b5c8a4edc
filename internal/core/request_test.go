package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	commonpb "go.temporal.io/api/common/v1"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
	temporalmocks "go.temporal.io/sdk/mocks"

	"github.com/halvard/teamstore/internal/model"
	"github.com/halvard/teamstore/internal/secrets"
	"github.com/halvard/teamstore/internal/workflow"
)

var testCreds = model.Credentials{
	Endpoint:  "http://minio.local:9000",
	AccessKey: "AKIA123",
	SecretKey: "secret",
}

func teamRow(id int64, name string) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int64)) = id
		*(dest[1].(*string)) = name
		*(dest[2].(*time.Time)) = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		return nil
	}}
}

func newRequestService(t *testing.T) (*RequestService, *mockDB, *temporalmocks.Client, *mockCredentialSource, *mockObjectStore) {
	t.Helper()
	db := &mockDB{}
	tc := &temporalmocks.Client{}
	creds := &mockCredentialSource{}
	store := &mockObjectStore{}
	return NewRequestService(db, tc, creds, store), db, tc, creds, store
}

func TestNormalizeBucketName(t *testing.T) {
	assert.Equal(t, "mybucket", NormalizeBucketName("  My Bucket "))
	assert.Equal(t, "data-2026", NormalizeBucketName("Data-2026"))
	assert.Equal(t, "", NormalizeBucketName(" \t\n"))
}

// ---------- Submit ----------

func TestRequestService_Submit_Success(t *testing.T) {
	svc, db, tc, creds, store := newRequestService(t)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{int64(3)}).Return(teamRow(3, "team-a"))
	creds.On("Get", ctx, "team-a").Return(testCreds, nil)
	store.On("BucketExists", ctx, testCreds, "mybucket").Return(false, nil)
	tc.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(opts temporalclient.StartWorkflowOptions) bool {
		return opts.ID == "bucket-request-3-mybucket" && opts.TaskQueue == TaskQueue
	}), "BucketRequestWorkflow", mock.MatchedBy(func(params model.BucketRequestParams) bool {
		return params.RequestID == "bucket-request-3-mybucket" &&
			params.RequesterID == 7 &&
			params.TeamID == 3 &&
			params.TeamName == "team-a" &&
			params.BucketName == "mybucket"
	})).Return(&temporalmocks.WorkflowRun{}, nil)

	requestID, err := svc.Submit(ctx, 7, 3, "  My Bucket ")
	require.NoError(t, err)
	assert.Equal(t, "bucket-request-3-mybucket", requestID)
	db.AssertExpectations(t)
	tc.AssertExpectations(t)
	creds.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestRequestService_Submit_InvalidName(t *testing.T) {
	svc, _, tc, _, _ := newRequestService(t)

	_, err := svc.Submit(context.Background(), 7, 3, "   ")
	require.ErrorIs(t, err, ErrInvalidBucketName)
	tc.AssertNotCalled(t, "ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_Submit_TeamNotFound(t *testing.T) {
	svc, db, tc, _, _ := newRequestService(t)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{int64(99)}).Return(&mockRow{
		scanFunc: func(dest ...any) error { return pgx.ErrNoRows },
	})

	_, err := svc.Submit(ctx, 7, 99, "data")
	require.ErrorIs(t, err, ErrTeamNotFound)
	tc.AssertNotCalled(t, "ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_Submit_MissingCredentials(t *testing.T) {
	svc, db, _, creds, _ := newRequestService(t)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{int64(3)}).Return(teamRow(3, "team-a"))
	creds.On("Get", ctx, "team-a").Return(model.Credentials{}, secrets.ErrNotFound)

	_, err := svc.Submit(ctx, 7, 3, "data")
	require.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestRequestService_Submit_BucketExists(t *testing.T) {
	svc, db, tc, creds, store := newRequestService(t)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{int64(3)}).Return(teamRow(3, "team-a"))
	creds.On("Get", ctx, "team-a").Return(testCreds, nil)
	store.On("BucketExists", ctx, testCreds, "data").Return(true, nil)

	_, err := svc.Submit(ctx, 7, 3, "data")
	require.ErrorIs(t, err, ErrBucketExists)
	tc.AssertNotCalled(t, "ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_Submit_DuplicateActiveRequest(t *testing.T) {
	svc, db, tc, creds, store := newRequestService(t)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{int64(3)}).Return(teamRow(3, "team-a"))
	creds.On("Get", ctx, "team-a").Return(testCreds, nil)
	store.On("BucketExists", ctx, testCreds, "data").Return(false, nil)
	tc.On("ExecuteWorkflow", mock.Anything, mock.Anything, "BucketRequestWorkflow", mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "req-1", "run-1"))

	_, err := svc.Submit(ctx, 7, 3, "data")
	require.ErrorIs(t, err, ErrDuplicateActiveRequest)
}

// ---------- Decide ----------

func runningDescription() *workflowservice.DescribeWorkflowExecutionResponse {
	return &workflowservice.DescribeWorkflowExecutionResponse{
		WorkflowExecutionInfo: &workflowpb.WorkflowExecutionInfo{
			Status: enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING,
		},
	}
}

func TestRequestService_Decide_Approve(t *testing.T) {
	svc, _, tc, _, _ := newRequestService(t)
	ctx := context.Background()
	requestID := "bucket-request-3-data"

	tc.On("DescribeWorkflowExecution", ctx, requestID, "").Return(runningDescription(), nil)
	tc.On("QueryWorkflow", ctx, requestID, "", workflow.StatusQuery).
		Return(testEncodedValue{model.StatusPending}, nil)
	tc.On("QueryWorkflow", ctx, requestID, "", workflow.DetailsQuery).
		Return(testEncodedValue{model.RequestDetails{RequesterID: 7, TeamID: 3, BucketName: "data"}}, nil)
	tc.On("SignalWorkflow", ctx, requestID, "", model.DecisionSignalName, model.DecisionSignal{Approved: true}).
		Return(nil)

	resolution, err := svc.Decide(ctx, requestID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resolution.RequesterID)
	assert.Equal(t, "data", resolution.BucketName)
	tc.AssertExpectations(t)
}

func TestRequestService_Decide_NotFound(t *testing.T) {
	svc, _, tc, _, _ := newRequestService(t)
	ctx := context.Background()

	tc.On("DescribeWorkflowExecution", ctx, "missing", "").
		Return(nil, serviceerror.NewNotFound("workflow not found"))

	_, err := svc.Decide(ctx, "missing", true)
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRequestService_Decide_Completed_AlreadyResolved(t *testing.T) {
	svc, _, tc, _, _ := newRequestService(t)
	ctx := context.Background()
	requestID := "bucket-request-3-data"

	tc.On("DescribeWorkflowExecution", ctx, requestID, "").Return(
		&workflowservice.DescribeWorkflowExecutionResponse{
			WorkflowExecutionInfo: &workflowpb.WorkflowExecutionInfo{
				Status: enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED,
			},
		}, nil)

	_, err := svc.Decide(ctx, requestID, false)
	require.ErrorIs(t, err, ErrAlreadyResolved)
	tc.AssertNotCalled(t, "SignalWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_Decide_PastPending_AlreadyResolved(t *testing.T) {
	svc, _, tc, _, _ := newRequestService(t)
	ctx := context.Background()
	requestID := "bucket-request-3-data"

	tc.On("DescribeWorkflowExecution", ctx, requestID, "").Return(runningDescription(), nil)
	tc.On("QueryWorkflow", ctx, requestID, "", workflow.StatusQuery).
		Return(testEncodedValue{model.StatusApproved}, nil)

	_, err := svc.Decide(ctx, requestID, false)
	require.ErrorIs(t, err, ErrAlreadyResolved)
	tc.AssertNotCalled(t, "SignalWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// ---------- Listing ----------

func executionInfo(t *testing.T, workflowID, bucketName string, requesterID int64) *workflowpb.WorkflowExecutionInfo {
	t.Helper()
	dc := converter.GetDefaultDataConverter()
	namePayload, err := dc.ToPayload(bucketName)
	require.NoError(t, err)
	requesterPayload, err := dc.ToPayload(requesterID)
	require.NoError(t, err)

	return &workflowpb.WorkflowExecutionInfo{
		Execution: &commonpb.WorkflowExecution{WorkflowId: workflowID},
		SearchAttributes: &commonpb.SearchAttributes{
			IndexedFields: map[string]*commonpb.Payload{
				"BucketName":  namePayload,
				"RequesterID": requesterPayload,
			},
		},
	}
}

func TestRequestService_ListPendingForTeam(t *testing.T) {
	svc, _, tc, _, _ := newRequestService(t)
	ctx := context.Background()

	tc.On("ListWorkflow", ctx, mock.MatchedBy(func(req *workflowservice.ListWorkflowExecutionsRequest) bool {
		return req.Query == "WorkflowType = 'BucketRequestWorkflow' AND ExecutionStatus = 'Running' AND TeamID = 3" &&
			len(req.NextPageToken) == 0
	})).Return(&workflowservice.ListWorkflowExecutionsResponse{
		Executions: []*workflowpb.WorkflowExecutionInfo{
			executionInfo(t, "bucket-request-3-data", "data", 7),
		},
		NextPageToken: []byte("page2"),
	}, nil)
	tc.On("ListWorkflow", ctx, mock.MatchedBy(func(req *workflowservice.ListWorkflowExecutionsRequest) bool {
		return string(req.NextPageToken) == "page2"
	})).Return(&workflowservice.ListWorkflowExecutionsResponse{
		Executions: []*workflowpb.WorkflowExecutionInfo{
			executionInfo(t, "bucket-request-3-logs", "logs", 9),
		},
	}, nil)

	summaries, err := svc.ListPendingForTeam(ctx, 3)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "bucket-request-3-data", summaries[0].RequestID)
	assert.Equal(t, "data", summaries[0].BucketName)
	assert.Equal(t, int64(7), summaries[0].RequesterID)
	assert.Equal(t, "logs", summaries[1].BucketName)
	assert.Equal(t, int64(9), summaries[1].RequesterID)
	tc.AssertExpectations(t)
}

func TestRequestService_ListPendingForUser_QueryFilter(t *testing.T) {
	svc, _, tc, _, _ := newRequestService(t)
	ctx := context.Background()

	tc.On("ListWorkflow", ctx, mock.MatchedBy(func(req *workflowservice.ListWorkflowExecutionsRequest) bool {
		return req.Query == "WorkflowType = 'BucketRequestWorkflow' AND ExecutionStatus = 'Running' AND TeamID = 3 AND RequesterID = 7"
	})).Return(&workflowservice.ListWorkflowExecutionsResponse{}, nil)

	summaries, err := svc.ListPendingForUser(ctx, 7, 3)
	require.NoError(t, err)
	assert.Empty(t, summaries)
	tc.AssertExpectations(t)
}

func TestRequestService_ListPending_Error(t *testing.T) {
	svc, _, tc, _, _ := newRequestService(t)
	ctx := context.Background()

	tc.On("ListWorkflow", ctx, mock.Anything).Return(nil, errors.New("visibility store down"))

	_, err := svc.ListPendingForTeam(ctx, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list bucket requests")
}
