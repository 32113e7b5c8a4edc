package workflow

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/halvard/teamstore/internal/activity"
	"github.com/halvard/teamstore/internal/model"
)

// DecisionTimeout is how long a bucket request stays open for an admin
// decision before it expires. The boundary is inclusive: a request exactly at
// the deadline with no decision is expired.
const DecisionTimeout = 24 * time.Hour

// StatusQuery and DetailsQuery are the query handler names exposed by
// BucketRequestWorkflow.
const (
	StatusQuery  = "status"
	DetailsQuery = "details"
)

// BucketRequestWorkflow is the approval state machine for a team bucket
// request. It suspends until an admin delivers a decision signal or the 24h
// deadline elapses, provisions the bucket on approval, and notifies the
// requester of the outcome. The workflow never fails on collaborator errors;
// every branch resolves to a terminal status carried in the result.
func BucketRequestWorkflow(ctx workflow.Context, params model.BucketRequestParams) (model.BucketRequestResult, error) {
	logger := workflow.GetLogger(ctx)
	status := model.StatusPending

	err := workflow.SetQueryHandler(ctx, StatusQuery, func() (string, error) {
		return status, nil
	})
	if err != nil {
		return model.BucketRequestResult{}, err
	}
	err = workflow.SetQueryHandler(ctx, DetailsQuery, func() (model.RequestDetails, error) {
		return model.RequestDetails{
			RequesterID: params.RequesterID,
			TeamID:      params.TeamID,
			BucketName:  params.BucketName,
		}, nil
	})
	if err != nil {
		return model.BucketRequestResult{}, err
	}

	// Suspend until a decision signal arrives or the deadline elapses.
	// The selector registers a condition wait with the host; no worker
	// resources are held while pending.
	decisionCh := workflow.GetSignalChannel(ctx, model.DecisionSignalName)
	var decision model.DecisionSignal
	decided := false

	selector := workflow.NewSelector(ctx)
	selector.AddReceive(decisionCh, func(c workflow.ReceiveChannel, _ bool) {
		c.Receive(ctx, &decision)
		decided = true
	})
	selector.AddFuture(workflow.NewTimer(ctx, DecisionTimeout), func(workflow.Future) {})
	selector.Select(ctx)

	if !decided {
		// The timer fired, but a signal buffered in the same instant wins.
		decided = decisionCh.ReceiveAsync(&decision)
	}

	if !decided {
		status = model.StatusExpired
		logger.Info("bucket request expired without decision",
			"request_id", params.RequestID, "bucket", params.BucketName)
		return model.BucketRequestResult{
			Status:  status,
			Message: "no decision within 24 hours",
		}, nil
	}

	// The decision is set exactly once; any signal arriving from here on is
	// dropped when the workflow completes.

	if !decision.Approved {
		status = model.StatusRejected
		notifyRequester(ctx, params,
			fmt.Sprintf("Your request for bucket %q in team %s was rejected.", params.BucketName, params.TeamName))
		return model.BucketRequestResult{
			Status:  status,
			Message: "bucket request rejected",
		}, nil
	}

	status = model.StatusApproved

	actx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:    3,
			InitialInterval:    1 * time.Second,
			MaximumInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
		},
	})

	var res activity.ProvisionResult
	err = workflow.ExecuteActivity(actx, "ProvisionBucket", activity.ProvisionBucketParams{
		TeamID:     params.TeamID,
		TeamName:   params.TeamName,
		BucketName: params.BucketName,
	}).Get(ctx, &res)

	var message string
	switch {
	case err != nil:
		status = model.StatusFailed
		message = fmt.Sprintf("provisioning failed: %s", err.Error())
	case !res.Success:
		status = model.StatusFailed
		message = fmt.Sprintf("provisioning failed: %s", res.Message)
	default:
		status = model.StatusProvisioned
		message = res.Message
	}

	if status == model.StatusProvisioned {
		notifyRequester(ctx, params,
			fmt.Sprintf("Your request for bucket %q in team %s was approved and the bucket is ready.", params.BucketName, params.TeamName))
	} else {
		notifyRequester(ctx, params,
			fmt.Sprintf("Your request for bucket %q in team %s was approved, but %s", params.BucketName, params.TeamName, message))
	}

	return model.BucketRequestResult{Status: status, Message: message}, nil
}

// notifyRequester dispatches the single terminal notification to the
// requester. Dispatch failures are logged but never fail the workflow.
func notifyRequester(ctx workflow.Context, params model.BucketRequestParams, message string) {
	nctx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:    10,
			InitialInterval:    5 * time.Second,
			MaximumInterval:    5 * time.Minute,
			BackoffCoefficient: 2.0,
		},
	})

	requesterID := params.RequesterID
	err := workflow.ExecuteActivity(nctx, "DispatchNotification", activity.DispatchNotificationParams{
		Targets: []activity.NotificationTarget{{UserID: &requesterID}},
		Message: message,
	}).Get(ctx, nil)
	if err != nil {
		workflow.GetLogger(ctx).Error("notification dispatch failed",
			"request_id", params.RequestID,
			"requester_id", params.RequesterID,
			"error", err)
	}
}
