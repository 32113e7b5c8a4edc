package model

import "time"

// DecisionSignalName is the signal delivered to a pending bucket request
// workflow when an admin approves or rejects it.
const DecisionSignalName = "decision"

// DecisionSignal carries an admin's decision on a pending bucket request.
type DecisionSignal struct {
	Approved bool `json:"approved"`
}

// BucketRequestParams is the immutable input of a bucket request workflow.
// BucketName is normalized (lower-cased, whitespace stripped) before the
// workflow is started.
type BucketRequestParams struct {
	RequestID   string `json:"request_id"`
	RequesterID int64  `json:"requester_id"`
	TeamID      int64  `json:"team_id"`
	TeamName    string `json:"team_name"`
	BucketName  string `json:"bucket_name"`
}

// BucketRequestResult is the terminal outcome reported by the workflow.
type BucketRequestResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RequestDetails is returned by the workflow's "details" query handler.
type RequestDetails struct {
	RequesterID int64  `json:"requester_id"`
	TeamID      int64  `json:"team_id"`
	BucketName  string `json:"bucket_name"`
}

// RequestSummary describes one pending bucket request, with enough
// information for an approver to act without a further round trip.
type RequestSummary struct {
	RequestID   string    `json:"request_id"`
	RequesterID int64     `json:"requester_id"`
	BucketName  string    `json:"bucket_name"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Resolution is returned by Decide so the caller can render its response.
// Notification dispatch is owned by the workflow, not the caller.
type Resolution struct {
	RequesterID int64  `json:"requester_id"`
	BucketName  string `json:"bucket_name"`
}
