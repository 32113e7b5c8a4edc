package model

// Bucket request status constants. A request is observable as exactly one of
// these at any point in its lifetime; pending is the only non-terminal state
// from the caller's perspective (approved is a short-lived intermediate while
// provisioning runs).
const (
	StatusPending     = "pending"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusExpired     = "expired"
	StatusProvisioned = "provisioned"
	StatusFailed      = "failed"
)
