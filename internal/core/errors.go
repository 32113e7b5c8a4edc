package core

import "errors"

var (
	// ErrDuplicateActiveRequest means a live bucket request already exists
	// for the same (team, bucket) pair.
	ErrDuplicateActiveRequest = errors.New("an active request for this bucket already exists")

	// ErrAlreadyResolved means a decision was attempted against a request
	// that is no longer pending.
	ErrAlreadyResolved = errors.New("bucket request already resolved")

	// ErrBucketExists means the requested bucket already exists on the
	// team's object store.
	ErrBucketExists = errors.New("bucket already exists")

	// ErrInvalidBucketName means the bucket name is empty after
	// normalization.
	ErrInvalidBucketName = errors.New("invalid bucket name")

	ErrBucketNotFound      = errors.New("bucket not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrRequestNotFound     = errors.New("bucket request not found")
	ErrCredentialsNotFound = errors.New("no object-store credentials for team")
)
