package request

// SubmitBucketRequest is the request body for submitting a bucket
// provisioning request. The bucket name is normalized server-side.
type SubmitBucketRequest struct {
	RequesterID int64  `json:"requester_id" validate:"required,gt=0"`
	BucketName  string `json:"bucket_name" validate:"required,max=63"`
}

// Decision is the request body for approving or rejecting a pending bucket
// request. Approved is a pointer so that a missing field fails validation
// instead of silently rejecting.
type Decision struct {
	Approved *bool `json:"approved" validate:"required"`
}
