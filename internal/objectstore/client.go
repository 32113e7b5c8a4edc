package objectstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/halvard/teamstore/internal/model"
)

// Client performs bucket operations against a team's S3-compatible endpoint
// (MinIO, Ceph RGW). Credentials vary per team, so every call takes them
// explicitly; the underlying SDK client is constructed per call.
type Client struct {
	logger zerolog.Logger
}

func NewClient(logger zerolog.Logger) *Client {
	return &Client{
		logger: logger.With().Str("component", "objectstore").Logger(),
	}
}

// s3Client returns an S3 client configured for the team's endpoint.
func (c *Client) s3Client(creds model.Credentials) *s3.Client {
	return s3.New(s3.Options{
		BaseEndpoint: aws.String(creds.Endpoint),
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, ""),
		UsePathStyle: true,
	})
}

// BucketExists reports whether the named bucket exists on the endpoint.
func (c *Client) BucketExists(ctx context.Context, creds model.Credentials, name string) (bool, error) {
	_, err := c.s3Client(creds).HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head bucket %s: %w", name, err)
	}
	return true, nil
}

// CreateBucket creates the named bucket on the endpoint.
func (c *Client) CreateBucket(ctx context.Context, creds model.Credentials, name string) error {
	c.logger.Info().Str("bucket", name).Str("endpoint", creds.Endpoint).Msg("creating bucket")

	_, err := c.s3Client(creds).CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("create bucket %s: %w", name, err)
	}
	return nil
}

// DeleteBucket removes the named bucket from the endpoint.
func (c *Client) DeleteBucket(ctx context.Context, creds model.Credentials, name string) error {
	c.logger.Info().Str("bucket", name).Str("endpoint", creds.Endpoint).Msg("deleting bucket")

	_, err := c.s3Client(creds).DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("delete bucket %s: %w", name, err)
	}
	return nil
}

// ListBuckets returns the names of all buckets on the endpoint.
func (c *Client) ListBuckets(ctx context.Context, creds model.Credentials) ([]string, error) {
	out, err := c.s3Client(creds).ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.ToString(b.Name))
	}
	return names, nil
}
