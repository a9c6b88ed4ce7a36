package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const reportContentType = "application/xml"

var ErrBucketRequired = errors.New("bucket name is required for S3 upload")

// ObjectPutter is the subset of the S3 client used to publish reports.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader publishes files to any S3-compatible bucket.
type S3Uploader struct {
	client ObjectPutter
	bucket string
}

// NewS3Uploader loads the default AWS configuration (env, shared config, instance role) for the
// given region and returns an uploader targeting bucket.
func NewS3Uploader(ctx context.Context, region, bucket string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, ErrBucketRequired
	}

	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("can't load AWS config: %w", err)
	}

	return NewS3UploaderWithClient(s3.NewFromConfig(cfg), bucket)
}

// NewS3UploaderWithClient returns an uploader using an already configured client.
func NewS3UploaderWithClient(client ObjectPutter, bucket string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, ErrBucketRequired
	}

	return &S3Uploader{
		client: client,
		bucket: bucket,
	}, nil
}

// Bucket returns the target bucket name.
func (u *S3Uploader) Bucket() string {
	return u.bucket
}

// UploadFile sends the file at filePath to targetPath in the bucket.
func (u *S3Uploader) UploadFile(ctx context.Context, filePath, targetPath string) error {
	content, err := os.ReadFile(filePath) //nolint:gosec
	if err != nil {
		return fmt.Errorf("can't read file %s: %w", filePath, err)
	}

	size := int64(len(content))
	query := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(targetPath),
		ACL:           types.ObjectCannedACLPrivate,
		Body:          bytes.NewReader(content),
		ContentLength: &size,
		ContentType:   aws.String(reportContentType),
	}

	if _, err := u.client.PutObject(ctx, query); err != nil {
		return fmt.Errorf("can't send S3 PUT request: %w", err)
	}

	return nil
}
