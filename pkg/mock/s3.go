package mock

import (
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PutObjectCall struct {
	Bucket      string
	Key         string
	ContentType string
	Body        []byte
}

// S3Client records PutObject calls and answers them with Err.
type S3Client struct {
	lock  sync.Mutex
	Calls []PutObjectCall
	Err   error
}

func (c *S3Client) PutObject(_ context.Context, params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.Calls = append(c.Calls, PutObjectCall{
		Bucket:      aws.ToString(params.Bucket),
		Key:         aws.ToString(params.Key),
		ContentType: aws.ToString(params.ContentType),
		Body:        body,
	})

	if c.Err != nil {
		return nil, c.Err
	}

	return &s3.PutObjectOutput{}, nil
}
