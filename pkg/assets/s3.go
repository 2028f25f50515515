package assets

import (
	"context"
	stderrors "errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/chatbot-dev/chatbot/internal/errors"
)

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source serves assets from a bucket. Names are appended to Prefix to
// form object keys.
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Source creates a source over an existing client.
func NewS3Source(client S3API, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: withSlash(prefix)}
}

// NewS3SourceFromEnv builds an S3 client from the default AWS credential
// chain. An empty region leaves the chain's region in place.
func NewS3SourceFromEnv(ctx context.Context, region, bucket, prefix string) (*S3Source, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("E302").
			WithSuggestion("Check the AWS credentials and region available to the server.").
			Wrap(err)
	}
	return NewS3Source(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// Open implements Source.
func (s *S3Source) Open(ctx context.Context, name string) (*Object, error) {
	rel, ok := CleanPath(name)
	if !ok {
		return nil, ErrNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + rel),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.New("E302").Wrap(err)
	}

	return &Object{
		Name:        rel,
		Body:        out.Body,
		Size:        aws.ToInt64(out.ContentLength),
		ModTime:     aws.ToTime(out.LastModified),
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
	}, nil
}

func isS3NotFound(err error) bool {
	var noKey *types.NoSuchKey
	if stderrors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
