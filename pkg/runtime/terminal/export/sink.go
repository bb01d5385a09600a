package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Object is a rendered report ready to publish
type Object struct {
	Key         string
	Body        []byte
	ContentType string
}

// Sink is where rendered reports go
type Sink interface {
	Publish(ctx context.Context, obj Object) error
}

type writerSink struct {
	writer io.Writer
}

// NewWriterSink writes report bodies to w, stdout when nil
func NewWriterSink(w io.Writer) Sink {
	if w == nil {
		w = os.Stdout
	}
	return &writerSink{writer: w}
}

func (s *writerSink) Publish(_ context.Context, obj Object) error {
	if _, err := s.writer.Write(obj.Body); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ObjectPutter is the subset of the S3 client the sink needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewS3Sink(client ObjectPutter, bucket, prefix string) Sink {
	return &s3Sink{client: client, bucket: bucket, prefix: prefix}
}

// NewS3SinkFromConfig builds an S3 client from the default AWS credential chain
func NewS3SinkFromConfig(ctx context.Context, region, bucket, prefix string) (Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func (s *s3Sink) Publish(ctx context.Context, obj Object) error {
	key := path.Join(s.prefix, obj.Key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(obj.Body),
		ContentType: aws.String(obj.ContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report to s3://%s/%s: %w", s.bucket, key, err)
	}
	zerolog.Ctx(ctx).Info().Str("bucket", s.bucket).Str("key", key).Msg("report uploaded")
	return nil
}
