package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/finman-app/finman-backend/internal/config"
)

// S3ImageRepository implements ImageRepository using an S3-compatible bucket,
// for deployments that self-host category images instead of using the
// Cloudinary host.
type S3ImageRepository struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

// NewS3ImageRepository creates a new S3 image repository
func NewS3ImageRepository(ctx context.Context, s3cfg config.S3Config) (*S3ImageRepository, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s3cfg.Region),
	}
	if s3cfg.AccessKeyID != "" && s3cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				s3cfg.AccessKeyID,
				s3cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if s3cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &S3ImageRepository{
		client:   client,
		bucket:   s3cfg.Bucket,
		region:   s3cfg.Region,
		endpoint: s3cfg.Endpoint,
	}, nil
}

// Upload stores the image under a unique key and returns its public URL.
func (r *S3ImageRepository) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	key := objectKey(filename)

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return r.objectURL(key), nil
}

func (r *S3ImageRepository) objectURL(key string) string {
	if r.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", r.endpoint, r.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", r.bucket, r.region, key)
}

// objectKey creates a unique key for an uploaded category image.
func objectKey(filename string) string {
	return path.Join("category", uuid.New().String()+path.Ext(filename))
}
