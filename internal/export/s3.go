package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Delivery uploads generated bulk files to an S3 bucket so downstream
// upload tooling can pick them up.
type S3Delivery struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Delivery builds an S3 delivery target using the default credential
// chain, optionally pinned to a shared config profile.
func NewS3Delivery(ctx context.Context, bucket, region, profile, prefix string) (*S3Delivery, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3Delivery{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Deliver serializes the rows and puts the file under
// <prefix>/<account>/<kind>-<date>-<id>.csv. Returns the object key.
func (d *S3Delivery) Deliver(ctx context.Context, account string, kind FileKind, rows []BulkRow) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, kind, rows); err != nil {
		return "", fmt.Errorf("serializing %s export: %w", kind, err)
	}

	key := fmt.Sprintf("%s/%s/%s-%s-%s.csv",
		d.prefix, account, kind,
		time.Now().UTC().Format("20060102"),
		uuid.NewString()[:8])

	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to s3://%s: %w", key, d.bucket, err)
	}

	log.Printf("[export] delivered %d rows to s3://%s/%s", len(rows), d.bucket, key)
	return key, nil
}
