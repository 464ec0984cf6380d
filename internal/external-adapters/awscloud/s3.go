package awscloud

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// ObjectStore uploads reports to S3 with temporary credentials
type ObjectStore struct {
	cfg         Config
	contentType string
}

// NewObjectStore creates a new S3 object store
func NewObjectStore(cfg Config) *ObjectStore {
	return &ObjectStore{cfg: cfg, contentType: "application/json"}
}

// PutObject uploads body to bucket/key. A fresh client is built per call since
// every upload carries its own short-lived credentials.
func (o *ObjectStore) PutObject(ctx context.Context, creds *entities.TemporaryCredentials, bucket, key string, body []byte) error {
	if creds == nil {
		return fmt.Errorf("credentials are required for upload")
	}
	if bucket == "" || key == "" {
		return fmt.Errorf("bucket and key are required for upload")
	}

	sess, err := newSession(o.cfg, credentials.NewStaticCredentials(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken))
	if err != nil {
		return err
	}

	s3Config := aws.NewConfig()
	if o.cfg.Endpoint != "" {
		s3Config.WithS3ForcePathStyle(true)
	}
	client := s3.New(sess, s3Config)

	_, err = client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(o.contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err)
	}

	return nil
}
