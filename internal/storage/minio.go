package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ReportStore uploads rendered reports to a MinIO bucket.
type ReportStore struct {
	client *minioSDK.Client
	bucket string
}

// NewReportStore connects to MinIO and makes sure the bucket exists.
func NewReportStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*ReportStore, error) {
	client, err := minioSDK.New(endpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		log.Printf("Bucket created: %s", bucket)
	}

	return &ReportStore{client: client, bucket: bucket}, nil
}

// PutReport stores one rendered HTML report and returns its object path.
func (s *ReportStore) PutReport(ctx context.Context, objectName string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(body), int64(len(body)), minioSDK.PutObjectOptions{
		ContentType: "text/html; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s", s.bucket, objectName), nil
}
