package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/openreports/report-registry-client/interfaces"
)

// S3Store implements a content store on Amazon S3 or a compatible service.
// Objects are keyed by the SHA-256 hash of the payload, which makes the
// bucket content-addressed like the other backends.
type S3Store struct {
	client      *s3.S3
	bucketName  string
	prefix      string
	region      string
	endpoint    string
	log         *slog.Logger
	locationURI string
}

// NewS3Store creates an S3 content store. The two credential values are
// required up front; a store without them fails fast with
// interfaces.ErrStoreNotConfigured rather than on the first upload.
func NewS3Store(bucketName, prefix, region, endpoint, accessKey, secretKey string, log *slog.Logger) (*S3Store, error) {
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("%w: S3 access key and secret are required", interfaces.ErrStoreNotConfigured)
	}

	cfg := aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	uri := fmt.Sprintf("s3://%s/%s?region=%s", bucketName, prefix, region)
	if endpoint != "" {
		uri += fmt.Sprintf("&endpoint=%s", endpoint)
	}

	return &S3Store{
		client:      s3.New(sess),
		bucketName:  bucketName,
		prefix:      strings.TrimSuffix(prefix, "/"),
		region:      region,
		endpoint:    endpoint,
		log:         log,
		locationURI: uri,
	}, nil
}

// Upload puts the payload into the bucket and returns its hash as content id.
func (s *S3Store) Upload(ctx context.Context, data []byte) (interfaces.ContentID, error) {
	start := time.Now()

	hash := sha256.Sum256(data)
	id := interfaces.ContentID(hex.EncodeToString(hash[:]))
	key := s.objectKey(id)

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		s.log.Error("Failed to upload payload to S3",
			slog.String("bucket", s.bucketName),
			slog.String("key", key),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return "", fmt.Errorf("failed to upload payload to S3: %w", err)
	}

	s.log.Debug("Uploaded payload to S3",
		slog.String("bucket", s.bucketName),
		slog.String("key", key),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return id, nil
}

// Fetch retrieves a payload from the bucket by its content id.
func (s *S3Store) Fetch(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	key := s.objectKey(id)

	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "404") {
			return nil, interfaces.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to fetch payload from S3: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload from S3: %w", err)
	}

	return data, nil
}

// Available checks bucket access with a HeadBucket call.
func (s *S3Store) Available(ctx context.Context) bool {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		s.log.Debug("S3 store unavailable", "err", err)
		return false
	}
	return true
}

// ContentURL returns the public object URL for a content id.
func (s *S3Store) ContentURL(id interfaces.ContentID) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpoint, "/"), s.bucketName, s.objectKey(id))
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, s.objectKey(id))
}

// Name returns a unique identifier for this store backend.
func (s *S3Store) Name() string {
	return fmt.Sprintf("s3-%s", s.bucketName)
}

// LocationURI returns the URI that identifies this store backend.
func (s *S3Store) LocationURI() string {
	return s.locationURI
}

func (s *S3Store) objectKey(id interfaces.ContentID) string {
	if s.prefix == "" {
		return id.String()
	}
	return path.Join(s.prefix, id.String())
}
