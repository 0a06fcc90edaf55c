// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package blob stores document bytes in S3-compatible object storage.
// The API never proxies file contents: clients upload and download through
// short-lived presigned URLs.
package blob

import (
	"context"
	"errors"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
)

// DefaultPresignExpiry is used when Config.PresignExpiry is not positive.
const DefaultPresignExpiry = 15 * time.Minute

// Config configures S3Presigner.
type Config struct {
	// Endpoint overrides the AWS endpoint, for MinIO and friends. Setting
	// it switches to path-style addressing.
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PresignExpiry time.Duration
	AllowedTypes  []string
}

type presignAPI interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type objectAPI interface {
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Presigner implements care.DocumentStorage.
type S3Presigner struct {
	presign presignAPI
	objects objectAPI
	bucket  string
	expiry  time.Duration
	policy  *TypePolicy
	now     func() time.Time
}

// New creates an S3Presigner. Static credentials are used when an access
// key is configured; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config) (*S3Presigner, error) {
	if cfg.Bucket == "" {
		return nil, oops.Code("BLOB_CONFIG_INVALID").Errorf("bucket is required")
	}
	policy, err := NewTypePolicy(cfg.AllowedTypes)
	if err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, oops.Code("BLOB_CONFIG_INVALID").With("operation", "load aws config").Wrap(err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newPresigner(s3.NewPresignClient(client), client, cfg.Bucket, cfg.PresignExpiry, policy), nil
}

func newPresigner(p presignAPI, o objectAPI, bucket string, expiry time.Duration, policy *TypePolicy) *S3Presigner {
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	return &S3Presigner{
		presign: p,
		objects: o,
		bucket:  bucket,
		expiry:  expiry,
		policy:  policy,
		now:     time.Now,
	}
}

// AllowsContentType reports whether the allowlist accepts contentType.
func (s *S3Presigner) AllowsContentType(contentType string) bool {
	return s.policy.Allows(contentType)
}

// NewObjectKey returns documents/<owner>/<uuid><ext>. The display name
// contributes only its extension.
func (s *S3Presigner) NewObjectKey(owner ulid.ULID, name string) string {
	ext := strings.ToLower(path.Ext(path.Base(name)))
	if len(ext) > 10 || strings.ContainsAny(ext, " /\\") {
		ext = ""
	}
	return "documents/" + owner.String() + "/" + uuid.NewString() + ext
}

// PresignUpload signs a PUT of exactly size bytes of contentType.
func (s *S3Presigner) PresignUpload(ctx context.Context, key, contentType string, size int64) (string, time.Time, error) {
	expiresAt := s.now().Add(s.expiry)
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", time.Time{}, oops.Code("BLOB_PRESIGN_FAILED").
			With("operation", "presign upload").
			With("key", key).
			Wrap(err)
	}
	return req.URL, expiresAt, nil
}

// PresignDownload signs a GET that saves the object as name.
func (s *S3Presigner) PresignDownload(ctx context.Context, key, name string) (string, time.Time, error) {
	expiresAt := s.now().Add(s.expiry)
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(contentDisposition(name)),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", time.Time{}, oops.Code("BLOB_PRESIGN_FAILED").
			With("operation", "presign download").
			With("key", key).
			Wrap(err)
	}
	return req.URL, expiresAt, nil
}

// Delete removes the object at key.
func (s *S3Presigner) Delete(ctx context.Context, key string) error {
	_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	var missing *types.NoSuchKey
	if err == nil || errors.As(err, &missing) {
		return nil
	}
	return oops.Code("BLOB_DELETE_FAILED").With("key", key).Wrap(err)
}

func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}

var _ care.DocumentStorage = (*S3Presigner)(nil)
