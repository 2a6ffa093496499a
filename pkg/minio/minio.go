// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-syncstore.
//
// go-syncstore is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package minio provides an S3-compatible implementation of the backend
// interface. Objects live in one bucket under "{collection}/{key}".
// Unlike the HTTP backend, deletion is supported here.
package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"                 //nolint:staticcheck // Using v1 SDK, migration to v2 planned
	"github.com/aws/aws-sdk-go/aws/awserr"          //nolint:staticcheck // Using v1 SDK, migration to v2 planned
	"github.com/aws/aws-sdk-go/aws/credentials"     //nolint:staticcheck // Using v1 SDK, migration to v2 planned
	"github.com/aws/aws-sdk-go/aws/session"         //nolint:staticcheck // Using v1 SDK, migration to v2 planned
	"github.com/aws/aws-sdk-go/service/s3"          //nolint:staticcheck // Using v1 SDK, migration to v2 planned
	"github.com/aws/aws-sdk-go/service/s3/s3iface"  //nolint:staticcheck // Using v1 SDK, migration to v2 planned

	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

// MinIO is a backend that stores objects in MinIO or any S3-compatible
// object storage.
type MinIO struct {
	svc    s3iface.S3API
	bucket string
}

// New creates a new MinIO backend. Configure must be called before use.
func New() *MinIO {
	return &MinIO{}
}

// Configure sets up the backend with the necessary settings.
// Required settings:
//   - bucket: the bucket name
//   - endpoint: server endpoint (e.g., "http://localhost:9000")
//   - accessKey: access key
//   - secretKey: secret key
//
// Optional settings:
//   - region: AWS region (defaults to "us-east-1")
func (m *MinIO) Configure(settings map[string]string) error {
	m.bucket = settings["bucket"]
	if m.bucket == "" {
		return common.ErrBucketNotSet
	}

	endpoint := settings["endpoint"]
	if endpoint == "" {
		return common.ErrEndpointNotSet
	}

	accessKey := settings["accessKey"]
	if accessKey == "" {
		return common.ErrAccessKeyNotSet
	}

	secretKey := settings["secretKey"]
	if secretKey == "" {
		return common.ErrSecretKeyNotSet
	}

	region := settings["region"]
	if region == "" {
		region = "us-east-1"
	}

	cfg := &aws.Config{
		Region:           aws.String(region),
		Endpoint:         aws.String(endpoint),
		S3ForcePathStyle: aws.Bool(true), // MinIO requires path-style addressing
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return err
	}

	m.svc = s3.New(sess)
	return nil
}

// StoreObject serializes v and writes it under collection/key.
func (m *MinIO) StoreObject(ctx context.Context, collection, key string, v any) error {
	if err := validate(collection, key); err != nil {
		return err
	}

	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s/%s: %w", collection, key, err)
	}

	_, err = m.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(objectKey(collection, key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}

// RetrieveObject fetches the object under collection/key and decodes it
// into out.
func (m *MinIO) RetrieveObject(ctx context.Context, collection, key string, out any) error {
	if err := validate(collection, key); err != nil {
		return err
	}

	result, err := m.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(objectKey(collection, key)),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s/%s", common.ErrObjectNotFound, collection, key)
		}
		return err
	}
	defer func() { _ = result.Body.Close() }()

	return json.NewDecoder(result.Body).Decode(out)
}

// ListObjects returns the keys in a collection. Pagination is followed to
// completion; a collection with no objects yields an empty slice.
func (m *MinIO) ListObjects(ctx context.Context, collection string) ([]string, error) {
	if err := common.ValidateCollection(collection); err != nil {
		return nil, err
	}

	prefix := collection + "/"
	keys := []string{}
	var continuationToken *string

	for {
		input := &s3.ListObjectsV2Input{
			Bucket: aws.String(m.bucket),
			Prefix: aws.String(prefix),
		}
		if continuationToken != nil {
			input.ContinuationToken = continuationToken
		}

		result, err := m.svc.ListObjectsV2WithContext(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, obj := range result.Contents {
			if obj.Key != nil {
				keys = append(keys, strings.TrimPrefix(*obj.Key, prefix))
			}
		}

		if !aws.BoolValue(result.IsTruncated) {
			break
		}
		continuationToken = result.NextContinuationToken
	}

	return keys, nil
}

// DeleteObject removes the object under collection/key.
func (m *MinIO) DeleteObject(ctx context.Context, collection, key string) error {
	if err := validate(collection, key); err != nil {
		return err
	}

	_, err := m.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(objectKey(collection, key)),
	})
	return err
}

// IsConnected probes the bucket with a HEAD request.
func (m *MinIO) IsConnected() bool {
	if m.svc == nil {
		return false
	}
	_, err := m.svc.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(m.bucket),
	})
	return err == nil
}

// IsAuthenticated reports whether credentials were configured.
func (m *MinIO) IsAuthenticated() bool {
	return m.svc != nil
}

func objectKey(collection, key string) string {
	return collection + "/" + key
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		code := aerr.Code()
		return code == s3.ErrCodeNoSuchKey || code == "NotFound"
	}
	return false
}

func validate(collection, key string) error {
	if err := common.ValidateCollection(collection); err != nil {
		return err
	}
	return common.ValidateKey(key)
}
