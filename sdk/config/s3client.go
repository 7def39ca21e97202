// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of *s3.Client the mirror needs.
type S3API interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Client moves Disk files in and out of an S3 compatible bucket.
type S3Client struct {
	s3     S3API
	bucket string
}

func NewS3Client(ctx context.Context, cfgCreds S3Config) (*S3Client, error) {
	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		cfgCreds.AccessKey,
		cfgCreds.SecretKey,
		cfgCreds.AccessToken,
	))

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(cfgCreds.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Options := func(o *s3.Options) {
		if cfgCreds.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfgCreds.EndpointURL)
			o.UsePathStyle = true
		}
	}

	return NewS3ClientFromAPI(s3.NewFromConfig(cfg, s3Options), cfgCreds.Bucket), nil
}

// NewS3ClientFromAPI wraps an existing client; bucket is used when a call names none.
func NewS3ClientFromAPI(api S3API, bucket string) *S3Client {
	return &S3Client{s3: api, bucket: bucket}
}

func (c *S3Client) resolveBucket(bucket string) (string, error) {
	if bucket != "" {
		return bucket, nil
	}
	if c.bucket != "" {
		return c.bucket, nil
	}
	return "", errors.New("no bucket configured")
}

// S3Object is a readable object together with its size when known.
type S3Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Put streams body into bucket/key. The manager uploader switches to multipart for
// large bodies, so the size does not need to be known up front.
func (c *S3Client) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	bucket, err := c.resolveBucket(bucket)
	if err != nil {
		return "", err
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	out, err := manager.NewUploader(c.s3).Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to put object to S3: %w", err)
	}
	return out.Location, nil
}

// Get opens bucket/key for reading. The caller closes the body.
func (c *S3Client) Get(ctx context.Context, bucket, key string) (*S3Object, error) {
	bucket, err := c.resolveBucket(bucket)
	if err != nil {
		return nil, err
	}
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	return &S3Object{
		Body:        out.Body,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

// Exists reports whether bucket/key can be stat'ed.
func (c *S3Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	bucket, err := c.resolveBucket(bucket)
	if err != nil {
		return false, err
	}
	if _, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		var nf interface{ ErrorCode() string }
		if errors.As(err, &nf) && (nf.ErrorCode() == "NotFound" || nf.ErrorCode() == "NoSuchKey") {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object in S3: %w", err)
	}
	return true, nil
}
