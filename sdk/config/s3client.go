// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Objects above this size are staged on local disk before being sent to Zenodo.
const stageThreshold = 100 * 1024 * 1024

var ErrObjectNotFound = errors.New("object not found")

type S3Client struct {
	s3 *s3.Client
}

func NewS3Client(ctx context.Context, cfgCreds S3Config) (*S3Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if cfgCreds.AccessKey != "" {
		creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfgCreds.AccessKey,
			cfgCreds.SecretKey,
			cfgCreds.AccessToken,
		))
		opts = append(opts, config.WithCredentialsProvider(creds))
	}
	if cfgCreds.Region != "" {
		opts = append(opts, config.WithRegion(cfgCreds.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Options := func(o *s3.Options) {
		if cfgCreds.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfgCreds.EndpointURL)
			o.UsePathStyle = true
		}
	}

	return &S3Client{
		s3: s3.NewFromConfig(cfg, s3Options),
	}, nil
}

// Stat returns the size of s3://bucket/key without reading it.
func (c *S3Client) Stat(ctx context.Context, bucket, key string) (int64, error) {
	out, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrObjectNotFound)
		}
		return 0, fmt.Errorf("failed to stat object in S3: %w", err)
	}
	return aws.ToInt64(out.ContentLength), nil
}

// Open returns a reader over s3://bucket/key and its size. Small objects are
// streamed straight from GetObject; large ones are first downloaded into a
// temporary file, which is removed on Close.
func (c *S3Client) Open(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	size, err := c.Stat(ctx, bucket, key)
	if err != nil {
		return nil, 0, err
	}

	if size > stageThreshold {
		return c.stage(ctx, bucket, key, size)
	}

	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get object from S3: %w", err)
	}
	return out.Body, aws.ToInt64(out.ContentLength), nil
}

func (c *S3Client) stage(ctx context.Context, bucket, key string, size int64) (io.ReadCloser, int64, error) {
	f, err := os.CreateTemp("", "zenodo-s3-*")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create staging file: %w", err)
	}

	downloader := manager.NewDownloader(c.s3, func(d *manager.Downloader) {
		d.Concurrency = 1
	})
	n, err := downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, 0, fmt.Errorf("failed to download object from S3: %w", err)
	}
	if n != size {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, 0, fmt.Errorf("short download of s3://%s/%s: got %d of %d bytes", bucket, key, n, size)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, 0, fmt.Errorf("rewind error: %w", err)
	}
	return &stagedFile{File: f}, n, nil
}

type stagedFile struct {
	*os.File
}

func (s *stagedFile) Close() error {
	err := s.File.Close()
	if rmErr := os.Remove(s.File.Name()); err == nil {
		err = rmErr
	}
	return err
}

func isNotFound(err error) bool {
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
