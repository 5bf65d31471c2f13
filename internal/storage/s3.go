package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ErrNotFound is returned when the requested key does not exist.
var ErrNotFound = errors.New("object not found")

// Options tune a Client beyond the bucket name.
type Options struct {
	// Endpoint overrides the S3 endpoint (MinIO, localstack) and switches to
	// path-style addressing.
	Endpoint   string
	PresignTTL time.Duration
	// ACL is an optional canned ACL attached to presigned uploads.
	ACL string
}

type Client struct {
	s3      *s3.Client
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
	acl     string
}

func New(cfg aws.Config, bucket string, opts Options) *Client {
	c := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	ttl := opts.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Client{
		s3:      c,
		presign: s3.NewPresignClient(c),
		bucket:  bucket,
		ttl:     ttl,
		acl:     opts.ACL,
	}
}

// Bucket is the bucket every key is resolved against.
func (c *Client) Bucket() string { return c.bucket }

// Get reads the whole object into memory.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, translate(key, err)
	}
	defer out.Body.Close()
	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 object %s: %w", key, err)
	}
	return b, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		return translate(key, err)
	}
	return nil
}

// PresignPut returns a URL that accepts one PUT of key with contentType.
func (c *Client) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	in := &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}
	if c.acl != "" {
		in.ACL = types.ObjectCannedACL(c.acl)
	}
	req, err := c.presign.PresignPutObject(ctx, in, s3.WithPresignExpires(c.ttl))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return req.URL, nil
}

func (c *Client) PutJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3 object %s: %w", key, err)
	}
	return nil
}

func (c *Client) GetJSON(ctx context.Context, key string, v any) error {
	b, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode s3 object %s: %w", key, err)
	}
	return nil
}

// translate maps missing-key responses onto ErrNotFound and keeps the S3
// error code visible in the message.
func translate(key string, err error) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return fmt.Errorf("s3 object %s: %w", key, err)
}

// Code extracts the S3 error code from err, or "" when it carries none.
func Code(err error) string {
	if errors.Is(err, ErrNotFound) {
		return "NoSuchKey"
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
