package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Provider stores files in an S3-compatible bucket.
type S3Provider struct {
	api    s3iface.S3API
	bucket string
	prefix string
}

// NewS3Provider stores objects under prefix inside bucket.
func NewS3Provider(api s3iface.S3API, bucket, prefix string) *S3Provider {
	return &S3Provider{api: api, bucket: bucket, prefix: prefix}
}

func (p *S3Provider) objectKey(key string) (string, error) {
	if !validKey(key) {
		return "", ErrInvalidKey
	}
	if p.prefix == "" {
		return key, nil
	}
	return path.Join(p.prefix, key), nil
}

// Put uploads body. PutObject needs a seekable body, so other readers are
// buffered in memory first.
func (p *S3Provider) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	objKey, err := p.objectKey(key)
	if err != nil {
		return err
	}

	rs, ok := body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("buffer %s: %w", key, err)
		}
		rs = bytes.NewReader(data)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objKey),
		Body:   rs,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := p.api.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("s3 put %s: %w", objKey, err)
	}
	return nil
}

// Get streams an object.
func (p *S3Provider) Get(ctx context.Context, key string) (*FileObject, error) {
	objKey, err := p.objectKey(key)
	if err != nil {
		return nil, err
	}
	out, err := p.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %s: %w", objKey, err)
	}

	obj := &FileObject{
		Body:          out.Body,
		ContentLength: aws.Int64Value(out.ContentLength),
		ContentType:   aws.StringValue(out.ContentType),
		LastModified:  aws.TimeValue(out.LastModified),
	}
	if obj.ContentType == "" {
		obj.ContentType = "application/octet-stream"
	}
	return obj, nil
}

// Delete removes an object. S3 does not report missing keys on delete.
func (p *S3Provider) Delete(ctx context.Context, key string) error {
	objKey, err := p.objectKey(key)
	if err != nil {
		return err
	}
	_, err = p.api.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", objKey, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}
