package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/resep-nusantara/config"
)

// AvatarStore saves an avatar image and returns the URL to display it with
type AvatarStore interface {
	Save(ctx context.Context, contentType string, data []byte) (string, error)
}

// InlineAvatarStore keeps avatars in the profile row as data URLs
type InlineAvatarStore struct{}

// Save encodes data as a base64 data URL
func (InlineAvatarStore) Save(ctx context.Context, contentType string, data []byte) (string, error) {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// S3API is the part of the S3 client used for avatars
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3AvatarStore uploads avatars to a bucket under avatars/
type S3AvatarStore struct {
	client S3API
	bucket string
	urlFor func(key string) string
}

// NewS3AvatarStore creates a store for the bucket in cfg
func NewS3AvatarStore(cfg *config.S3Config) *S3AvatarStore {
	return &S3AvatarStore{client: cfg.Client, bucket: cfg.BucketName, urlFor: cfg.ObjectURL}
}

// Save uploads data under a random key
func (s *S3AvatarStore) Save(ctx context.Context, contentType string, data []byte) (string, error) {
	key := path.Join("avatars", uuid.New().String()+extensionFor(contentType))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return s.urlFor(key), nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
