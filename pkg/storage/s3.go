package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"espacestage-backend/config"
)

// Uploader stores uploaded files on S3-compatible storage and returns a
// stable public URL. The rest of the system treats that URL as an opaque
// reference and never interprets file contents.
type Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// AllowedFolders are the only upload destinations the API accepts.
var AllowedFolders = map[string]bool{
	"resumes":      true,
	"photos":       true,
	"logos":        true,
	"certificates": true,
}

// NewUploader creates the S3 client. Supports AWS and S3-compatible
// providers via a custom endpoint.
func NewUploader(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // compatible providers require path-style
		}
	})

	publicBase := cfg.S3PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &Uploader{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload writes data under folder with a collision-free key and returns the
// public URL.
func (u *Uploader) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), sanitizeExtension(filename))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return u.publicBaseURL + "/" + key, nil
}

// sanitizeExtension keeps only a plain ASCII extension from the original
// filename; the base name is replaced by a UUID anyway.
func sanitizeExtension(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	for _, r := range ext {
		if r > 127 {
			return ""
		}
	}
	return ext
}
