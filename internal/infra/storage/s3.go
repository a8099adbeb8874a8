package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	appconfig "shop/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage はメディア実体の置き場所。
type S3Storage struct {
	client        *s3.Client
	presigner     *s3.PresignClient
	bucket        string
	publicBaseURL string
	presignExpiry time.Duration
}

func NewS3Storage(ctx context.Context, cfg appconfig.Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Storage{
		client:        client,
		presigner:     s3.NewPresignClient(client),
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
		presignExpiry: time.Duration(cfg.PresignExpirySec) * time.Second,
	}, nil
}

// アップロード用のpresigned PUT URLを発行する
func (s *S3Storage) PresignPut(ctx context.Context, key string, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigned, err := s.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = s.presignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("presign put object: %w", err)
	}

	return presigned.URL, nil
}

func (s *S3Storage) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// 公開URL。CDN等のベースURLが設定されていればそちらを使う。
func (s *S3Storage) ObjectURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
