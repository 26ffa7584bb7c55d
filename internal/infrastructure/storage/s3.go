package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
)

var _ report.ArtifactStore = (*S3Store)(nil)

// S3Config parámetros del bucket. Endpoint vacío = AWS.
type S3Config struct {
	Bucket            string
	Region            string
	Endpoint          string
	AccessKey         string
	SecretKey         string
	UsePathStyle      bool
	PresignExpiration time.Duration
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store sube los artefactos y devuelve una URL firmada de descarga.
type S3Store struct {
	client  objectPutter
	presign func(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	bucket  string
	ttl     time.Duration
}

// NewS3Store construye el cliente con credenciales estáticas si se dan,
// o con la cadena por defecto del SDK si no.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: configuración AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	presigner := s3.NewPresignClient(client)

	ttl := cfg.PresignExpiration
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &S3Store{
		client: client,
		presign: func(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
			req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			}, s3.WithPresignExpires(ttl))
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
		bucket: cfg.Bucket,
		ttl:    ttl,
	}, nil
}

// Save sube el objeto; si la firma de la URL falla devuelve s3://bucket/key.
func (s *S3Store) Save(ctx context.Context, key string, a *report.Artifact) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(a.Data),
		ContentType:   aws.String(a.ContentType),
		ContentLength: aws.Int64(int64(len(a.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", key, err)
	}
	if s.presign != nil {
		if url, err := s.presign(ctx, s.bucket, key, s.ttl); err == nil {
			return url, nil
		}
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
