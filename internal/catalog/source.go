package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source yields the raw bytes of a catalog document.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads the catalog from a local JSON file.
type FileSource struct {
	Path string
}

// Load reads the file.
func (s FileSource) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return data, nil
}

func (s FileSource) String() string { return s.Path }

// ObjectGetter is the subset of the S3 client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source downloads the catalog from an S3-compatible bucket.
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

// Load downloads the object body.
func (s S3Source) Load(ctx context.Context) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func (s S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }

// S3Config holds the connection settings for S3-compatible storage.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
}

// ParseS3URI splits s3://bucket/key into its parts.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri must be s3://bucket/key: %s", uri)
	}
	return bucket, key, nil
}

// NewSource returns an S3Source for s3:// locations, an HTTPSource for
// http(s):// URLs and a FileSource otherwise.
func NewSource(ctx context.Context, location string, cfg S3Config) (Source, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location)
	case !strings.HasPrefix(location, "s3://"):
		return FileSource{Path: location}, nil
	}

	bucket, key, err := ParseS3URI(location)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return S3Source{Client: client, Bucket: bucket, Key: key}, nil
}
