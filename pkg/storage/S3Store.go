package storage

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/adamgokit/slices"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

/*
ConnectS3 loads the AWS configuration, retrying while the endpoint comes
up, and returns a client.
*/
func ConnectS3(config S3Config) (s3.S3Client, error) {
	var (
		err error
	)

	awsConfig := &awsconfig.Config{
		Endpoint:        config.Endpoint,
		Region:          config.Region,
		AccessKeyID:     config.AccessKeyID,
		SecretAccessKey: config.SecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return s3.NewClient(awsConfig)
}

type S3StoreConfig struct {
	Bucket   string
	Region   string
	S3Client s3.S3Client
}

type S3Store struct {
	bucket   string
	region   string
	s3Client s3.S3Client
}

func NewS3Store(config S3StoreConfig) S3Store {
	return S3Store{
		bucket:   config.Bucket,
		region:   config.Region,
		s3Client: config.S3Client,
	}
}

func (s S3Store) EnsureBucket() error {
	var (
		err    error
		exists bool
	)

	if exists, err = s.s3Client.BucketExists(s.bucket); err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", s.bucket, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating bucket", "bucketName", s.bucket)

	if err = s.s3Client.CreateBucket(s.bucket, createbucketoptions.WithRegion(s.region)); err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", s.bucket, err)
	}

	return nil
}

func (s S3Store) Put(key string, body io.Reader) error {
	if _, err := s.s3Client.Put(s.bucket, key, body); err != nil {
		return fmt.Errorf("error uploading '%s' to S3: %w", key, err)
	}

	return nil
}

func (s S3Store) Get(key string) (io.ReadCloser, error) {
	object, err := s.s3Client.Get(s.bucket, key)

	if err != nil {
		return nil, fmt.Errorf("error retrieving '%s' from S3: %w", key, err)
	}

	return object.Body, nil
}

func (s S3Store) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if _, err := s.s3Client.Delete(s.bucket, keys); err != nil {
		return fmt.Errorf("error deleting %d objects from S3: %w", len(keys), err)
	}

	return nil
}

/*
List returns the keys of every image object under prefix.
*/
func (s S3Store) List(prefix string) ([]string, error) {
	response, err := s.s3Client.List(
		s.bucket,
		prefix,
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			ext := strings.ToLower(filepath.Ext(aws.ToString(obj.Key)))
			return slices.IsInSlice(ext, imageExtensions)
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("error listing '%s': %w", prefix, err)
	}

	return slices.Map(response.Objects, func(obj s3.Object, index int) string {
		return obj.Key
	}), nil
}

func (s S3Store) URL(key string) (string, error) {
	return s.s3Client.GetUrl(s.bucket, key)
}
