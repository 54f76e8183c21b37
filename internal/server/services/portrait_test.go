package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/tardis/internal/server/config"
)

func newPortraitStorage() *S3PortraitStorage {
	return NewS3PortraitStorage(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "portraits",
	})
}

// stubPresignFactories replaces the AWS constructors with cheap fakes and
// restores them when the test ends.
func stubPresignFactories(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestPortraitKey_Format(t *testing.T) {
	re := regexp.MustCompile(`^characters/42/[0-9a-f-]{36}$`)
	k1, k2 := PortraitKey(42), PortraitKey(42)
	if !re.MatchString(k1) {
		t.Fatalf("unexpected key %q", k1)
	}
	if k1 == k2 {
		t.Fatalf("keys must be unique, got %q twice", k1)
	}
}

func Test_getPresignClient_SuccessAndError(t *testing.T) {
	svc := newPortraitStorage()
	stubPresignFactories(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		if len(optFns) == 0 {
			t.Fatalf("expected config options")
		}
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	pc, err := svc.getPresignClient()
	if err != nil {
		t.Fatalf("getPresignClient err: %v", err)
	}
	if pc == nil {
		t.Fatalf("nil presign client")
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000" {
		t.Fatalf("BaseEndpoint mismatch: %v", opts.BaseEndpoint)
	}
	if !opts.UsePathStyle {
		t.Fatalf("path-style addressing expected for MinIO")
	}

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	pc, err = svc.getPresignClient()
	if err == nil || err.Error() != "load-fail" {
		t.Fatalf("expected load-fail, got %v (pc=%v)", err, pc)
	}
}

func TestPresignPut(t *testing.T) {
	svc := newPortraitStorage()
	stubPresignFactories(t)

	var got *s3.PutObjectInput
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		got = in
		return &v4.PresignedHTTPRequest{URL: "https://minio/put"}, nil
	}

	url, err := svc.PresignPut(context.Background(), "characters/1/k", "image/png")
	if err != nil {
		t.Fatalf("PresignPut err: %v", err)
	}
	if url != "https://minio/put" {
		t.Fatalf("url = %q", url)
	}
	if *got.Bucket != "portraits" || *got.Key != "characters/1/k" || got.ContentType == nil || *got.ContentType != "image/png" {
		t.Fatalf("unexpected input: bucket=%q key=%q", *got.Bucket, *got.Key)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}
	if _, err := svc.PresignPut(context.Background(), "k", ""); err == nil || err.Error() != "presign-put-fail" {
		t.Fatalf("want presign-put-fail, got %v", err)
	}
}

func TestPresignGet(t *testing.T) {
	svc := newPortraitStorage()
	stubPresignFactories(t)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if *in.Key != "characters/1/k" {
			t.Fatalf("key = %q", *in.Key)
		}
		return &v4.PresignedHTTPRequest{URL: "https://minio/get"}, nil
	}

	url, err := svc.PresignGet(context.Background(), "characters/1/k")
	if err != nil || url != "https://minio/get" {
		t.Fatalf("PresignGet = %q, %v", url, err)
	}
}

func TestPresign_ErrorFromClientFactory(t *testing.T) {
	svc := newPortraitStorage()
	stubPresignFactories(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	if _, err := svc.PresignPut(context.Background(), "k", ""); err == nil || err.Error() != "load-fail" {
		t.Fatalf("want load-fail, got %v", err)
	}
	if _, err := svc.PresignGet(context.Background(), "k"); err == nil || err.Error() != "load-fail" {
		t.Fatalf("want load-fail, got %v", err)
	}
}
