package storage

import (
	"context"
	"errors"
	"testing"
)

func testS3Config() S3Config {
	return S3Config{
		Bucket:          "clipforge-test",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:4566", // LocalStack-like endpoint
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}
}

func TestNewS3Library(t *testing.T) {
	lib, err := NewS3Library(t.TempDir(), t.TempDir(), testS3Config())
	if err != nil {
		t.Fatalf("NewS3Library() error = %v", err)
	}

	if lib.bucket != "clipforge-test" {
		t.Errorf("bucket = %v, want clipforge-test", lib.bucket)
	}
	if lib.region != "us-east-1" {
		t.Errorf("region = %v, want us-east-1", lib.region)
	}
	if lib.client == nil {
		t.Error("client not constructed")
	}
}

func TestS3Library_InheritsLocalLibrary(t *testing.T) {
	lib, err := NewS3Library(t.TempDir(), t.TempDir(), testS3Config())
	if err != nil {
		t.Fatalf("NewS3Library() error = %v", err)
	}
	ctx := context.Background()

	// Clip lookup still behaves like the local library.
	if _, err := lib.Resolve(ctx, "ghost.mp4"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
	if _, err := lib.Resolve(ctx, "../escape"); !errors.Is(err, ErrUnsafeName) {
		t.Errorf("Resolve() error = %v, want ErrUnsafeName", err)
	}

	path, err := lib.OutputPath("out.mp4", "")
	if err != nil {
		t.Fatalf("OutputPath() error = %v", err)
	}
	if path == "" {
		t.Error("OutputPath() returned empty path")
	}
}

func TestS3Library_PublishMissingFile(t *testing.T) {
	lib, err := NewS3Library(t.TempDir(), t.TempDir(), testS3Config())
	if err != nil {
		t.Fatalf("NewS3Library() error = %v", err)
	}

	// The output file is opened before any network call, so a missing
	// file fails fast without reaching the endpoint.
	if _, err := lib.Publish(context.Background(), "/nonexistent/out.mp4"); err == nil {
		t.Error("Publish() of missing file should fail")
	}
}
