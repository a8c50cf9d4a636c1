package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"fitcoach/coaching-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.S3Config
		want string
	}{
		{
			name: "configured base wins",
			cfg:  config.S3Config{PublicBaseURL: "https://cdn.example.com/", Endpoint: "http://minio:9000", BucketName: "media"},
			want: "https://cdn.example.com",
		},
		{
			name: "custom endpoint uses path style",
			cfg:  config.S3Config{Endpoint: "http://minio:9000/", BucketName: "media"},
			want: "http://minio:9000/media",
		},
		{
			name: "aws virtual host",
			cfg:  config.S3Config{BucketName: "media", Region: "eu-west-1"},
			want: "https://media.s3.eu-west-1.amazonaws.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBaseURL(tt.cfg))
		})
	}
}

func TestNewS3Storage(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"})
	require.Error(t, err, "a bucket is required")

	files, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		BucketName:      "media",
	})
	require.NoError(t, err)

	url := files.PublicURL("images/progreso/abc/1.jpg")
	assert.Equal(t, "http://localhost:9000/media/images/progreso/abc/1.jpg", url)

	key, ok := files.ObjectKey(url)
	assert.True(t, ok)
	assert.Equal(t, "images/progreso/abc/1.jpg", key)

	_, ok = files.ObjectKey("https://elsewhere.test/media/images/x.jpg")
	assert.False(t, ok)
	_, ok = files.ObjectKey("")
	assert.False(t, ok)

	// Presigning is local: no request reaches the endpoint.
	upload, err := files.GeneratePresignedUploadURL(context.Background(), "images/progreso/abc/1.jpg", "image/jpeg", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload, "http://localhost:9000/media/images/progreso/abc/1.jpg?"), upload)
	assert.Contains(t, upload, "X-Amz-Signature=")
}
