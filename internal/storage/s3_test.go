package storage

import (
	"testing"

	"github.com/andresuchdata/autopo-forecast/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeEndpoint(t *testing.T) {
	testCases := []struct {
		endpoint string
		useSSL   bool
		host     string
		secure   bool
	}{
		{"https://s3.example.com/", false, "s3.example.com", true},
		{"http://minio:9000", true, "minio:9000", false},
		{"minio:9000", true, "minio:9000", true},
		{"//minio:9000", false, "minio:9000", false},
	}

	for _, tc := range testCases {
		host, secure := normalizeEndpoint(tc.endpoint, tc.useSSL)
		assert.Equal(t, tc.host, host, tc.endpoint)
		assert.Equal(t, tc.secure, secure, tc.endpoint)
	}
}

func TestNewS3Client_Validation(t *testing.T) {
	_, err := NewS3Client(config.StorageConfig{})
	assert.ErrorContains(t, err, "endpoint")

	_, err = NewS3Client(config.StorageConfig{Endpoint: "minio:9000"})
	assert.ErrorContains(t, err, "credentials")

	_, err = NewS3Client(config.StorageConfig{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "b"})
	assert.ErrorContains(t, err, "bucket")

	client, err := NewS3Client(config.StorageConfig{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "b", Bucket: "reports"})
	assert.NoError(t, err)
	assert.Equal(t, "reports", client.bucket)
}
