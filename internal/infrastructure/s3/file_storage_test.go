package s3

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/pkg/config"
)

// İmzalama yereldir; ağ erişimi gerekmez.
func TestPresignUpload_PathStyleEndpoint(t *testing.T) {
	st, err := NewFileStorage(context.Background(), config.S3Config{
		Bucket: "ik-cv", Region: "eu-central-1", Endpoint: "http://localhost:4566",
		AccessKeyID: "test", SecretAccessKey: "test",
	})
	require.NoError(t, err)

	raw, err := st.PresignUpload(context.Background(), "cv/c1/j1/abc.pdf", "application/pdf", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:4566", u.Host)
	assert.Equal(t, "/ik-cv/cv/c1/j1/abc.pdf", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPresignDownload(t *testing.T) {
	st, err := NewFileStorage(context.Background(), config.S3Config{
		Bucket: "ik-cv", Region: "eu-central-1", Endpoint: "http://localhost:4566",
		AccessKeyID: "test", SecretAccessKey: "test",
	})
	require.NoError(t, err)

	raw, err := st.PresignDownload(context.Background(), "cv/c1/j1/abc.pdf", 10*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, raw, "X-Amz-Signature=")
}

func TestNewFileStorage_BucketZorunlu(t *testing.T) {
	_, err := NewFileStorage(context.Background(), config.S3Config{Region: "eu-central-1"})
	assert.Error(t, err)
}
