package minio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
}

// fakeS3 只应答桶探测与对象上传
func fakeS3(t *testing.T, bucketExists bool) (*minio.Client, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	requests := make([]recordedRequest, 0)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path})
		mu.Unlock()

		if r.Method == http.MethodHead && !bucketExists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client, err := minio.New(strings.TrimPrefix(server.URL, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Secure: false,
		Region: "us-east-1",
	})
	require.NoError(t, err)
	return client, &requests
}

func TestArchiver_PutJSON(t *testing.T) {
	client, requests := fakeS3(t, true)
	archiver := NewArchiver(client, "metrics-archive")

	err := archiver.PutJSON(context.Background(), "usage-logs/2026-03-01/1-500.json", []byte(`[{"id":1}]`))
	require.NoError(t, err)

	require.NotEmpty(t, *requests)
	last := (*requests)[len(*requests)-1]
	assert.Equal(t, http.MethodPut, last.method)
	assert.Equal(t, "/metrics-archive/usage-logs/2026-03-01/1-500.json", last.path)
}

func TestArchiver_NotInitialized(t *testing.T) {
	err := NewArchiver(nil, "metrics-archive").PutJSON(context.Background(), "x.json", []byte("{}"))
	assert.Error(t, err)
}

func TestEnsureBucket_CreatesMissingBucket(t *testing.T) {
	client, requests := fakeS3(t, false)

	require.NoError(t, EnsureBucket(context.Background(), client, "metrics-archive"))

	methods := make([]string, 0, len(*requests))
	for _, r := range *requests {
		methods = append(methods, r.method)
	}
	assert.Equal(t, []string{http.MethodHead, http.MethodPut}, methods)
}
