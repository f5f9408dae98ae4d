package gitlab_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/apiarycd/release-manager/internal/hosting"
	glreader "github.com/apiarycd/release-manager/internal/hosting/gitlab"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/repository/files/release.yml/raw") ||
			r.URL.Query().Get("ref") != "release-manager-10.2" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"404 File Not Found"}`))
			return
		}
		assert.Equal(t, "tok", r.Header.Get("PRIVATE-TOKEN"))

		_, _ = w.Write([]byte("version: 10.2\n"))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestReader_ReadFile(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	reader, err := glreader.NewReader(glreader.Config{Host: srv.URL, AccessToken: "tok"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	content, err := reader.ReadFile(context.Background(), "org", "repo", "release-manager-10.2", "release.yml")
	require.NoError(t, err)
	assert.Equal(t, "version: 10.2\n", string(content))
}

func TestReader_ReadFile_not_found(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	reader, err := glreader.NewReader(glreader.Config{Host: srv.URL, AccessToken: "tok"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = reader.ReadFile(context.Background(), "org", "repo", "main", "release.yml")
	assert.ErrorIs(t, err, hosting.ErrFileNotFound)
}

func TestNewReader_default_host(t *testing.T) {
	t.Parallel()

	reader, err := glreader.NewReader(glreader.Config{AccessToken: "tok"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NotNil(t, reader)
}
