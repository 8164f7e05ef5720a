package llamaparse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser_RequiresAPIKey(t *testing.T) {
	_, err := NewParser(Config{})
	assert.Error(t, err)
}

func TestParser_Supports(t *testing.T) {
	p, err := NewParser(Config{APIKey: "key"})
	require.NoError(t, err)

	assert.True(t, p.Supports("pdf"))
	assert.True(t, p.Supports("docx"))
	assert.False(t, p.Supports("txt"))
	assert.False(t, p.Supports("md"))
}

func TestParser_Parse(t *testing.T) {
	var polls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/parsing/upload":
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(uploadResponse{ID: "job-1"}) //nolint:errcheck
		case "/api/parsing/job/job-1":
			status := "PENDING"
			if polls.Add(1) >= 2 {
				status = "SUCCESS"
			}
			json.NewEncoder(w).Encode(jobStatusResponse{Status: status}) //nolint:errcheck
		case "/api/parsing/job/job-1/result/markdown":
			json.NewEncoder(w).Encode(markdownResponse{Markdown: "# parsed"}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	p, err := NewParser(Config{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	text, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# parsed", text)
	assert.GreaterOrEqual(t, polls.Load(), int32(2))
}

func TestParser_Parse_JobError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/parsing/upload":
			json.NewEncoder(w).Encode(uploadResponse{ID: "job-2"}) //nolint:errcheck
		case "/api/parsing/job/job-2":
			json.NewEncoder(w).Encode(jobStatusResponse{Status: "ERROR"}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	p, err := NewParser(Config{APIKey: "key", BaseURL: server.URL, PollInterval: 10 * time.Millisecond})
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERROR")
}

func TestParser_Parse_MissingFile(t *testing.T) {
	p, err := NewParser(Config{APIKey: "key"})
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}
