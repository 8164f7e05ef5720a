// Package llamaparse provides a document parser adapter backed by the
// LlamaParse cloud API. Files are uploaded, parsed asynchronously and
// the result fetched as markdown.
package llamaparse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Default configuration values.
const (
	DefaultBaseURL      = "https://api.cloud.llamaindex.ai"
	DefaultTimeout      = 2 * time.Minute
	DefaultPollInterval = 2 * time.Second
)

// Extensions the cloud parser handles better than local extraction.
var supportedExtensions = map[string]bool{
	"pdf":  true,
	"docx": true,
	"doc":  true,
	"pptx": true,
	"ppt":  true,
	"xlsx": true,
	"xls":  true,
}

// Config holds configuration for the LlamaParse client.
type Config struct {
	// APIKey is the LlamaCloud API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.cloud.llamaindex.ai).
	BaseURL string

	// Timeout bounds a whole parse including polling (default: 2m).
	Timeout time.Duration

	// PollInterval is the delay between job status checks (default: 2s).
	PollInterval time.Duration
}

// Parser uploads documents to LlamaParse and retrieves parsed markdown.
// Requests are rate limited to stay inside the free-tier quota.
type Parser struct {
	client       *http.Client
	limiter      *rate.Limiter
	baseURL      string
	apiKey       string
	timeout      time.Duration
	pollInterval time.Duration
}

type uploadResponse struct {
	ID string `json:"id"`
}

type jobStatusResponse struct {
	Status string `json:"status"`
}

type markdownResponse struct {
	Markdown string `json:"markdown"`
}

// NewParser creates a LlamaParse client.
func NewParser(cfg Config) (*Parser, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llamaparse: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	return &Parser{
		client:       &http.Client{Timeout: 30 * time.Second},
		limiter:      rate.NewLimiter(rate.Every(time.Second), 5),
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		timeout:      cfg.Timeout,
		pollInterval: cfg.PollInterval,
	}, nil
}

// Supports reports whether the parser handles the given extension.
func (p *Parser) Supports(ext string) bool {
	return supportedExtensions[ext]
}

// Parse uploads the file, waits for the parse job and returns the
// extracted text as markdown.
func (p *Parser) Parse(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	jobID, err := p.upload(ctx, path)
	if err != nil {
		return "", err
	}

	if err := p.waitForJob(ctx, jobID); err != nil {
		return "", err
	}

	return p.fetchMarkdown(ctx, jobID)
}

// upload sends the file and returns the parse job id.
func (p *Parser) upload(ctx context.Context, path string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llamaparse: rate limit wait: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("llamaparse: opening file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("llamaparse: creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("llamaparse: reading file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("llamaparse: finalizing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/api/parsing/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("llamaparse: creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	var upload uploadResponse
	if err := p.do(req, &upload); err != nil {
		return "", err
	}
	if upload.ID == "" {
		return "", fmt.Errorf("llamaparse: upload returned no job id")
	}
	return upload.ID, nil
}

// waitForJob polls until the job finishes or the context expires.
func (p *Parser) waitForJob(ctx context.Context, jobID string) error {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("llamaparse: rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/api/parsing/job/%s", p.baseURL, jobID), http.NoBody)
		if err != nil {
			return fmt.Errorf("llamaparse: creating status request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+p.apiKey)

		var status jobStatusResponse
		if err := p.do(req, &status); err != nil {
			return err
		}

		switch status.Status {
		case "SUCCESS":
			return nil
		case "ERROR", "CANCELLED":
			return fmt.Errorf("llamaparse: job %s finished with status %s", jobID, status.Status)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("llamaparse: waiting for job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// fetchMarkdown retrieves the parsed markdown for a finished job.
func (p *Parser) fetchMarkdown(ctx context.Context, jobID string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llamaparse: rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/parsing/job/%s/result/markdown", p.baseURL, jobID), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("llamaparse: creating result request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	var result markdownResponse
	if err := p.do(req, &result); err != nil {
		return "", err
	}
	return result.Markdown, nil
}

// do executes a request and decodes a JSON response into out.
func (p *Parser) do(req *http.Request, out any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("llamaparse: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("llamaparse: API returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("llamaparse: API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("llamaparse: decode response: %w", err)
	}
	return nil
}
