package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultCloudHTTPTimeout = 60 * time.Second

// JobStatus is the lifecycle state of a remote transcription job.
type JobStatus string

const (
	StatusSubmitted  JobStatus = "SUBMITTED"
	StatusInProgress JobStatus = "IN_PROGRESS"
	StatusCompleted  JobStatus = "COMPLETED"
	StatusFailed     JobStatus = "FAILED"
)

// Terminal reports whether the status ends the job lifecycle.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks a remote transcription task.
type Job struct {
	Name      string    `json:"name"`
	Status    JobStatus `json:"status"`
	ResultURI string    `json:"result_uri,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// JobRequest describes a transcription job submission.
type JobRequest struct {
	Name        string `json:"name"`
	MediaURI    string `json:"media_uri"`
	MediaFormat string `json:"media_format"`
	Language    string `json:"language,omitempty"`
}

// JobAPI is the remote capability surface the cloud backend depends on.
type JobAPI interface {
	Upload(ctx context.Context, bucket, name string, body io.Reader) (string, error)
	StartJob(ctx context.Context, req JobRequest) (Job, error)
	GetJob(ctx context.Context, name string) (Job, error)
	FetchResult(ctx context.Context, uri string) (ResultDocument, error)
}

// ClientConfig captures the runtime settings for the transcription service.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// Client talks to the remote transcription service over HTTP.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// ClientOption customizes the client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a transcription service client.
func NewClient(cfg ClientConfig, opts ...ClientOption) *Client {
	timeout := defaultCloudHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: ClientConfig{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			APIKey:         strings.TrimSpace(cfg.APIKey),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Upload places the audio payload in the remote content store and returns
// its location URI.
func (c *Client) Upload(ctx context.Context, bucket, name string, body io.Reader) (string, error) {
	endpoint := fmt.Sprintf("%s/buckets/%s/objects/%s", c.cfg.BaseURL, url.PathEscape(bucket), url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload object: %s", readErrorBody(resp))
	}

	var payload struct {
		URI string `json:"uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.URI != "" {
		return payload.URI, nil
	}
	return endpoint, nil
}

// StartJob submits a transcription job.
func (c *Client) StartJob(ctx context.Context, jobReq JobRequest) (Job, error) {
	body, err := json.Marshal(jobReq)
	if err != nil {
		return Job{}, fmt.Errorf("encode job request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return Job{}, fmt.Errorf("build job request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Job{}, fmt.Errorf("submit job: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Job{}, fmt.Errorf("submit job: %s", readErrorBody(resp))
	}

	var job Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return Job{}, fmt.Errorf("decode job response: %w", err)
	}
	if job.Name == "" {
		job.Name = jobReq.Name
	}
	return job, nil
}

// GetJob fetches the current state of a job.
func (c *Client) GetJob(ctx context.Context, name string) (Job, error) {
	endpoint := c.cfg.BaseURL + "/jobs/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Job{}, fmt.Errorf("build status request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Job{}, fmt.Errorf("poll job: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Job{}, fmt.Errorf("poll job: %s", readErrorBody(resp))
	}

	var job Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return Job{}, fmt.Errorf("decode job status: %w", err)
	}
	return job, nil
}

// FetchResult downloads and decodes the transcript document a completed job
// points at.
func (c *Client) FetchResult(ctx context.Context, uri string) (ResultDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return ResultDocument{}, fmt.Errorf("build result request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ResultDocument{}, fmt.Errorf("fetch result: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ResultDocument{}, fmt.Errorf("fetch result: %s", readErrorBody(resp))
	}

	var doc ResultDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return ResultDocument{}, fmt.Errorf("decode result document: %w", err)
	}
	return doc, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
}

func readErrorBody(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, bytes.TrimSpace(data))
}
