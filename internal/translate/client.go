package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scribe/internal/services"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

// Language is one entry from the service's language catalog.
type Language struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Targets []string `json:"targets,omitempty"`
}

// Detection is the service's guess at a text's source language.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// ClientConfig captures the runtime settings for the translation service.
type ClientConfig struct {
	URL            string
	APIKey         string
	TimeoutSeconds int
}

// Client talks to a LibreTranslate-compatible service over HTTP. Transient
// failures (transport errors, 429, 5xx) are retried with a fixed delay.
type Client struct {
	cfg         ClientConfig
	httpClient  *http.Client
	maxAttempts int
	retryDelay  time.Duration
	sleep       func(context.Context, time.Duration) error
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

// WithSleeper overrides how retry waits are performed (useful for tests).
func WithSleeper(sleep func(context.Context, time.Duration) error) ClientOption {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// NewClient constructs a translation service client.
func NewClient(cfg ClientConfig, opts ...ClientOption) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: ClientConfig{
			URL:            strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
			APIKey:         strings.TrimSpace(cfg.APIKey),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Translate renders text from the source language into the target language.
// Source may be "auto". Empty and whitespace-only text is returned unchanged
// without touching the service.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if source == "" {
		source = "auto"
	}

	payload := map[string]any{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}
	if c.cfg.APIKey != "" {
		payload["api_key"] = c.cfg.APIKey
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := c.post(ctx, "/translate", payload, &result); err != nil {
		return "", services.Wrap(services.ErrTranslation, "translate", "translate text", "", err)
	}
	return result.TranslatedText, nil
}

// Detect asks the service which language the text is written in.
func (c *Client) Detect(ctx context.Context, text string) (Detection, error) {
	payload := map[string]any{"q": text}
	if c.cfg.APIKey != "" {
		payload["api_key"] = c.cfg.APIKey
	}

	var detections []Detection
	if err := c.post(ctx, "/detect", payload, &detections); err != nil {
		return Detection{}, services.Wrap(services.ErrTranslation, "translate", "detect language", "", err)
	}
	if len(detections) == 0 {
		return Detection{}, services.Wrap(services.ErrTranslation, "translate", "detect language",
			"service returned no candidates", nil)
	}
	return detections[0], nil
}

// Languages fetches the service's language catalog.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"/languages", nil)
	if err != nil {
		return nil, fmt.Errorf("build languages request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTranslation, "translate", "list languages", "", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrTranslation, "translate", "list languages", readErrorBody(resp), nil)
	}

	var languages []Language
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		return nil, services.Wrap(services.ErrTranslation, "translate", "list languages", "decode catalog", err)
	}
	return languages, nil
}

// Health reports whether the service is reachable and serving its catalog.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Languages(ctx)
	return err
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return err
			}
		}
		retriable, err := c.postOnce(ctx, path, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retriable {
			return err
		}
	}
	return lastErr
}

func (c *Client) postOnce(ctx context.Context, path string, body []byte, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+path, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		retriable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retriable, fmt.Errorf("%s", readErrorBody(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func readErrorBody(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.Status
	}
	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Sprintf("%s: %s", resp.Status, apiErr.Error)
	}
	return fmt.Sprintf("%s: %s", resp.Status, bytes.TrimSpace(data))
}
