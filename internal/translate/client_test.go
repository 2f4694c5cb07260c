package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scribe/internal/services"
)

func TestClientTranslate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "hola mundo"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL, APIKey: "key-123"})
	out, err := client.Translate(context.Background(), "hello world", "en", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "hola mundo" {
		t.Fatalf("unexpected translation %q", out)
	}
	if got["q"] != "hello world" || got["source"] != "en" || got["target"] != "es" {
		t.Fatalf("unexpected request payload %v", got)
	}
	if got["format"] != "text" {
		t.Fatalf("expected plain text format, got %v", got["format"])
	}
	if got["api_key"] != "key-123" {
		t.Fatalf("expected api key in payload, got %v", got["api_key"])
	}
}

func TestClientTranslateEmptyTextSkipsService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("service must not be called for empty text")
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	for _, text := range []string{"", "   ", "\n\t"} {
		out, err := client.Translate(context.Background(), text, "en", "es")
		if err != nil {
			t.Fatalf("Translate(%q): %v", text, err)
		}
		if out != text {
			t.Fatalf("Translate(%q) = %q, want input unchanged", text, out)
		}
	}
}

func TestClientTranslateDefaultsToAutoSource(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "x"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	if _, err := client.Translate(context.Background(), "text", "", "fr"); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got["source"] != "auto" {
		t.Fatalf("expected auto source, got %v", got["source"])
	}
}

func TestClientTranslateSurfacesServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	_, err := client.Translate(context.Background(), "hello", "en", "es")
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected ErrTranslation, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("expected service error message, got %q", err.Error())
	}
}

func TestClientTranslateRetriesTransientFailures(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "bonjour"})
	}))
	defer server.Close()

	var sleeps int
	client := NewClient(ClientConfig{URL: server.URL}, WithSleeper(func(ctx context.Context, d time.Duration) error {
		sleeps++
		return nil
	}))
	out, err := client.Translate(context.Background(), "hello", "en", "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "bonjour" {
		t.Fatalf("unexpected translation %q", out)
	}
	if requests != 2 {
		t.Fatalf("expected 2 requests, got %d", requests)
	}
	if sleeps != 1 {
		t.Fatalf("expected 1 retry wait, got %d", sleeps)
	}
}

func TestClientTranslateDoesNotRetryClientErrors(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "bad target", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL}, WithSleeper(func(ctx context.Context, d time.Duration) error {
		t.Error("client errors must not trigger a retry wait")
		return nil
	}))
	_, err := client.Translate(context.Background(), "hello", "en", "zz")
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected ErrTranslation, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected 1 request, got %d", requests)
	}
}

func TestClientTranslateGivesUpAfterMaxAttempts(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "still overloaded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	var sleeps int
	client := NewClient(ClientConfig{URL: server.URL}, WithSleeper(func(ctx context.Context, d time.Duration) error {
		sleeps++
		return nil
	}))
	_, err := client.Translate(context.Background(), "hello", "en", "fr")
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected ErrTranslation, got %v", err)
	}
	if requests != 3 {
		t.Fatalf("expected 3 requests, got %d", requests)
	}
	if sleeps != 2 {
		t.Fatalf("expected 2 retry waits, got %d", sleeps)
	}
}

func TestClientDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]Detection{{Language: "de", Confidence: 0.92}})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	detection, err := client.Detect(context.Background(), "guten tag")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if detection.Language != "de" || detection.Confidence != 0.92 {
		t.Fatalf("unexpected detection %+v", detection)
	}
}

func TestClientLanguagesAndHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/languages" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]Language{
			{Code: "en", Name: "English"},
			{Code: "es", Name: "Spanish"},
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	languages, err := client.Languages(context.Background())
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}
	if len(languages) != 2 || languages[0].Code != "en" {
		t.Fatalf("unexpected catalog %+v", languages)
	}
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestClientHealthFailsWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	if err := client.Health(context.Background()); !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected ErrTranslation, got %v", err)
	}
}
