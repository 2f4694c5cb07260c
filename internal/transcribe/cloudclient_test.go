package transcribe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientUploadAndJobLifecycle(t *testing.T) {
	var gotAuth, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /buckets/subtitles/objects/{name}", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		json.NewEncoder(w).Encode(map[string]string{"uri": "store://subtitles/" + r.PathValue("name")})
	})
	mux.HandleFunc("POST /jobs", func(w http.ResponseWriter, r *http.Request) {
		var req JobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.MediaURI == "" || req.MediaFormat != "wav" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(Job{Name: req.Name, Status: StatusSubmitted})
	})
	mux.HandleFunc("GET /jobs/{name}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Job{
			Name:      r.PathValue("name"),
			Status:    StatusCompleted,
			ResultURI: "results/" + r.PathValue("name") + ".json",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL + "/", APIKey: "secret"})
	ctx := context.Background()

	uri, err := client.Upload(ctx, "subtitles", "job-1.wav", strings.NewReader("RIFF"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if uri != "store://subtitles/job-1.wav" {
		t.Fatalf("unexpected upload URI %q", uri)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody != "RIFF" {
		t.Fatalf("unexpected upload body %q", gotBody)
	}

	job, err := client.StartJob(ctx, JobRequest{Name: "job-1", MediaURI: uri, MediaFormat: "wav"})
	if err != nil {
		t.Fatalf("StartJob: %v", err)
	}
	if job.Status != StatusSubmitted {
		t.Fatalf("unexpected status %q", job.Status)
	}

	job, err = client.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if !job.Status.Terminal() || job.ResultURI != "results/job-1.json" {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestClientFetchResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": {
				"language_code": "en",
				"items": [
					{"type": "pronunciation", "start_time": "0.0", "end_time": "0.5",
					 "alternatives": [{"content": "hello"}]},
					{"type": "punctuation", "alternatives": [{"content": "."}]}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	doc, err := client.FetchResult(context.Background(), server.URL+"/results/job-1.json")
	if err != nil {
		t.Fatalf("FetchResult: %v", err)
	}
	if doc.Results.LanguageCode != "en" || len(doc.Results.Items) != 2 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Results.Items[0].content() != "hello" {
		t.Fatalf("unexpected first item %+v", doc.Results.Items[0])
	}
}

func TestClientSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	_, err := client.StartJob(context.Background(), JobRequest{Name: "job-1", MediaURI: "u", MediaFormat: "wav"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected server error body in message, got %v", err)
	}
}

func TestClientStatusesAreTerminalOnlyWhenFinished(t *testing.T) {
	for status, terminal := range map[JobStatus]bool{
		StatusSubmitted:  false,
		StatusInProgress: false,
		StatusCompleted:  true,
		StatusFailed:     true,
	} {
		if status.Terminal() != terminal {
			t.Errorf("%s: Terminal() = %v, want %v", status, status.Terminal(), terminal)
		}
	}
}
