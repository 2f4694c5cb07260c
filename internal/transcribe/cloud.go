package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services"
	"scribe/internal/subtitles"
)

// CloudBackend transcribes audio through an asynchronous remote job: upload
// the artifact to the content store, submit a job, poll its status on a
// fixed interval, then fetch and parse the result document.
//
// The poll loop is bounded. The reference service offers no such bound, so
// the timeout lives here; exceeding it yields ErrJobTimeout, which is safe
// to retry by resubmitting.
type CloudBackend struct {
	api              JobAPI
	bucket           string
	mediaFormat      string
	pollInterval     time.Duration
	pollTimeout      time.Duration
	sentenceGrouping bool
	logger           *slog.Logger

	sleep func(context.Context, time.Duration) error
}

// NewCloudBackend constructs the cloud transcription backend.
func NewCloudBackend(cfg *config.Config, api JobAPI, logger *slog.Logger) *CloudBackend {
	return &CloudBackend{
		api:              api,
		bucket:           cfg.Cloud.Bucket,
		mediaFormat:      cfg.Cloud.MediaFormat,
		pollInterval:     time.Duration(cfg.Cloud.PollInterval) * time.Second,
		pollTimeout:      time.Duration(cfg.Cloud.PollTimeout) * time.Second,
		sentenceGrouping: cfg.Cloud.SentenceGrouping,
		logger:           logging.NewComponentLogger(logger, "cloud"),
		sleep:            sleepContext,
	}
}

// WithSleeper overrides how poll waits are performed (useful for tests).
func (b *CloudBackend) WithSleeper(sleep func(context.Context, time.Duration) error) {
	if b != nil && sleep != nil {
		b.sleep = sleep
	}
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

// Transcribe uploads the audio, runs a remote job to completion, and parses
// the result document. Overlapping items in the raw document are dropped
// rather than rejected; the drop count is logged.
func (b *CloudBackend) Transcribe(ctx context.Context, audio media.Asset, languageHint string) (subtitles.Transcript, error) {
	if !audio.Exists() {
		return subtitles.Transcript{}, services.Wrap(services.ErrMediaNotFound, "transcribe", "check input",
			fmt.Sprintf("audio file not found: %s", audio.Path), nil)
	}

	jobName := newJobName()

	file, err := os.Open(audio.Path)
	if err != nil {
		return subtitles.Transcript{}, services.Wrap(services.ErrUpload, "transcribe", "open audio", audio.Path, err)
	}
	mediaURI, err := b.api.Upload(ctx, b.bucket, jobName+"."+b.mediaFormat, file)
	file.Close()
	if err != nil {
		return subtitles.Transcript{}, services.Wrap(services.ErrUpload, "transcribe", "upload audio",
			"content store rejected the artifact", err)
	}
	b.logger.Info("audio uploaded",
		logging.String("media_uri", mediaURI),
		logging.String("job_name", jobName),
	)

	if _, err := b.api.StartJob(ctx, JobRequest{
		Name:        jobName,
		MediaURI:    mediaURI,
		MediaFormat: b.mediaFormat,
		Language:    strings.TrimSpace(languageHint),
	}); err != nil {
		return subtitles.Transcript{}, services.Wrap(services.ErrJobFailed, "transcribe", "submit job", jobName, err)
	}

	job, err := b.awaitJob(ctx, jobName)
	if err != nil {
		return subtitles.Transcript{}, err
	}

	doc, err := b.api.FetchResult(ctx, job.ResultURI)
	if err != nil {
		return subtitles.Transcript{}, services.Wrap(services.ErrJobFailed, "transcribe", "fetch result", job.ResultURI, err)
	}

	return b.buildTranscript(doc, audio, languageHint)
}

// awaitJob polls until the job reaches a terminal status or the configured
// wait is exhausted.
func (b *CloudBackend) awaitJob(ctx context.Context, jobName string) (Job, error) {
	var waited time.Duration
	for {
		job, err := b.api.GetJob(ctx, jobName)
		if err != nil {
			return Job{}, services.Wrap(services.ErrJobFailed, "transcribe", "poll job", jobName, err)
		}
		switch job.Status {
		case StatusCompleted:
			return job, nil
		case StatusFailed:
			reason := strings.TrimSpace(job.Reason)
			if reason == "" {
				reason = "remote job reported failure"
			}
			return Job{}, services.Wrap(services.ErrJobFailed, "transcribe", "poll job", reason, nil)
		}

		if waited >= b.pollTimeout {
			return Job{}, services.Wrap(services.ErrJobTimeout, "transcribe", "poll job",
				fmt.Sprintf("job %s not finished after %s", jobName, b.pollTimeout), nil)
		}
		b.logger.Debug("job not ready",
			logging.String("job_name", jobName),
			logging.String("status", string(job.Status)),
			logging.Duration("waited", waited),
		)
		if err := b.sleep(ctx, b.pollInterval); err != nil {
			return Job{}, err
		}
		waited += b.pollInterval
	}
}

func (b *CloudBackend) buildTranscript(doc ResultDocument, audio media.Asset, languageHint string) (subtitles.Transcript, error) {
	var segments []subtitles.Segment
	var err error
	if b.sentenceGrouping {
		segments, err = sentenceSegments(doc.Results.Items)
	} else {
		segments, err = wordSegments(doc.Results.Items)
	}
	if err != nil {
		return subtitles.Transcript{}, services.Wrap(services.ErrMalformedTranscript, "transcribe", "parse result", "", err)
	}

	normalized, dropped, err := subtitles.Normalize(segments, subtitles.RepairOverlaps)
	if err != nil {
		return subtitles.Transcript{}, err
	}
	if dropped > 0 {
		b.logger.Warn("dropped overlapping transcript items",
			logging.Int("dropped", dropped),
			logging.Int("kept", len(normalized)),
		)
	}

	language := strings.TrimSpace(doc.Results.LanguageCode)
	if language == "" {
		language = strings.TrimSpace(languageHint)
	}
	return subtitles.Transcript{Segments: normalized, Language: language, Source: audio.Path}, nil
}

// newJobName produces a collision-resistant job identifier.
func newJobName() string {
	return "scribe-" + uuid.NewString()
}
