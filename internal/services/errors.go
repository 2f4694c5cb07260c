package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classify pipeline failures. Stage code wraps concrete
// failures with one of these markers so the orchestrator and CLI can react
// with errors.Is without parsing message text.
var (
	// ErrMediaNotFound marks a missing input file. Non-retriable without
	// user action.
	ErrMediaNotFound = errors.New("media not found")
	// ErrTranscode marks an ffmpeg failure during audio extraction.
	ErrTranscode = errors.New("transcode error")
	// ErrMux marks an ffmpeg failure while embedding subtitles.
	ErrMux = errors.New("mux error")
	// ErrModelLoad marks a failed speech model load. Fatal for the backend
	// instance that observed it.
	ErrModelLoad = errors.New("model load error")
	// ErrModelRun marks a speech model invocation that started but did not
	// finish cleanly. The instance stays usable.
	ErrModelRun = errors.New("model run error")
	// ErrUpload marks a transport failure while placing audio in the remote
	// content store.
	ErrUpload = errors.New("upload error")
	// ErrJobFailed marks a remote transcription job that finished in the
	// FAILED state.
	ErrJobFailed = errors.New("transcription job failed")
	// ErrJobTimeout marks a poll loop that exhausted its configured wait.
	// Retriable by resubmitting the job.
	ErrJobTimeout = errors.New("transcription job timeout")
	// ErrMalformedTranscript marks backend output that violates segment
	// ordering or shape invariants. Always surfaced, never coerced.
	ErrMalformedTranscript = errors.New("malformed transcript")
	// ErrTranslation marks a remote translation failure. The translation
	// stage recovers these per segment; they never abort a run.
	ErrTranslation = errors.New("translation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks invalid stage input.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retriable reports whether a failed run can be retried without user action.
func Retriable(err error) bool {
	return errors.Is(err, ErrJobTimeout)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
