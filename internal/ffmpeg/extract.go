package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"scribe/internal/fileutil"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services"
)

// AudioSpec enumerates the encode parameters for extracted audio.
type AudioSpec struct {
	SampleRate int
	Channels   int
	Bitrate    string
	Codec      string
	Format     string
}

// Extractor pulls the audio track out of a video file via ffmpeg.
type Extractor struct {
	binary string
	logger *slog.Logger
	run    CommandRunner
}

// NewExtractor constructs an audio extractor.
func NewExtractor(binary string, logger *slog.Logger) *Extractor {
	if strings.TrimSpace(binary) == "" {
		binary = ffmpegCommand
	}
	return &Extractor{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "extractor"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (e *Extractor) WithCommandRunner(r CommandRunner) {
	if e != nil && r != nil {
		e.run = r
	}
}

// Extract writes the audio track of video to outputPath, encoded per spec.
// When outputPath is empty, a sibling of the input with the spec's format
// extension is used. Partial output is removed on failure.
func (e *Extractor) Extract(ctx context.Context, video media.Asset, spec AudioSpec, outputPath string) (media.Asset, error) {
	if !video.Exists() {
		return media.Asset{}, services.Wrap(services.ErrMediaNotFound, "extract-audio", "check input",
			fmt.Sprintf("video file not found: %s", video.Path), nil)
	}

	if strings.TrimSpace(outputPath) == "" {
		outputPath = fileutil.ReplaceExt(video.Path, spec.Format)
	}

	args := buildExtractArgs(video.Path, spec, outputPath)

	e.logger.Debug("extracting audio",
		logging.String("source_file", video.Path),
		logging.String("destination", outputPath),
		logging.Int("sample_rate", spec.SampleRate),
		logging.Int("channels", spec.Channels),
	)

	start := time.Now()
	if err := e.run(ctx, e.binary, args...); err != nil {
		_ = os.Remove(outputPath)
		return media.Asset{}, services.Wrap(services.ErrTranscode, "extract-audio", "run ffmpeg",
			"audio extraction failed", err)
	}

	audio, err := media.NewAsset(outputPath, video.Duration)
	if err != nil {
		return media.Asset{}, services.Wrap(services.ErrTranscode, "extract-audio", "verify output",
			"ffmpeg did not produce an output file", err)
	}

	e.logger.Info("audio extracted",
		logging.String("destination", outputPath),
		logging.Float64("size_mb", float64(audio.Size)/1_048_576),
		logging.Duration("elapsed", time.Since(start)),
	)
	return audio, nil
}

// ExtractCopy copies the audio streams out of video without re-encoding,
// preserving the source codec and bitrate. When outputPath is empty a
// Matroska audio sibling of the input is used, since that container can
// hold any source codec.
func (e *Extractor) ExtractCopy(ctx context.Context, video media.Asset, outputPath string) (media.Asset, error) {
	if !video.Exists() {
		return media.Asset{}, services.Wrap(services.ErrMediaNotFound, "extract-audio", "check input",
			fmt.Sprintf("video file not found: %s", video.Path), nil)
	}

	if strings.TrimSpace(outputPath) == "" {
		outputPath = fileutil.ReplaceExt(video.Path, ".mka")
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", video.Path,
		"-map", "a",
		"-c:a", "copy",
		outputPath,
	}

	e.logger.Debug("copying audio streams",
		logging.String("source_file", video.Path),
		logging.String("destination", outputPath),
	)

	start := time.Now()
	if err := e.run(ctx, e.binary, args...); err != nil {
		_ = os.Remove(outputPath)
		return media.Asset{}, services.Wrap(services.ErrTranscode, "extract-audio", "run ffmpeg",
			"audio stream copy failed", err)
	}

	audio, err := media.NewAsset(outputPath, video.Duration)
	if err != nil {
		return media.Asset{}, services.Wrap(services.ErrTranscode, "extract-audio", "verify output",
			"ffmpeg did not produce an output file", err)
	}

	e.logger.Info("audio extracted",
		logging.String("destination", outputPath),
		logging.Float64("size_mb", float64(audio.Size)/1_048_576),
		logging.Duration("elapsed", time.Since(start)),
	)
	return audio, nil
}

func buildExtractArgs(input string, spec AudioSpec, output string) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-vn",
		"-sn",
		"-dn",
	}
	if spec.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(spec.Channels))
	}
	if spec.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(spec.SampleRate))
	}
	if strings.TrimSpace(spec.Codec) != "" {
		args = append(args, "-c:a", spec.Codec)
	}
	if strings.TrimSpace(spec.Bitrate) != "" {
		args = append(args, "-b:a", spec.Bitrate)
	}
	return append(args, output)
}
