package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scribe/internal/fileutil"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services"
)

// MuxRequest describes the inputs for subtitle muxing.
type MuxRequest struct {
	Video         media.Asset
	Subtitles     media.Asset
	OutputPath    string
	SubtitleCodec string
	Language      string
}

// Muxer embeds subtitle files into video containers using ffmpeg. Video and
// audio streams are stream-copied; only the subtitle track is converted.
type Muxer struct {
	binary string
	logger *slog.Logger
	run    CommandRunner
}

// NewMuxer constructs a subtitle muxer.
func NewMuxer(binary string, logger *slog.Logger) *Muxer {
	if strings.TrimSpace(binary) == "" {
		binary = ffmpegCommand
	}
	return &Muxer{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "muxer"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (m *Muxer) WithCommandRunner(r CommandRunner) {
	if m != nil && r != nil {
		m.run = r
	}
}

// Mux embeds the subtitle file as a soft track. The output is written to a
// temporary file in the destination directory and renamed into place so a
// failed mux never leaves a half-written final artifact.
func (m *Muxer) Mux(ctx context.Context, req MuxRequest) (media.Asset, error) {
	if !req.Video.Exists() {
		return media.Asset{}, services.Wrap(services.ErrMediaNotFound, "add-subtitles", "check input",
			fmt.Sprintf("video file not found: %s", req.Video.Path), nil)
	}
	if !req.Subtitles.Exists() {
		return media.Asset{}, services.Wrap(services.ErrMediaNotFound, "add-subtitles", "check input",
			fmt.Sprintf("subtitle file not found: %s", req.Subtitles.Path), nil)
	}

	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = fileutil.SiblingWithSuffix(req.Video.Path, "_subtitled")
	}

	dir := filepath.Dir(outputPath)
	tmpPath := filepath.Join(dir, ".mux-"+filepath.Base(outputPath)+".tmp"+filepath.Ext(outputPath))

	args := buildMuxArgs(req, tmpPath)

	m.logger.Debug("executing ffmpeg mux",
		logging.String("video", req.Video.Path),
		logging.String("subtitles", req.Subtitles.Path),
		logging.String("destination", outputPath),
		logging.String("subtitle_codec", req.SubtitleCodec),
	)

	start := time.Now()
	if err := m.run(ctx, m.binary, args...); err != nil {
		_ = os.Remove(tmpPath)
		return media.Asset{}, services.Wrap(services.ErrMux, "add-subtitles", "run ffmpeg",
			"subtitle mux failed", err)
	}
	if _, err := os.Stat(tmpPath); err != nil {
		return media.Asset{}, services.Wrap(services.ErrMux, "add-subtitles", "verify output",
			"ffmpeg did not produce an output file", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return media.Asset{}, fmt.Errorf("replace output file: %w", err)
	}

	subtitled, err := media.NewAsset(outputPath, req.Video.Duration)
	if err != nil {
		return media.Asset{}, err
	}

	m.logger.Info("subtitles muxed",
		logging.String("destination", outputPath),
		logging.Duration("elapsed", time.Since(start)),
	)
	return subtitled, nil
}

func buildMuxArgs(req MuxRequest, output string) []string {
	codec := strings.TrimSpace(req.SubtitleCodec)
	if codec == "" {
		codec = "mov_text"
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", req.Video.Path,
		"-i", req.Subtitles.Path,
		"-map", "0",
		"-map", "1:0",
		"-c:v", "copy",
		"-c:a", "copy",
		"-c:s", codec,
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		args = append(args, "-metadata:s:s:0", "language="+lang)
	}
	return append(args, output)
}
