package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"chaptersplit/internal/services"
)

// Default encoding for chapter files.
const (
	DefaultBinary    = "ffmpeg"
	DefaultCodec     = "libmp3lame"
	DefaultBitrate   = "128k"
	DefaultExtension = "mp3"
)

// Tool extracts and transcodes audio regions.
type Tool interface {
	// Extract copies [startSec, startSec+durationSec) of source into dest as WAV.
	Extract(ctx context.Context, source string, startSec, durationSec float64, dest string) error
	// Transcode encodes source into dest with the configured codec.
	Transcode(ctx context.Context, source, dest string) error
}

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Encoding selects the output codec for chapter files.
type Encoding struct {
	Codec   string
	Bitrate string
}

// FFmpeg implements Tool on top of the ffmpeg binary.
type FFmpeg struct {
	binary   string
	encoding Encoding
	runner   CommandRunner
}

// NewFFmpeg returns an ffmpeg-backed Tool. Blank fields fall back to the
// package defaults.
func NewFFmpeg(binary string, enc Encoding) *FFmpeg {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	if strings.TrimSpace(enc.Codec) == "" {
		enc.Codec = DefaultCodec
	}
	if strings.TrimSpace(enc.Bitrate) == "" {
		enc.Bitrate = DefaultBitrate
	}
	return &FFmpeg{binary: binary, encoding: enc}
}

// WithCommandRunner sets a custom command runner (for testing).
func (f *FFmpeg) WithCommandRunner(runner CommandRunner) {
	f.runner = runner
}

// Extract implements Tool.
func (f *FFmpeg) Extract(ctx context.Context, source string, startSec, durationSec float64, dest string) error {
	if durationSec < 0 {
		return services.Wrap(services.ErrInput, "audio", "extract",
			fmt.Sprintf("negative duration %.3f", durationSec), nil)
	}
	return f.run(ctx, "extract", buildExtractArgs(source, startSec, durationSec, dest)...)
}

// Transcode implements Tool.
func (f *FFmpeg) Transcode(ctx context.Context, source, dest string) error {
	return f.run(ctx, "transcode", buildTranscodeArgs(source, dest, f.encoding)...)
}

func (f *FFmpeg) run(ctx context.Context, op string, args ...string) error {
	var err error
	if f.runner != nil {
		err = f.runner(ctx, f.binary, args...)
	} else {
		cmd := exec.CommandContext(ctx, f.binary, args...) //nolint:gosec
		if output, runErr := cmd.CombinedOutput(); runErr != nil {
			err = fmt.Errorf("%s: %w: %s", f.binary, runErr, strings.TrimSpace(string(output)))
		}
	}
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr == context.DeadlineExceeded {
		return services.Wrap(services.ErrTimeout, "audio", op, "ffmpeg timed out", err)
	}
	return services.Wrap(services.ErrExternalTool, "audio", op, "ffmpeg failed", err)
}

func buildExtractArgs(source string, startSec, durationSec float64, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatSeconds(startSec),
		"-t", formatSeconds(durationSec),
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-f", "wav",
		dest,
	}
}

func buildTranscodeArgs(source, dest string, enc Encoding) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-c:a", enc.Codec,
		"-b:a", enc.Bitrate,
		dest,
	}
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
