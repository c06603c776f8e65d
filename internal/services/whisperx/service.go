package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	langpkg "chaptersplit/internal/language"
	"chaptersplit/internal/logging"
	"chaptersplit/internal/services"
	"chaptersplit/internal/timecode"
	"chaptersplit/internal/transcript"
)

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	uvxBinary     string
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, ffmpegBinary, uvxBinary string) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if uvxBinary == "" {
		uvxBinary = "uvx"
	}
	return &Service{
		cfg:          cfg,
		ffmpegBinary: ffmpegBinary,
		uvxBinary:    uvxBinary,
		logger:       logging.NewComponentLogger(nil, "whisperx"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// WithLogger attaches a logger.
func (s *Service) WithLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, "whisperx")
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.model()
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	// Force legacy behavior so bundled WhisperX binaries can load checkpoints safely.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe produces ordered millisecond segments for the recording at
// audioPath. Intermediate files live in a scratch directory under workDir
// that is removed before returning.
func (s *Service) Transcribe(ctx context.Context, audioPath, workDir string) ([]transcript.Segment, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, services.Wrap(services.ErrInput, "transcribe", "validate", "audio path required", nil)
	}
	if workDir == "" {
		workDir = os.TempDir()
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("transcribe: ensure work dir: %w", err)
	}
	scratch, err := os.MkdirTemp(workDir, "whisperx-*")
	if err != nil {
		return nil, fmt.Errorf("transcribe: create scratch dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(scratch)
	}()

	logger := logging.WithContext(ctx, s.logger)
	start := time.Now()

	wavPath := filepath.Join(scratch, "audio.wav")
	if err := s.ExtractAudio(ctx, audioPath, wavPath); err != nil {
		return nil, s.classify(ctx, "extract", err)
	}

	logger.Info("whisperx transcription started",
		logging.String("model", s.Model()),
		logging.Bool("cuda", s.cfg.CUDAEnabled),
		logging.Int("threads", s.cfg.Threads),
	)
	if err := s.run(ctx, s.uvxBinary, s.buildArgs(wavPath, scratch)...); err != nil {
		return nil, s.classify(ctx, "transcribe", err)
	}

	raw, err := LoadSegments(filepath.Join(scratch, "audio.json"))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "load output", "whisperx produced no usable json", err)
	}
	segments := convertSegments(raw)
	logger.Info("whisperx transcription finished",
		logging.Int("segment_count", len(segments)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return segments, nil
}

func (s *Service) classify(ctx context.Context, op string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return services.Wrap(services.ErrTimeout, "transcribe", op, "transcription timed out", err)
	}
	return services.Wrap(services.ErrExternalTool, "transcribe", op, "command failed", err)
}

// buildArgs assembles the uvx invocation. The output lands in outputDir as
// <source stem>.json.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := append(make([]string, 0, 48), s.cfg.indexFlags()...)
	args = append(args,
		"whisperx", source,
		"--model", s.cfg.model(),
		"--output_dir", outputDir,
		"--output_format", jsonOutput,
	)
	for _, flag := range decoding {
		args = append(args, flag[0], flag[1])
	}
	if s.cfg.Threads > 0 {
		args = append(args, "--threads", strconv.Itoa(s.cfg.Threads))
	}

	vad := s.cfg.vadMethod()
	args = append(args, "--vad_method", vad)
	if vad == vadPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}
	if lang := langpkg.ToISO2(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return append(args, s.cfg.deviceFlags()...)
}

// Word represents a single word with timing from WhisperX output.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

// whisperXPayload is the JSON structure from WhisperX output.
type whisperXPayload struct {
	Segments []Segment `json:"segments"`
}

// LoadSegments loads segments from a WhisperX JSON file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload.Segments, nil
}

// convertSegments drops empty text, converts seconds to milliseconds, and
// orders the result by start time.
func convertSegments(raw []Segment) []transcript.Segment {
	segments := make([]transcript.Segment, 0, len(raw))
	for _, seg := range raw {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		start := timecode.SecondsToMillis(seg.Start)
		end := max(timecode.SecondsToMillis(seg.End), start)
		segments = append(segments, transcript.Segment{Start: start, End: end, Text: text})
	}
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments
}
