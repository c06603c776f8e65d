package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateChapters(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if err := ensurePositiveMap(map[string]int{
		"transcription.threads":         c.Transcription.Threads,
		"transcription.timeout_seconds": c.Transcription.TimeoutSeconds,
	}); err != nil {
		return err
	}
	switch c.Transcription.VADMethod {
	case "silero":
	case "pyannote":
		if c.Transcription.HFToken == "" {
			return errors.New("transcription.hf_token must be set when transcription.vad_method is pyannote (or set HF_TOKEN)")
		}
	default:
		return fmt.Errorf("transcription.vad_method must be silero or pyannote, got %q", c.Transcription.VADMethod)
	}
	return nil
}

func (c *Config) validateChapters() error {
	if strings.IndexFunc(c.Chapters.Keyword, unicode.IsSpace) >= 0 {
		return fmt.Errorf("chapters.keyword must be a single word, got %q", c.Chapters.Keyword)
	}
	return nil
}

func (c *Config) validateAudio() error {
	if err := ensurePositiveMap(map[string]int{
		"audio.workers":         c.Audio.Workers,
		"audio.timeout_seconds": c.Audio.TimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Audio.TranscodeRetries < 0 {
		return errors.New("audio.transcode_retries must be >= 0")
	}
	if strings.ContainsAny(c.Audio.Extension, `/\`) {
		return fmt.Errorf("audio.extension must not contain path separators, got %q", c.Audio.Extension)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
