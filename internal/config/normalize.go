package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	if err := c.normalizeChapters(); err != nil {
		return err
	}
	c.normalizeAudio()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	c.Paths.TempDir = strings.TrimSpace(c.Paths.TempDir)
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultWhisperXModel
	}
	if c.Transcription.Threads == 0 {
		c.Transcription.Threads = defaultWhisperXThreads
	}
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
	c.Transcription.VADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.VADMethod))
	if c.Transcription.VADMethod == "" {
		c.Transcription.VADMethod = defaultWhisperXVAD
	}
	c.Transcription.HFToken = strings.TrimSpace(c.Transcription.HFToken)
	if c.Transcription.HFToken == "" {
		for _, key := range []string{"HUGGING_FACE_HUB_TOKEN", "HF_TOKEN"} {
			if value := strings.TrimSpace(os.Getenv(key)); value != "" {
				c.Transcription.HFToken = value
				break
			}
		}
	}
	if c.Transcription.TimeoutSeconds == 0 {
		c.Transcription.TimeoutSeconds = defaultWhisperXTimeout
	}
}

func (c *Config) normalizeChapters() error {
	c.Chapters.Keyword = strings.TrimSpace(c.Chapters.Keyword)
	if c.Chapters.Keyword == "" {
		c.Chapters.Keyword = defaultChapterKeyword
	}
	c.Chapters.IntroName = strings.TrimSpace(c.Chapters.IntroName)
	if c.Chapters.IntroName == "" {
		c.Chapters.IntroName = defaultIntroName
	}
	c.Chapters.Language = strings.ToLower(strings.TrimSpace(c.Chapters.Language))
	if c.Chapters.Language == "" {
		c.Chapters.Language = defaultChapterLanguage
	}
	var err error
	c.Chapters.ExclusionsPath = strings.TrimSpace(c.Chapters.ExclusionsPath)
	if c.Chapters.ExclusionsPath, err = expandPath(c.Chapters.ExclusionsPath); err != nil {
		return fmt.Errorf("chapters.exclusions_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeAudio() {
	c.Audio.Codec = strings.TrimSpace(c.Audio.Codec)
	if c.Audio.Codec == "" {
		c.Audio.Codec = defaultAudioCodec
	}
	c.Audio.Bitrate = strings.ToLower(strings.TrimSpace(c.Audio.Bitrate))
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = defaultAudioBitrate
	}
	c.Audio.Extension = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Audio.Extension), "."))
	if c.Audio.Extension == "" {
		c.Audio.Extension = defaultAudioExtension
	}
	if c.Audio.Workers == 0 {
		c.Audio.Workers = defaultAudioWorkers
	}
	if c.Audio.TimeoutSeconds == 0 {
		c.Audio.TimeoutSeconds = defaultAudioTimeout
	}
}

func (c *Config) normalizeCatalog() error {
	var err error
	c.Catalog.Path = strings.TrimSpace(c.Catalog.Path)
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
