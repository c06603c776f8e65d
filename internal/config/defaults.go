package config

const (
	defaultConfigPath       = "~/.config/chaptersplit/config.toml"
	projectConfigName       = "chaptersplit.toml"
	defaultInputDir         = "Input"
	defaultOutputDir        = "Output"
	defaultLogDir           = "~/.local/share/chaptersplit/logs"
	defaultStateDir         = "~/.local/share/chaptersplit"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultWhisperXModel    = "large-v3-turbo"
	defaultWhisperXThreads  = 6
	defaultWhisperXVAD      = "silero"
	defaultWhisperXTimeout  = 4 * 60 * 60
	defaultChapterKeyword   = "Chapter"
	defaultIntroName        = "Intro"
	defaultChapterLanguage  = "en"
	defaultAudioCodec       = "libmp3lame"
	defaultAudioBitrate     = "128k"
	defaultAudioExtension   = "mp3"
	defaultAudioWorkers     = 1
	defaultAudioTimeout     = 30 * 60
	defaultTranscodeRetries = 1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
		},
		Transcription: Transcription{
			Model:          defaultWhisperXModel,
			Threads:        defaultWhisperXThreads,
			VADMethod:      defaultWhisperXVAD,
			TimeoutSeconds: defaultWhisperXTimeout,
			ReuseSRT:       true,
		},
		Chapters: Chapters{
			Keyword:   defaultChapterKeyword,
			IntroName: defaultIntroName,
			Language:  defaultChapterLanguage,
		},
		Audio: Audio{
			Enabled:          true,
			Codec:            defaultAudioCodec,
			Bitrate:          defaultAudioBitrate,
			Extension:        defaultAudioExtension,
			Workers:          defaultAudioWorkers,
			TimeoutSeconds:   defaultAudioTimeout,
			TranscodeRetries: defaultTranscodeRetries,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
