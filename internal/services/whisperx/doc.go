// Package whisperx transcribes long recordings with WhisperX.
//
// A Service extracts a mono 16 kHz WAV copy of the source with ffmpeg, runs
// `uvx whisperx` over it with JSON output, and converts the resulting
// sentence segments into millisecond transcript segments ordered by start
// time. Both external calls go through an injectable command runner so tests
// never spawn real tools.
//
// Configuration options (model, threads, language, CUDA, VAD method) are
// passed via Config.
package whisperx
