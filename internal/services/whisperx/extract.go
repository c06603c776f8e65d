package whisperx

import (
	"context"
	"fmt"
)

// ExtractAudio writes the first audio stream of source to dest as a mono
// 16kHz PCM WAV file suitable for WhisperX.
func (s *Service) ExtractAudio(ctx context.Context, source, dest string) error {
	if source == "" || dest == "" {
		return fmt.Errorf("extract audio: source and destination required")
	}
	if err := s.run(ctx, s.ffmpegBinary, buildExtractArgs(source, dest)...); err != nil {
		return fmt.Errorf("ffmpeg extract: %w", err)
	}
	return nil
}

func buildExtractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}
