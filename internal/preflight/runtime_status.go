package preflight

import (
	"context"
	"fmt"
	"strings"

	"chaptersplit/internal/catalog"
	"chaptersplit/internal/config"
	"chaptersplit/internal/language"
)

// CheckCatalogFromConfig opens the run catalog and reports how many runs it
// holds.
func CheckCatalogFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Catalog"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if !cfg.Catalog.Enabled {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	store, err := catalog.Open(ctx, cfg.CatalogPath())
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.CatalogPath(), err)}
	}
	defer store.Close()
	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.CatalogPath(), err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d run(s))", cfg.CatalogPath(), len(runs))}
}

// CheckTranscriptionFromConfig summarizes the WhisperX settings and flags a
// pyannote VAD without a Hugging Face token.
func CheckTranscriptionFromConfig(cfg *config.Config) Result {
	const name = "Transcription"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	t := cfg.Transcription
	device := "cpu"
	if t.CUDAEnabled {
		device = "cuda"
	}
	lang := language.DisplayName(t.Language)
	detail := fmt.Sprintf("model %s on %s, %d thread(s), language %s, vad %s", t.Model, device, t.Threads, lang, t.VADMethod)
	if strings.EqualFold(t.VADMethod, "pyannote") && strings.TrimSpace(t.HFToken) == "" {
		return Result{Name: name, Detail: detail + " (error: pyannote requires hf_token)"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
