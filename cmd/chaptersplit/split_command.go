package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"chaptersplit/internal/config"
	"chaptersplit/internal/pipeline"
	"chaptersplit/internal/preflight"
	"chaptersplit/internal/services"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var noAudio bool
	var retranscribe bool
	var workers int

	cmd := &cobra.Command{
		Use:   "split [source]",
		Short: "Transcribe a recording and write its chapter artifacts",
		Long: "Split resolves the source (an explicit file or the first .mp3 in paths.input_dir),\n" +
			"reuses or produces its .srt transcript, detects chapter headings, and writes the\n" +
			"subtitle, cue sheet, markdown, timestamp dump, and per-chapter audio files.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg := *cfg
			if noAudio {
				runCfg.Audio.Enabled = false
			}
			if retranscribe {
				runCfg.Transcription.ReuseSRT = false
			}
			if workers > 0 {
				runCfg.Audio.Workers = workers
			}

			if err := checkReadiness(cmd, &runCfg); err != nil {
				return err
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			opts := []pipeline.Option{pipeline.WithLogger(logger)}
			store, err := ctx.openCatalog(cmd)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				opts = append(opts, pipeline.WithRecorder(store))
			}

			var source string
			if len(args) > 0 {
				source = args[0]
			}
			result, err := pipeline.NewRunner(&runCfg, opts...).Run(cmd.Context(), source)
			if err != nil {
				return describeFailure(err)
			}
			printSplitSummary(cmd.OutOrStdout(), result)
			if failed := result.Report.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d chapter audio file(s) failed; text artifacts are complete", len(failed), len(result.Intervals))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAudio, "no-audio", false, "Write text artifacts only")
	cmd.Flags().BoolVar(&retranscribe, "retranscribe", false, "Ignore an existing .srt and transcribe again")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Override audio.workers")
	return cmd
}

// checkReadiness refuses to start when a required path or tool is unusable.
func checkReadiness(cmd *cobra.Command, cfg *config.Config) error {
	var problems []string
	for _, result := range preflight.Failed(preflight.RunAll(cmd.Context(), cfg)) {
		problems = append(problems, fmt.Sprintf("%s: %s", result.Name, result.Detail))
	}
	for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
		if status.Missing() {
			problems = append(problems, fmt.Sprintf("%s: %s", status.Name, status.Detail))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("preflight failed:\n  %s", strings.Join(problems, "\n  "))
}

func describeFailure(err error) error {
	switch services.Kind(err) {
	case "configuration":
		return fmt.Errorf("%w\nhint: check the config file and chapters.exclusions_path", err)
	case "input":
		return fmt.Errorf("%w\nhint: check the source recording and its .srt transcript", err)
	case "external_tool", "timeout":
		return fmt.Errorf("%w\nhint: run `chaptersplit status` to verify ffmpeg and uvx", err)
	default:
		return err
	}
}

func printSplitSummary(out io.Writer, result pipeline.Result) {
	fmt.Fprintf(out, "Book:       %s\n", result.Title)
	if result.EmbeddedChapters > 0 {
		fmt.Fprintf(out, "Embedded:   %d chapter marker(s) in the file, not used\n", result.EmbeddedChapters)
	}
	fmt.Fprintf(out, "Source:     %s\n", result.Source)
	fmt.Fprintf(out, "Transcript: %s (reused: %s)\n", result.TranscriptPath, yesNo(result.TranscriptReused))
	fmt.Fprintf(out, "Output:     %s\n", result.Report.OutputDir)
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "Warning:    %s\n", warning)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderChapterTable(result.Intervals, result.Report.Chapters))
	if result.Recorded {
		fmt.Fprintf(out, "Recorded run %s\n", result.RunID)
	}
}
