package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chaptersplit/internal/pipeline"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters [source]",
		Short: "Preview the chapter timeline without writing artifacts",
		Long: "Chapters builds the timeline exactly as split would and prints it. A missing\n" +
			"transcript is still produced and cached beside the source.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			var source string
			if len(args) > 0 {
				source = args[0]
			}
			plan, err := pipeline.NewRunner(cfg, pipeline.WithLogger(logger)).Plan(cmd.Context(), source)
			if err != nil {
				return describeFailure(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Book:       %s\n", plan.Title)
			if plan.EmbeddedChapters > 0 {
				fmt.Fprintf(out, "Embedded:   %d chapter marker(s) in the file, not used\n", plan.EmbeddedChapters)
			}
			fmt.Fprintf(out, "Source:     %s\n", plan.Source)
			fmt.Fprintf(out, "Transcript: %s (%d segments, reused: %s)\n", plan.TranscriptPath, len(plan.Segments), yesNo(plan.TranscriptReused))
			for _, warning := range plan.Warnings {
				fmt.Fprintf(out, "Warning:    %s\n", warning)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderChapterTable(plan.Intervals, nil))
			return nil
		},
	}
}
