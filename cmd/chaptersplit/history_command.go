package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"chaptersplit/internal/catalog"
	"chaptersplit/internal/timecode"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show one run's chapters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog(cmd)
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("catalog is disabled (set catalog.enabled = true)")
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				run, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRunDetail(out, run)
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderRunTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func renderRunTable(runs []catalog.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			filepath.Base(run.SourcePath),
			strconv.Itoa(run.ChapterCount),
			strconv.Itoa(run.FailedChapters),
			yesNo(run.TranscriptReused),
			run.Duration().Truncate(time.Second).String(),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Source", "Chapters", "Failed", "Reused SRT", "Took"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight},
	)
}

func printRunDetail(out io.Writer, run catalog.Run) {
	fmt.Fprintf(out, "Run:        %s\n", run.ID)
	fmt.Fprintf(out, "Source:     %s\n", run.SourcePath)
	fmt.Fprintf(out, "Output:     %s\n", run.OutputDir)
	fmt.Fprintf(out, "Started:    %s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Segments:   %d\n", run.SegmentCount)
	fmt.Fprintf(out, "Audio:      %s\n", audioSummary(run))
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(run.Chapters))
	for _, ch := range run.Chapters {
		outcome := filepath.Base(ch.AudioPath)
		if ch.Error != "" {
			outcome = "failed: " + ch.Error
		} else if ch.AudioPath == "" {
			outcome = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(ch.Index),
			timecode.MillisToTimecode(ch.StartMs),
			timecode.MillisToTimecode(ch.EndMs),
			ch.Name,
			outcome,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Start", "End", "Name", "Audio"},
		rows,
		[]columnAlignment{alignRight},
	))
}

func audioSummary(run catalog.Run) string {
	if run.AudioSkipped {
		return "skipped"
	}
	if run.FailedChapters == 0 {
		return fmt.Sprintf("%d file(s) written", run.ChapterCount)
	}
	return fmt.Sprintf("%d of %d file(s) failed", run.FailedChapters, run.ChapterCount)
}
