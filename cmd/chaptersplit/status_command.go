package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chaptersplit/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, tool, and directory readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configDetail := ctx.configPath
			if !ctx.configSeen {
				configDetail += " (not found; defaults in use)"
			}
			lines = append(lines, renderStatusLine("Config", statusInfo, configDetail, colorize))
			audioDetail := "Disabled"
			if cfg.Audio.Enabled {
				audioDetail = fmt.Sprintf("%s %s .%s, %d worker(s)", cfg.Audio.Codec, cfg.Audio.Bitrate, cfg.Audio.Extension, cfg.Audio.Workers)
			}
			lines = append(lines, renderStatusLine("Audio", statusInfo, audioDetail, colorize))

			transcription := preflight.CheckTranscriptionFromConfig(cfg)
			kind := statusOK
			if !transcription.Passed {
				kind = statusError
			}
			lines = append(lines, renderStatusLine(transcription.Name, kind, transcription.Detail, colorize))

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Tools", colorize)...)
			lines = append(lines, dependencyLines(preflight.CheckSystemDeps(cmd.Context(), cfg), colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Paths", colorize)...)
			lines = append(lines, preflightLines(preflight.RunAll(cmd.Context(), cfg), colorize)...)

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}
