package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chaptersplit/internal/config"
	"chaptersplit/internal/testsupport"
	"chaptersplit/internal/transcript"
)

var cliSegments = []transcript.Segment{
	{Start: 0, End: 1000, Text: "Opening credits"},
	{Start: 1000, End: 2000, Text: "Chapter One begins"},
	{Start: 2000, End: 3000, Text: "Some narration"},
	{Start: 3000, End: 4000, Text: "Chapter Two"},
	{Start: 4000, End: 5000, Text: "The end"},
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithStubbedBinaries()}, opts...)...)
	configPath := filepath.Join(homeDir, ".config", "chaptersplit", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

// writeSourceWithTranscript places a recording and its cached transcript in
// the input directory.
func (env *cliTestEnv) writeSourceWithTranscript(t *testing.T, name string) string {
	t.Helper()
	source := filepath.Join(env.cfg.Paths.InputDir, name+".mp3")
	testsupport.WriteFile(t, source, 64)
	testsupport.WriteSRT(t, filepath.Join(env.cfg.Paths.InputDir, name+".srt"), cliSegments)
	return source
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := config.Encode(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--env-file", "", "--log-level", "error"}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", needle, haystack)
	}
}
