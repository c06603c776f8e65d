package main

import "testing"

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"split", "chapters", "history", "status", "config"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == nil || cmd.Name() != name {
			t.Fatalf("subcommand %q not registered (err=%v)", name, err)
		}
	}
}

func TestConfigInitSkipsConfigLoad(t *testing.T) {
	root := newRootCommand()
	cmd, _, err := root.Find([]string{"config", "init"})
	if err != nil {
		t.Fatalf("find config init: %v", err)
	}
	if !shouldSkipConfig(cmd) {
		t.Fatal("config init should not require an existing config")
	}
	status, _, err := root.Find([]string{"status"})
	if err != nil {
		t.Fatalf("find status: %v", err)
	}
	if shouldSkipConfig(status) {
		t.Fatal("status should load config")
	}
}

func TestLoadEnvFileIgnoresMissingFile(t *testing.T) {
	if err := loadEnvFile(t.TempDir() + "/missing.env"); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
	if err := loadEnvFile(""); err != nil {
		t.Fatalf("empty env file path: %v", err)
	}
}
