package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/itemhub-dev/itemhub/internal/cli/config"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestInitCommand_CreatesConfig(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewInitCmd()
	cmd.SetArgs([]string{"http://localhost:8000"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init returned error: %v", err)
	}

	cfg, err := config.Load(config.ConfigFileName)
	if err != nil {
		t.Fatalf("config not created: %v", err)
	}

	if len(cfg.Servers) != 1 {
		t.Fatalf("got %d servers, want 1", len(cfg.Servers))
	}
	if cfg.Servers[0].URL != "http://localhost:8000" {
		t.Errorf("URL = %q, want http://localhost:8000", cfg.Servers[0].URL)
	}
	if cfg.Servers[0].Alias != "default" {
		t.Errorf("Alias = %q, want default", cfg.Servers[0].Alias)
	}
}

func TestInitCommand_AppendsToExistingConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	existing := &config.Config{
		Servers: []config.Server{{URL: "http://localhost:8000", Alias: "default"}},
	}
	if err := config.Save(filepath.Join(dir, config.ConfigFileName), existing); err != nil {
		t.Fatal(err)
	}

	cmd := NewInitCmd()
	cmd.SetArgs([]string{"https://api.example.com"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init returned error: %v", err)
	}

	cfg, err := config.Load(config.ConfigFileName)
	if err != nil {
		t.Fatal(err)
	}

	if len(cfg.Servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(cfg.Servers))
	}
	if cfg.Servers[1].Alias != "server-2" {
		t.Errorf("Alias = %q, want server-2", cfg.Servers[1].Alias)
	}
}

func TestInitCommand_DuplicateServerIsNoop(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	existing := &config.Config{
		Servers: []config.Server{{URL: "http://localhost:8000", Alias: "default"}},
	}
	if err := config.Save(filepath.Join(dir, config.ConfigFileName), existing); err != nil {
		t.Fatal(err)
	}

	before, err := os.ReadFile(config.ConfigFileName)
	if err != nil {
		t.Fatal(err)
	}

	cmd := NewInitCmd()
	cmd.SetArgs([]string{"http://localhost:8000"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init returned error: %v", err)
	}

	after, err := os.ReadFile(config.ConfigFileName)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("config file changed for an already-known server")
	}
}

func TestInitCommand_RequiresServerURL(t *testing.T) {
	cmd := NewInitCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Error("expected error without a server URL, got nil")
	}
}
