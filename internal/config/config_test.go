package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"personmatch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PERSONMATCH_DEFAULT_MODE", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "personmatch", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput, err := filepath.Abs("output")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	wantState := filepath.Join(tempHome, ".local", "share", "personmatch")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.HistoryPath() != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path %q", cfg.HistoryPath())
	}
	if cfg.LockDir() != filepath.Join(wantState, "locks") {
		t.Fatalf("unexpected lock dir %q", cfg.LockDir())
	}
	if cfg.LogPath() != filepath.Join(wantState, "logs", "personmatch.log") {
		t.Fatalf("unexpected log path %q", cfg.LogPath())
	}
	if cfg.Matching.DefaultMode != "" {
		t.Fatalf("expected no default mode, got %q", cfg.Matching.DefaultMode)
	}
	if cfg.DelimiterRune() != ',' {
		t.Fatalf("expected comma delimiter, got %q", cfg.DelimiterRune())
	}
	if !cfg.History.Enabled || cfg.History.Limit != 20 {
		t.Fatalf("unexpected history defaults: %+v", cfg.History)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "personmatch.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
			StateDir  string `toml:"state_dir"`
		} `toml:"paths"`
		Matching struct {
			DefaultMode string `toml:"default_mode"`
		} `toml:"matching"`
		Input struct {
			Delimiter string `toml:"delimiter"`
		} `toml:"input"`
		History struct {
			Enabled bool `toml:"enabled"`
			Limit   int  `toml:"limit"`
		} `toml:"history"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Matching.DefaultMode = "same_phone"
	custom.Input.Delimiter = "tab"
	custom.History.Enabled = false
	custom.History.Limit = 5
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected output dir %q", cfg.Paths.OutputDir)
	}
	if cfg.Matching.DefaultMode != "same_phone" {
		t.Fatalf("expected default mode from file, got %q", cfg.Matching.DefaultMode)
	}
	if cfg.DelimiterRune() != '\t' {
		t.Fatalf("expected tab delimiter, got %q", cfg.DelimiterRune())
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled")
	}
	if cfg.History.Limit != 5 {
		t.Fatalf("expected history limit 5, got %d", cfg.History.Limit)
	}
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.History.Limit != config.Default().History.Limit {
		t.Fatalf("expected default history limit, got %d", cfg.History.Limit)
	}
}

func TestLoadRejectsUnknownKeysAndBadValues(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "[paths]\nstaging_dir = \"x\"\n",
		"bad mode":     "[matching]\ndefault_mode = \"same_name\"\n",
		"bad delim":    "[input]\ndelimiter = \";;\"\n",
		"quote delim":  "[input]\ndelimiter = '\"'\n",
		"bad level":    "[logging]\nlevel = \"loud\"\n",
		"invalid toml": "[paths\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestDefaultModeFromEnvironment(t *testing.T) {
	t.Setenv("PERSONMATCH_DEFAULT_MODE", " same_email ")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Matching.DefaultMode != "same_email" {
		t.Fatalf("expected default mode from env, got %q", cfg.Matching.DefaultMode)
	}

	t.Setenv("PERSONMATCH_DEFAULT_MODE", "bogus")
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatal("expected invalid env mode to fail validation")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "same_email_or_phone") {
		t.Fatalf("sample config missing mode documentation: %s", contents)
	}

	t.Setenv("HOME", t.TempDir())
	t.Setenv("PERSONMATCH_DEFAULT_MODE", "")
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to be found")
	}
	if cfg.Paths.StateDir == "" || !strings.Contains(cfg.Paths.StateDir, "personmatch") {
		t.Fatalf("expected state dir to contain personmatch, got %q", cfg.Paths.StateDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty output dir")
	}

	cfg = config.Default()
	cfg.Paths.StateDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty state dir with history enabled")
	}
	cfg.History.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected empty state dir to be fine without history, got %v", err)
	}

	cfg = config.Default()
	cfg.Input.Delimiter = "\n"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for newline delimiter")
	}
}
