package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.PollSeconds != defaultPollSeconds {
		t.Fatalf("PollSeconds = %d, want %d", cfg.PollSeconds, defaultPollSeconds)
	}
}

func TestLoad_ReadsExplicitFile(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	content := "api_base_url = \"https://shop.example.com/api\"\ndata_dir = \"" + tmp + "\"\npoll_seconds = 30\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://shop.example.com/api" {
		t.Fatalf("APIBaseURL = %q, want override", cfg.APIBaseURL)
	}
	if cfg.DataDir != tmp {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, tmp)
	}
	if cfg.PollSeconds != 30 {
		t.Fatalf("PollSeconds = %d, want 30", cfg.PollSeconds)
	}
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("api_base_url = \"http://10.0.0.2:8000/api\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://10.0.0.2:8000/api" {
		t.Fatalf("APIBaseURL = %q, want override", cfg.APIBaseURL)
	}
	if cfg.PollSeconds != defaultPollSeconds {
		t.Fatalf("PollSeconds = %d, want default %d", cfg.PollSeconds, defaultPollSeconds)
	}
}

func TestLoad_InvalidTOMLIsAnError(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(cfgFile); err == nil {
		t.Fatal("Load did not return error for invalid TOML")
	}
}

func TestExpandPath_Tilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/data")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "data") {
		t.Fatalf("expandPath = %q, want %q", got, filepath.Join(home, "data"))
	}
}
