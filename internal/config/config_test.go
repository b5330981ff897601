package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DIGIT_MCP_PROFILE", "")
	t.Setenv("DIGIT_MCP_LOG_LEVEL", "")
	t.Setenv("DIGIT_MCP_TESSERACT_LANG", "")
	t.Setenv("DIGIT_MCP_WORKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Profile.Name != "interactive" {
		t.Errorf("default profile: got %q, want interactive", cfg.Profile.Name)
	}
	if cfg.Workers != 1 {
		t.Errorf("default workers: got %d, want 1", cfg.Workers)
	}
}

func TestLoad_ProfileOverride(t *testing.T) {
	t.Setenv("DIGIT_MCP_PROFILE", "single-shot")
	t.Setenv("DIGIT_MCP_WORKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Profile.Name != "single-shot" {
		t.Errorf("profile: got %q, want single-shot", cfg.Profile.Name)
	}
}

func TestLoad_UnknownProfile(t *testing.T) {
	t.Setenv("DIGIT_MCP_PROFILE", "turbo")
	if _, err := Load(); err == nil {
		t.Error("unknown profile must fail")
	}
}

func TestLoad_Workers(t *testing.T) {
	t.Setenv("DIGIT_MCP_PROFILE", "")

	t.Setenv("DIGIT_MCP_WORKERS", "4")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("workers: got %d, want 4", cfg.Workers)
	}

	for _, bad := range []string{"0", "-2", "abc"} {
		t.Setenv("DIGIT_MCP_WORKERS", bad)
		if _, err := Load(); err == nil {
			t.Errorf("DIGIT_MCP_WORKERS=%q must fail", bad)
		}
	}
}
