package controller

import "testing"

func TestStartOptions(t *testing.T) {
	cfg := &StartConfig{}
	WithListMode()(cfg)
	if cfg.mode != ModeList {
		t.Fatalf("WithListMode() mode = %v, want %v", cfg.mode, ModeList)
	}

	WithRunMode()(cfg)
	if cfg.mode != ModeRun {
		t.Fatalf("WithRunMode() mode = %v, want %v", cfg.mode, ModeRun)
	}
}

func TestNewStartConfig_DefaultsToRunMode(t *testing.T) {
	if got := newStartConfig().mode; got != ModeRun {
		t.Fatalf("newStartConfig() mode = %v, want %v", got, ModeRun)
	}

	if got := newStartConfig(WithListMode()).mode; got != ModeList {
		t.Fatalf("newStartConfig(WithListMode()) mode = %v, want %v", got, ModeList)
	}
}
