package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_ReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultline.toml")
	writeFile(t, path, `
leak_check = true
fault_check = true
fuzz_iterations = 42
tests = ["alloc", "realloc"]
reports = "out"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.LeakCheck)
	require.True(t, cfg.FaultCheck)
	require.False(t, cfg.FaultPersistent)
	require.Equal(t, 42, cfg.FuzzIterations)
	require.Equal(t, []string{"alloc", "realloc"}, cfg.Tests)
	require.Equal(t, "out", cfg.Reports)
}

func TestLoad_UndefinedKeysKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultline.toml")
	writeFile(t, path, "leak_check = true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultFuzzIterations, cfg.FuzzIterations)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultline.toml")
	writeFile(t, path, "leak_check = [")

	_, err := Load(path)
	require.ErrorContains(t, err, "failed to parse TOML")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Default()},
		{name: "negative iterations", cfg: Config{FuzzIterations: -1}, wantErr: true},
		{name: "negative budget", cfg: Config{MaxLiveBytes: -5}, wantErr: true},
		{name: "pass without checking", cfg: Config{LeakCheckPass: true}, wantErr: true},
		{name: "pass with fault check", cfg: Config{LeakCheckPass: true, FaultCheck: true}},
		{name: "pass with persistent faults", cfg: Config{LeakCheckPass: true, FaultPersistent: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}
