package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitialize_DiscardsWithoutDebug(t *testing.T) {
	t.Setenv("FAULTLINE_DEBUG", "")
	t.Setenv("FAULTLINE_DEBUG_FILE", "")

	closer, err := Initialize(false, "")
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	require.NotNil(t, Logger)
}

func TestInitialize_WritesDebugFile(t *testing.T) {
	t.Setenv("FAULTLINE_DEBUG", "")
	t.Setenv("FAULTLINE_DEBUG_FILE", "")

	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	closer, err := Initialize(false, path)
	require.NoError(t, err)

	Logger.Info("hello from test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello from test")
	require.Contains(t, string(data), RunID)
}

func TestInitialize_EnvEnablesDebugFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.log")
	t.Setenv("FAULTLINE_DEBUG_FILE", path)

	closer, err := Initialize(false, "")
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)
}
