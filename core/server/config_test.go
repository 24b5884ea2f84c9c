package server_test

import (
	"path/filepath"
	"testing"
	"time"

	"milvus-server/core/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_StopTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"Disabled", 0, 0},
		{"Negative", -5, 0},
		{"Seconds", 10, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{StopTimeoutSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.StopTimeout())
		})
	}
}

func TestConfig_Executable(t *testing.T) {
	t.Run("ExplicitBinDir", func(t *testing.T) {
		dir := t.TempDir()
		c := server.Config{BinDir: dir}

		exe, err := c.Executable()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, server.ExecutableName()), exe)
	})

	t.Run("DefaultBinDir", func(t *testing.T) {
		dir, err := server.Config{}.ResolveBinDir()
		require.NoError(t, err)
		assert.Equal(t, "bin", filepath.Base(dir))
		assert.Equal(t, "data", filepath.Base(filepath.Dir(dir)))
	})
}
