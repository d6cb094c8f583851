package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		config       string
		args         []string
		expectedExit int
	}{
		{
			name:         "distance with defaults",
			args:         []string{"starmap", "distance", "0,0", "3,0"},
			expectedExit: 0,
		},
		{
			name:         "scale with config file",
			config:       "download:\n  retries: 1\nlog:\n  level: warn\n",
			args:         []string{"starmap", "scale", "64"},
			expectedExit: 0,
		},
		{
			name:         "unknown command",
			args:         []string{"starmap", "teleport"},
			expectedExit: 1,
		},
		{
			name:         "invalid argument",
			args:         []string{"starmap", "scale", "0"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Config and adapters are cacheable graft nodes.
			graft.ResetDefaultCache()
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)
			t.Setenv("STARMAP_CACHE_DIR", filepath.Join(tmpDir, "cache"))

			configPath := filepath.Join(tmpDir, "starmap.yaml")
			if tt.config != "" {
				if err := os.WriteFile(configPath, []byte(tt.config), 0o600); err != nil {
					t.Fatalf("failed to write config: %v", err)
				}
			}
			t.Setenv("STARMAP_CONFIG", configPath)

			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	graft.ResetDefaultCache()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	configPath := filepath.Join(tmpDir, "starmap.yaml")
	if err := os.WriteFile(configPath, []byte("cache:\n  memory_entries: 0\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("STARMAP_CONFIG", configPath)

	os.Args = []string{"starmap", "version"}
	assert.Equal(t, 1, run())
}
