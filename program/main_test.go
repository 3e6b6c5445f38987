package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

// withConfig restores the global config when the test ends.
func withConfig(t *testing.T, mutate func(c *Config)) {
	t.Helper()
	saved := config
	t.Cleanup(func() { config = saved })
	if mutate != nil {
		mutate(&config)
	}
}

func TestValidateAndNormalizeConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
		check   func(t *testing.T)
	}{
		{name: "defaults"},
		{name: "zero tokens", mutate: func(c *Config) { c.Tokens = 0 }, wantErr: "-tokens must be >= 1"},
		{name: "zero step", mutate: func(c *Config) { c.Step = 0 }, wantErr: "-step must be in (0,100]"},
		{name: "big step too large", mutate: func(c *Config) { c.BigStep = 101 }, wantErr: "-big-step must be in (0,100]"},
		{name: "negative top words", mutate: func(c *Config) { c.TopWords = -1 }, wantErr: "-top-words must be >= 0"},
		{name: "zero fps", mutate: func(c *Config) { c.AnimFPS = 0 }, wantErr: "-anim-fps must be >= 1"},
		{name: "zero input bytes", mutate: func(c *Config) { c.MaxInputBytes = 0 }, wantErr: "-max-input-bytes must be >= 1"},
		{
			name:   "view split clamped",
			mutate: func(c *Config) { c.ViewSplit = 95 },
			check:  func(t *testing.T) { assert.Equal(t, 80, config.ViewSplit) },
		},
		{
			name:   "small stats window raised",
			mutate: func(c *Config) { c.StatsWindow = 4 },
			check:  func(t *testing.T) { assert.Equal(t, 16, config.StatsWindow) },
		},
		{
			name:   "tokens clamped to scale",
			mutate: func(c *Config) { c.Tokens = 50 },
			check:  func(t *testing.T) { assert.Equal(t, contextscale.MinTokens, config.Tokens) },
		},
		{
			name:   "tokens above scale",
			mutate: func(c *Config) { c.Tokens = 99_000_000 },
			check:  func(t *testing.T) { assert.Equal(t, contextscale.MaxTokens, config.Tokens) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, tt.mutate)
			err := validateAndNormalizeConfig()
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func unsetAfter(t *testing.T, keys ...string) {
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Run("missing file is fine", func(t *testing.T) {
		withConfig(t, nil)
		require.NoError(t, loadEnvDefaults(filepath.Join(t.TempDir(), ".env")))
		assert.Equal(t, contextscale.DefaultTokens, config.Tokens)
	})

	t.Run("file sets defaults", func(t *testing.T) {
		withConfig(t, nil)
		unsetAfter(t, envTokens, envDataPath, envEncoding, envLogFile)
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CONTEXTSCALE_TOKENS=4096\nCONTEXTSCALE_DATA=models.yaml\n"), 0o644))

		require.NoError(t, loadEnvDefaults(path))
		assert.Equal(t, 4096, config.Tokens)
		assert.Equal(t, "models.yaml", config.DataPath)
		assert.Empty(t, config.Encoding)
	})

	t.Run("process env wins over file", func(t *testing.T) {
		withConfig(t, nil)
		t.Setenv(envEncoding, "cl100k_base")
		unsetAfter(t, envLogFile)
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CONTEXTSCALE_ENCODING=o200k_base\nCONTEXTSCALE_LOG_FILE=debug.log\n"), 0o644))

		require.NoError(t, loadEnvDefaults(path))
		assert.Equal(t, "cl100k_base", config.Encoding)
		assert.Equal(t, "debug.log", config.LogFile)
	})

	t.Run("bad tokens", func(t *testing.T) {
		withConfig(t, nil)
		t.Setenv(envTokens, "lots")
		err := loadEnvDefaults(filepath.Join(t.TempDir(), ".env"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), envTokens)
	})
}

func TestComputePaneWidths(t *testing.T) {
	left, right := computePaneWidths(100, 45)
	assert.Equal(t, 45, left)
	assert.Equal(t, 55, right)

	left, right = computePaneWidths(60, 20)
	assert.Equal(t, 18, left)
	assert.Equal(t, 42, right)

	left, right = computePaneWidths(1, 50)
	assert.Equal(t, 1, left)
	assert.Equal(t, 1, right)
}
