//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/handoff/internal/decoder"
	"github.com/llehouerou/handoff/internal/overlay"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/videos",
			expected: filepath.Join(home, "videos"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/lib/handoff.db",
			expected: "/var/lib/handoff.db",
		},
		{
			name:     "relative path unchanged",
			input:    "logs/handoff.log",
			expected: "logs/handoff.log",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	require.Len(t, paths, 2)
	assert.Equal(t, "config.toml", paths[1], "local config must win")
	assert.Equal(t, filepath.Join("handoff", "config.toml"), filepath.Join(filepath.Base(filepath.Dir(paths[0])), filepath.Base(paths[0])))
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.SkipInterval())
	assert.Equal(t, 100, cfg.Volume)
	assert.Equal(t, overlay.DefaultAspect, cfg.DefaultAspect())
	assert.True(t, cfg.MPRIS.IsEnabled())
	assert.True(t, cfg.Notifications.IsEnabled())
	assert.Nil(t, cfg.HWAccel())
}

func TestLoadFrom_BasicConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
log_level = "DEBUG"
log_file = "/tmp/handoff.log"
skip_interval_ms = 5000
volume = 60
icons = "nerd"

[decoder]
init_options = ["--no-osd"]
media_options = [":network-caching=300"]
hw_decoder_enabled = true

[overlay]
default_aspect = "4:3"

[mpris]
enabled = false
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/handoff.log", cfg.LogFile)
	assert.Equal(t, 5*time.Second, cfg.SkipInterval())
	assert.Equal(t, 60, cfg.Volume)
	assert.Equal(t, "nerd", cfg.Icons)
	assert.Equal(t, []string{"--no-osd"}, cfg.Decoder.InitOptions)
	assert.Equal(t, []string{":network-caching=300"}, cfg.Decoder.MediaOptions)
	assert.Equal(t, &decoder.HWAccel{Enabled: true}, cfg.HWAccel())
	assert.Equal(t, overlay.Rational{Num: 4, Den: 3}, cfg.DefaultAspect())
	assert.False(t, cfg.MPRIS.IsEnabled())
	assert.True(t, cfg.Notifications.IsEnabled())
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	first := writeConfig(t, t.TempDir(), "volume = 10\nlog_level = \"warn\"\n")
	second := writeConfig(t, t.TempDir(), "volume = 20\n")

	cfg, err := LoadFrom(first, second)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Volume)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "invalid = [[[")

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFrom_PathExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}
	path := writeConfig(t, t.TempDir(), `
state_path = "~/handoff/state.db"
log_file = "~/handoff.log"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "handoff", "state.db"), cfg.StatePath)
	assert.Equal(t, filepath.Join(home, "handoff.log"), cfg.LogFile)
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		check  func(t *testing.T, c Config)
	}{
		{
			name:   "unknown log level",
			config: Config{LogLevel: "verbose"},
			check:  func(t *testing.T, c Config) { assert.Equal(t, "info", c.LogLevel) },
		},
		{
			name:   "negative skip",
			config: Config{SkipIntervalMs: -1},
			check:  func(t *testing.T, c Config) { assert.Equal(t, 10000, c.SkipIntervalMs) },
		},
		{
			name:   "volume out of range",
			config: Config{Volume: 150},
			check:  func(t *testing.T, c Config) { assert.Equal(t, 100, c.Volume) },
		},
		{
			name:   "zero volume kept",
			config: Config{Volume: 0},
			check:  func(t *testing.T, c Config) { assert.Equal(t, 0, c.Volume) },
		},
		{
			name:   "bad aspect",
			config: Config{Overlay: OverlayConfig{DefaultAspect: "wide"}},
			check:  func(t *testing.T, c Config) { assert.Equal(t, "16:9", c.Overlay.DefaultAspect) },
		},
		{
			name:   "aspect clamped",
			config: Config{Overlay: OverlayConfig{DefaultAspect: "5:1"}},
			check:  func(t *testing.T, c Config) { assert.Equal(t, overlay.MaxAspect, c.DefaultAspect()) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.config
			c.Defaults()
			tt.check(t, c)
		})
	}
}

func TestHWAccel(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name     string
		enabled  *bool
		forced   *bool
		expected *decoder.HWAccel
	}{
		{"unset", nil, nil, nil},
		{"enabled only", &yes, nil, &decoder.HWAccel{Enabled: true}},
		{"forced only", nil, &yes, &decoder.HWAccel{Forced: true}},
		{"disabled", &no, &no, &decoder.HWAccel{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Decoder: DecoderConfig{HWDecoderEnabled: tt.enabled, HWDecoderForced: tt.forced}}
			assert.Equal(t, tt.expected, c.HWAccel())
		})
	}
}
