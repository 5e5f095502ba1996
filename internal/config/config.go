package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/handoff/internal/decoder"
	"github.com/llehouerou/handoff/internal/overlay"
)

const (
	defaultLogLevel     = "info"
	defaultSkipInterval = 10000
	defaultVolume       = 100
)

type Config struct {
	LogLevel       string `koanf:"log_level"` // "debug", "info", "warn" or "error"
	LogFile        string `koanf:"log_file"`  // empty uses the xdg state dir
	SkipIntervalMs int    `koanf:"skip_interval_ms"`
	Volume         int    `koanf:"volume"`     // initial volume when nothing is persisted
	StatePath      string `koanf:"state_path"` // empty uses the xdg data dir
	Icons          string `koanf:"icons"`      // "nerd", "unicode" or "none"

	Decoder       DecoderConfig `koanf:"decoder"`
	Overlay       OverlayConfig `koanf:"overlay"`
	MPRIS         ToggleConfig  `koanf:"mpris"`
	Notifications ToggleConfig  `koanf:"notifications"`
}

// DecoderConfig holds options passed to the decoder backend.
type DecoderConfig struct {
	InitOptions      []string `koanf:"init_options"`
	MediaOptions     []string `koanf:"media_options"`
	HWDecoderEnabled *bool    `koanf:"hw_decoder_enabled"` // unset leaves the backend default
	HWDecoderForced  *bool    `koanf:"hw_decoder_forced"`
}

// OverlayConfig holds overlay settings.
type OverlayConfig struct {
	DefaultAspect string `koanf:"default_aspect"` // "W:H", used until the video size is known
}

// ToggleConfig enables or disables an optional collaborator.
type ToggleConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// IsEnabled reports the toggle with its default applied.
func (t ToggleConfig) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Defaults()

	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.StatePath = expandPath(cfg.StatePath)

	return cfg, nil
}

// Defaults fills unset or out of range values.
func (c *Config) Defaults() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = defaultLogLevel
	}
	if c.SkipIntervalMs <= 0 {
		c.SkipIntervalMs = defaultSkipInterval
	}
	if c.Volume < 0 || c.Volume > 100 {
		c.Volume = defaultVolume
	}
	if _, err := overlay.ParseRatio(c.Overlay.DefaultAspect); err != nil {
		c.Overlay.DefaultAspect = overlay.DefaultAspect.String()
	}
}

// SkipInterval returns the quick action seek step.
func (c *Config) SkipInterval() time.Duration {
	return time.Duration(c.SkipIntervalMs) * time.Millisecond
}

// DefaultAspect returns the overlay aspect used before the video size is
// known, clamped to the supported range.
func (c *Config) DefaultAspect() overlay.Rational {
	r, err := overlay.ParseRatio(c.Overlay.DefaultAspect)
	if err != nil {
		return overlay.DefaultAspect
	}
	return overlay.ClampAspectRatio(r)
}

// HWAccel returns the hardware decoding policy, or nil when neither key is
// set.
func (c *Config) HWAccel() *decoder.HWAccel {
	d := c.Decoder
	if d.HWDecoderEnabled == nil && d.HWDecoderForced == nil {
		return nil
	}
	hw := &decoder.HWAccel{}
	if d.HWDecoderEnabled != nil {
		hw.Enabled = *d.HWDecoderEnabled
	}
	if d.HWDecoderForced != nil {
		hw.Forced = *d.HWDecoderForced
	}
	return hw
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/handoff/config.toml
		filepath.Join(xdg.ConfigHome, "handoff", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
