// Package config loads and saves TOML configuration for the assembler,
// simulator, and tooling CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the subset of tunables the CLI, simulator, and API server
// consult.
type Config struct {
	Execution struct {
		MaxCycles    uint64 `toml:"max_cycles"`
		DefaultEntry string `toml:"default_entry"`

		// SoftKillTimeout is how long a supervisor waits after a run
		// starts before logging a stall warning. HardKillTimeout is how
		// long it waits before calling Kill unconditionally. Both
		// implement the two-phase supervisor pattern of spec.md §5; a
		// zero value disables that phase.
		SoftKillTimeout duration `toml:"soft_kill_timeout"`
		HardKillTimeout duration `toml:"hard_kill_timeout"`
	} `toml:"execution"`

	Display struct {
		ColorOutput  bool   `toml:"color_output"`
		NumberFormat string `toml:"number_format"` // hex, dec
	} `toml:"display"`

	Trace struct {
		Enabled    bool   `toml:"enabled"`
		OutputFile string `toml:"output_file"`
	} `toml:"trace"`
}

// duration wraps time.Duration so BurntSushi/toml can decode values like
// "30s" via encoding.TextUnmarshaler instead of requiring raw nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = duration(parsed)
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MaxCycles = 1000000
	cfg.Execution.DefaultEntry = "0"
	cfg.Execution.SoftKillTimeout = duration(5 * time.Second)
	cfg.Execution.HardKillTimeout = duration(30 * time.Second)
	cfg.Display.ColorOutput = true
	cfg.Display.NumberFormat = "hex"
	cfg.Trace.Enabled = false
	cfg.Trace.OutputFile = "trace.log"
	return cfg
}

// SoftKillTimeout returns the configured soft-timeout duration.
func (c *Config) SoftKillTimeout() time.Duration {
	return time.Duration(c.Execution.SoftKillTimeout)
}

// HardKillTimeout returns the configured hard-timeout duration.
func (c *Config) HardKillTimeout() time.Duration {
	return time.Duration(c.Execution.HardKillTimeout)
}

// GetConfigPath returns the platform-specific default config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "eseasm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "eseasm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load reads configuration from the default config file, falling back to
// DefaultConfig when the file does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads configuration from path, falling back to DefaultConfig
// when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// SaveTo writes c to path in TOML form, creating parent directories as
// needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
