package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TmuxPath      string `yaml:"tmux_path"`
	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
	DefaultAction string `yaml:"default_action"`
	ShowDetails   *bool  `yaml:"show_details"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	show := true
	return &Config{
		LogFile:       filepath.Join(stateDir(), "ursa", "ursa.log"),
		LogLevel:      "info",
		DefaultAction: "attach",
		ShowDetails:   &show,
	}
}

// Path returns $XDG_CONFIG_HOME/ursa/config.yaml, falling back to ~/.config.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ursa", "config.yaml")
}

func stateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return stateHome
}

// Load reads the config from Path().
// Returns the defaults if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path, filling unset keys with defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.TmuxPath = expandPath(cfg.TmuxPath)
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.DefaultAction = strings.ToLower(strings.TrimSpace(cfg.DefaultAction))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// Details reports whether rows show window count and attached marker.
func (c *Config) Details() bool {
	return c.ShowDetails == nil || *c.ShowDetails
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.DefaultAction {
	case "", "attach", "rename", "delete":
	default:
		return fmt.Errorf("invalid default_action %q: want attach, rename or delete", c.DefaultAction)
	}
	return nil
}

// applyEnv lets URSA_DEBUG=1 force debug logging.
func (c *Config) applyEnv() {
	if os.Getenv("URSA_DEBUG") == "1" {
		c.LogLevel = "debug"
	}
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
