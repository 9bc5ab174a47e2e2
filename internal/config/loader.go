package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// HomeDir is the per-user directory under $HOME.
const HomeDir = ".gameroom"

// configExts are tried in order when searching a directory.
var configExts = []string{".yaml", ".yml", ".toml"}

// decode parses data as TOML or YAML depending on the file extension.
func decode(path string, data []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), v)
		return err
	}
	return yaml.Unmarshal(data, v)
}

// load resolves a game config.
// Search order: customPath -> ~/.gameroom/configs/<id>.{yaml,toml} ->
// ./configs/<id>.{yaml,toml} -> embedded default -> hardcoded default.
// Only an explicit customPath can fail; the other locations are skipped
// when missing or malformed.
func load[T any](gameID, customPath string, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := decode(customPath, data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, dir := range searchDirs() {
		for _, ext := range configExts {
			path := filepath.Join(dir, gameID+ext)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			cfg := fallback()
			if err := decode(path, data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg := fallback()
	if data := GetDefaultYAML(gameID); data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback(), nil // Fallback to hardcoded if embed fails
		}
	}
	return cfg, nil
}

// Must returns cfg or panics on err. Games use it for the default
// config, which only fails on a broken build.
func Must[T any](cfg T, err error) T {
	if err != nil {
		panic(err)
	}
	return cfg
}

// searchDirs lists the user and local config directories.
func searchDirs() []string {
	var dirs []string
	if home := userConfigDir(); home != "" {
		dirs = append(dirs, home)
	}
	return append(dirs, "configs")
}

// userConfigDir returns ~/.gameroom/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HomeDir, "configs")
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig)
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong", customPath, DefaultPongConfig)
}

// LoadFlappy loads Flappy Bird configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load("flappy", customPath, DefaultFlappyConfig)
}

// LoadBubble loads Bubble Shooter configuration.
func LoadBubble(customPath string) (BubbleConfig, error) {
	return load("bubble", customPath, DefaultBubbleConfig)
}

// LoadInvaders loads Space Invaders configuration.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	return load("invaders", customPath, DefaultInvadersConfig)
}

// LoadDefender loads Beach Defender configuration.
func LoadDefender(customPath string) (DefenderConfig, error) {
	return load("defender", customPath, DefaultDefenderConfig)
}

// LoadRacing loads Racing configuration.
func LoadRacing(customPath string) (RacingConfig, error) {
	return load("racing", customPath, DefaultRacingConfig)
}
