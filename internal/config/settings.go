package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment overrides, applied after gameroom.toml.
const (
	EnvDB       = "GAMEROOM_DB"
	EnvSSHAddr  = "GAMEROOM_SSH_ADDR"
	EnvLogLevel = "GAMEROOM_LOG_LEVEL"
	EnvFPS      = "GAMEROOM_FPS"
)

// SettingsFile is the default host settings file name.
const SettingsFile = "gameroom.toml"

// Settings are the host-level settings shared by every game.
type Settings struct {
	Display DisplaySettings `toml:"display"`
	Input   InputSettings   `toml:"input"`
	Storage StorageSettings `toml:"storage"`
	SSH     SSHSettings     `toml:"ssh"`
	Log     LogSettings     `toml:"log"`
}

type DisplaySettings struct {
	FPS      int    `toml:"fps"`
	Timestep string `toml:"timestep"` // "fixed" or "variable"
	Seed     int64  `toml:"seed"`     // 0 = time based
}

type InputSettings struct {
	HoldMs         int     `toml:"hold_ms"` // how long a key press counts as held
	SwipeThreshold float64 `toml:"swipe_threshold"`
}

type StorageSettings struct {
	DB string `toml:"db"`
}

type SSHSettings struct {
	Addr    string `toml:"addr"`
	HostKey string `toml:"host_key"`
}

type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty logs to ~/.gameroom/gameroom.log
}

// HoldWindow returns the input hold window.
func (s InputSettings) HoldWindow() time.Duration {
	return time.Duration(s.HoldMs) * time.Millisecond
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Display: DisplaySettings{FPS: 60, Timestep: "fixed"},
		Input:   InputSettings{HoldMs: 250, SwipeThreshold: 20},
		Storage: StorageSettings{DB: filepath.Join("~", HomeDir, "scores.db")},
		SSH:     SSHSettings{Addr: ":2222", HostKey: filepath.Join("~", HomeDir, "ssh_host_ed25519")},
		Log:     LogSettings{Level: "info"},
	}
}

// LoadSettings reads settings from path, falling back to ./gameroom.toml and
// then ~/.gameroom/gameroom.toml when path is empty. A missing file is not
// an error. Environment overrides are applied last.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	candidates := []string{path}
	if path == "" {
		candidates = []string{SettingsFile}
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, HomeDir, SettingsFile))
		}
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) && path == "" {
			continue
		}
		if err != nil {
			return s, fmt.Errorf("config: read %s: %w", p, err)
		}
		if err := toml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("config: parse %s: %w", p, err)
		}
		break
	}

	if err := s.applyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

// LoadEnv loads .env files into the process environment. Missing files are
// ignored; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		s.Storage.DB = v
	}
	if v := os.Getenv(EnvSSHAddr); v != "" {
		s.SSH.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.Log.Level = v
	}
	if v := os.Getenv(EnvFPS); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil || fps <= 0 {
			return fmt.Errorf("config: %s=%q is not a positive integer", EnvFPS, v)
		}
		s.Display.FPS = fps
	}
	return nil
}
