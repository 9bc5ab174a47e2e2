package config

import (
	"os"
	"path/filepath"
	"testing"
)

// inTempDir runs the test from an empty directory with an empty $HOME so
// no real config files are picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) }) //nolint:errcheck
	return dir
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	inTempDir(t)

	snake, _ := LoadSnake("")
	if snake != DefaultSnakeConfig() {
		t.Errorf("snake.yaml differs from DefaultSnakeConfig:\n%+v\n%+v", snake, DefaultSnakeConfig())
	}
	pong, _ := LoadPong("")
	if pong != DefaultPongConfig() {
		t.Errorf("pong.yaml differs from DefaultPongConfig")
	}
	flappy, _ := LoadFlappy("")
	if flappy != DefaultFlappyConfig() {
		t.Errorf("flappy.yaml differs from DefaultFlappyConfig")
	}
	invaders, _ := LoadInvaders("")
	if invaders != DefaultInvadersConfig() {
		t.Errorf("invaders.yaml differs from DefaultInvadersConfig")
	}
	defender, _ := LoadDefender("")
	if defender != DefaultDefenderConfig() {
		t.Errorf("defender.yaml differs from DefaultDefenderConfig")
	}
	racing, _ := LoadRacing("")
	if racing != DefaultRacingConfig() {
		t.Errorf("racing.yaml differs from DefaultRacingConfig")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := inTempDir(t)

	yamlPath := filepath.Join(dir, "pong.yaml")
	os.WriteFile(yamlPath, []byte("gameplay:\n  win_score: 11\n"), 0o644) //nolint:errcheck

	cfg, err := LoadPong(yamlPath)
	if err != nil {
		t.Fatalf("LoadPong() failed: %v", err)
	}
	if cfg.Gameplay.WinScore != 11 {
		t.Errorf("win score = %d, expected 11", cfg.Gameplay.WinScore)
	}
	// Fields absent from the file keep their defaults
	if cfg.CPU.Speed != 2.5 {
		t.Errorf("cpu speed = %v, expected default 2.5", cfg.CPU.Speed)
	}

	tomlPath := filepath.Join(dir, "snake.toml")
	os.WriteFile(tomlPath, []byte("[speed]\ninterval_ms = 120\n"), 0o644) //nolint:errcheck

	snake, err := LoadSnake(tomlPath)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if snake.Speed.IntervalMs != 120 || snake.Grid.Cols != 30 {
		t.Errorf("unexpected snake config %+v", snake)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := inTempDir(t)

	if _, err := LoadFlappy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("physics: [not, a, map"), 0o644) //nolint:errcheck
	if _, err := LoadFlappy(bad); err == nil {
		t.Error("malformed custom file should fail")
	}
}

func TestLoadSearchesLocalConfigs(t *testing.T) {
	dir := inTempDir(t)
	os.MkdirAll(filepath.Join(dir, "configs"), 0o755)                                                    //nolint:errcheck
	os.WriteFile(filepath.Join(dir, "configs", "racing.toml"), []byte("[track]\nlaps = 5\n"), 0o644) //nolint:errcheck

	cfg, _ := LoadRacing("")
	if cfg.Track.Laps != 5 {
		t.Errorf("laps = %d, expected 5 from ./configs/racing.toml", cfg.Track.Laps)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.5},
		{"", true, 0.5},
	}

	for _, tc := range tests {
		d := DifficultyConfig{Enabled: true, InitialLevel: 0.5}
		d.ApplyPreset(tc.preset)
		if d.Enabled != tc.enabled || d.InitialLevel != tc.level {
			t.Errorf("ApplyPreset(%q) = %+v", tc.preset, d)
		}
	}

	if ParsePreset("hard") != DifficultyHard || ParsePreset("insane") != "" {
		t.Error("ParsePreset mismatch")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, GapReduction: 80},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		level float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{500, 1},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got != tc.level {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.level)
		}
	}

	if got := d.Speed(1.5, 100, 0); got != 3 {
		t.Errorf("Speed at max = %v, expected 3", got)
	}
	if got := d.GapSize(240, 120, 100, 0); got != 160 {
		t.Errorf("GapSize at max = %v, expected 160", got)
	}
	if got := d.GapSize(150, 120, 100, 0); got != 120 {
		t.Errorf("GapSize floor = %v, expected 120", got)
	}

	d.SetEnabled(false)
	if d.Level(100, 0) != 0 || d.IsEnabled() {
		t.Error("disabled manager should stay at level 0")
	}
}

func TestDifficultyManagerTime(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 1000},
	})
	if got := d.Level(0, 500); got != 0.75 {
		t.Errorf("Level(frames=500) = %v, expected 0.75", got)
	}
}

func TestLoadSettings(t *testing.T) {
	dir := inTempDir(t)

	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings() without files failed: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("expected defaults, got %+v", s)
	}

	path := filepath.Join(dir, "custom.toml")
	os.WriteFile(path, []byte("[display]\nfps = 30\n[ssh]\naddr = \":2300\"\n"), 0o644) //nolint:errcheck

	t.Setenv(EnvSSHAddr, ":2400")
	t.Setenv(EnvLogLevel, "debug")

	s, err = LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if s.Display.FPS != 30 {
		t.Errorf("fps = %d, expected 30", s.Display.FPS)
	}
	if s.SSH.Addr != ":2400" {
		t.Errorf("ssh addr = %q, expected env override :2400", s.SSH.Addr)
	}
	if s.Log.Level != "debug" {
		t.Errorf("log level = %q, expected debug", s.Log.Level)
	}
	if s.Input.HoldWindow().Milliseconds() != 250 {
		t.Errorf("hold window = %v", s.Input.HoldWindow())
	}

	if _, err := LoadSettings(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("explicit missing settings file should fail")
	}

	t.Setenv(EnvFPS, "fast")
	if _, err := LoadSettings(""); err == nil {
		t.Error("invalid GAMEROOM_FPS should fail")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := inTempDir(t)
	os.WriteFile(filepath.Join(dir, ".env"), []byte("GAMEROOM_DB=/tmp/scores-test.db\n"), 0o644) //nolint:errcheck
	t.Setenv(EnvDB, "")
	os.Unsetenv(EnvDB)

	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() failed: %v", err)
	}
	if got := os.Getenv(EnvDB); got != "/tmp/scores-test.db" {
		t.Errorf("%s = %q", EnvDB, got)
	}
	os.Unsetenv(EnvDB)

	if err := LoadEnv(filepath.Join(dir, "nope.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}

func TestMust(t *testing.T) {
	inTempDir(t)
	if got := Must(LoadSnake("")); got.Grid.Cols == 0 {
		t.Errorf("default snake config looks empty: %+v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on a load error")
		}
	}()
	Must(LoadSnake(filepath.Join(t.TempDir(), "missing.yaml")))
}
