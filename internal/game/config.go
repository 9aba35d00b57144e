package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pixil98/go-errors"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/ghostblade/internal/telemetry"
)

// Renderer modes.
const (
	RendererAuto = "auto"
	RendererTUI  = "tui"
	RendererText = "text"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random guard movement. Used for reproducible sessions.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// StartLevel is the 1-based index of the first level to play.
	StartLevel int
	// LevelDir overrides the embedded level pack when set.
	LevelDir string

	Renderer string
	LogLevel string
	// LogFile receives logs. Empty means stderr in text mode and nowhere in TUI mode.
	LogFile string

	LocaleDir string
	Lang      string

	Telemetry telemetry.Config
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		StartLevel: 1,
		Renderer:   RendererAuto,
		LogLevel:   "info",
		Lang:       "en",
	}
}

// ConfigFromEnv reads GHOSTBLADE_* variables over the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	el := errors.NewErrorList()

	if v := os.Getenv("GHOSTBLADE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			el.Add(fmt.Errorf("parsing GHOSTBLADE_SEED: %w", err))
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("GHOSTBLADE_START_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing GHOSTBLADE_START_LEVEL: %w", err))
		}
		cfg.StartLevel = n
	}

	setString(&cfg.LevelDir, "GHOSTBLADE_LEVEL_DIR")
	setString(&cfg.Renderer, "GHOSTBLADE_RENDERER")
	setString(&cfg.LogLevel, "GHOSTBLADE_LOG_LEVEL")
	setString(&cfg.LogFile, "GHOSTBLADE_LOG_FILE")
	setString(&cfg.LocaleDir, "GHOSTBLADE_LOCALE_DIR")
	setString(&cfg.Lang, "GHOSTBLADE_LANG")
	setString(&cfg.Telemetry.APIKey, "HONEYCOMB_GHOSTBLADE_API_KEY")
	setString(&cfg.Telemetry.Dataset, "HONEYCOMB_GHOSTBLADE_DATASET")

	if err := el.Err(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	el := errors.NewErrorList()

	if c.StartLevel < 1 {
		el.Add(fmt.Errorf("start level must be at least 1, got %d", c.StartLevel))
	}

	switch c.Renderer {
	case RendererAuto, RendererTUI, RendererText:
	default:
		el.Add(fmt.Errorf("unknown renderer %q", c.Renderer))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		el.Add(fmt.Errorf("parsing log level: %w", err))
	}

	if c.LevelDir != "" {
		info, err := os.Stat(c.LevelDir)
		switch {
		case err != nil:
			el.Add(fmt.Errorf("level dir: %w", err))
		case !info.IsDir():
			el.Add(fmt.Errorf("level dir %s is not a directory", c.LevelDir))
		}
	}

	return el.Err()
}
