// Package config loads session settings from defaults, hockey.toml,
// HOCKEY_* environment variables and command-line flags, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file searched for, without extension
	FileName = "hockey"
	// EnvPrefix scopes environment overrides, e.g. HOCKEY_SCREEN_WIDTH
	EnvPrefix = "HOCKEY"
)

// Config is the resolved session configuration
type Config struct {
	Width          int
	Height         int
	StepsPerFrame  int
	Seed           uint64
	AudioEnabled   bool
	Debug          bool
	HoldWindow     time.Duration
	RepeatDelay    time.Duration
	Color          string
	ScreenshotPath string

	// Keys maps action names to replacement binding lists
	Keys map[string][]string

	// File is the config file that was read, empty when none was found
	File string
}

// SetDefaults registers every key's default value
func SetDefaults() {
	viper.SetDefault("screen.width", 1920)
	viper.SetDefault("screen.height", 1080)
	viper.SetDefault("physics.steps_per_frame", 1)
	viper.SetDefault("seed", 0)
	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("debug", false)
	viper.SetDefault("input.hold_window", "120ms")
	viper.SetDefault("input.repeat_delay", "500ms")
	viper.SetDefault("color", "auto")
	viper.SetDefault("screenshot.path", "hockey.txt")
}

// RegisterFlags defines the command-line flags on fs and binds them to their keys
func RegisterFlags(fs *pflag.FlagSet) error {
	fs.String("config", "", "Path to a config file (default: search for hockey.toml)")
	fs.Int("width", 1920, "Virtual screen width")
	fs.Int("height", 1080, "Virtual screen height")
	fs.Int("steps", 1, "Physics steps per frame")
	fs.Uint64("seed", 0, "Random seed (0 = time based)")
	fs.Bool("mute", false, "Disable audio")
	fs.Bool("debug", false, "Write debug logs to logs/hockey.log")
	fs.String("color", "auto", "Color mode: auto, truecolor, 256")

	binds := map[string]string{
		"screen.width":            "width",
		"screen.height":           "height",
		"physics.steps_per_frame": "steps",
		"seed":                    "seed",
		"debug":                   "debug",
		"color":                   "color",
	}
	for key, flag := range binds {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load resolves the configuration. configFile overrides the search path;
// a missing searched-for file is not an error, a malformed or missing explicit one is.
func Load(configFile string) (Config, error) {
	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType("toml")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(FileName)
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hockey"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{
		Width:          viper.GetInt("screen.width"),
		Height:         viper.GetInt("screen.height"),
		StepsPerFrame:  viper.GetInt("physics.steps_per_frame"),
		Seed:           viper.GetUint64("seed"),
		AudioEnabled:   viper.GetBool("audio.enabled"),
		Debug:          viper.GetBool("debug"),
		HoldWindow:     viper.GetDuration("input.hold_window"),
		RepeatDelay:    viper.GetDuration("input.repeat_delay"),
		Color:          viper.GetString("color"),
		ScreenshotPath: viper.GetString("screenshot.path"),
		Keys:           viper.GetStringMapStringSlice("keys"),
		File:           viper.ConfigFileUsed(),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Width, c.Height)
	}
	if c.StepsPerFrame < 1 {
		return fmt.Errorf("physics.steps_per_frame must be at least 1, got %d", c.StepsPerFrame)
	}
	if c.HoldWindow <= 0 || c.RepeatDelay <= 0 {
		return fmt.Errorf("input timings must be positive (hold_window %v, repeat_delay %v)", c.HoldWindow, c.RepeatDelay)
	}
	return nil
}
