// Package config loads OttoStep configuration from a TOML file, a .env file
// and OTTOSTEP_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/hammamikhairi/ottostep/internal/domain"
)

const (
	DefaultLogFile      = ".ottostep-logs/ottostep.log"
	DefaultTickInterval = time.Second
	DefaultAdvanceDelay = 1500 * time.Millisecond
)

// Config is the resolved configuration.
type Config struct {
	Settings     domain.Settings
	LogLevel     string
	LogFile      string
	TickInterval time.Duration
	AdvanceDelay time.Duration
	RecipeDir    string
	SoundAsset   string
	Voice        string
	CacheDir     string
	AzureKey     string
	AzureRegion  string

	// Path is the config file that was read, empty if none.
	Path string
}

type fileConfig struct {
	Settings     domain.SettingsPatch `toml:"settings"`
	LogLevel     string               `toml:"log_level"`
	LogFile      string               `toml:"log_file"`
	TickInterval duration             `toml:"tick_interval"`
	AdvanceDelay duration             `toml:"advance_delay"`
	RecipeDir    string               `toml:"recipe_dir"`
	SoundAsset   string               `toml:"sound_asset"`
	Voice        string               `toml:"voice"`
	CacheDir     string               `toml:"cache_dir"`
	AzureKey     string               `toml:"azure_speech_key"`
	AzureRegion  string               `toml:"azure_speech_region"`
}

// duration decodes TOML strings like "1.5s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("duration must be positive, got %s", v)
	}
	d.Duration = v
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Settings:     domain.DefaultSettings(),
		LogLevel:     "normal",
		LogFile:      DefaultLogFile,
		TickInterval: DefaultTickInterval,
		AdvanceDelay: DefaultAdvanceDelay,
		CacheDir:     defaultCacheDir(),
	}
}

// Load reads .env, then the config file, then the environment. A missing
// file is fine; a malformed one is an error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(FilePath(os.Getenv), os.Getenv)
}

// LoadFrom builds a config from the file at path (may be empty) and the
// given environment lookup.
func LoadFrom(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	c.Path = path

	c.Settings = fc.Settings.Apply(c.Settings)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFile, fc.LogFile)
	setString(&c.RecipeDir, expandTilde(fc.RecipeDir))
	setString(&c.SoundAsset, expandTilde(fc.SoundAsset))
	setString(&c.Voice, fc.Voice)
	setString(&c.CacheDir, expandTilde(fc.CacheDir))
	setString(&c.AzureKey, fc.AzureKey)
	setString(&c.AzureRegion, fc.AzureRegion)
	if fc.TickInterval.Duration > 0 {
		c.TickInterval = fc.TickInterval.Duration
	}
	if fc.AdvanceDelay.Duration > 0 {
		c.AdvanceDelay = fc.AdvanceDelay.Duration
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString(&c.LogLevel, getenv("OTTOSTEP_LOG_LEVEL"))
	setString(&c.LogFile, getenv("OTTOSTEP_LOG_FILE"))
	setString(&c.RecipeDir, expandTilde(getenv("OTTOSTEP_RECIPE_DIR")))
	setString(&c.SoundAsset, expandTilde(getenv("OTTOSTEP_SOUND_ASSET")))
	setString(&c.Voice, getenv("OTTOSTEP_VOICE"))
	setString(&c.CacheDir, expandTilde(getenv("OTTOSTEP_CACHE_DIR")))
	setString(&c.AzureKey, getenv("AZURE_SPEECH_KEY"))
	setString(&c.AzureRegion, getenv("AZURE_SPEECH_REGION"))

	var pairs []string
	for _, key := range settingKeys {
		if v := getenv("OTTOSTEP_" + strings.ToUpper(key)); v != "" {
			pairs = append(pairs, key+"="+v)
		}
	}
	patch, err := ParsePatch(pairs)
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	c.Settings = patch.Apply(c.Settings)
	return nil
}

// settingKeys are the names accepted by ParsePatch, matching the TOML keys.
var settingKeys = []string{"voice_enabled", "show_tips", "auto_advance", "sound_enabled", "compact_mode"}

// ParsePatch turns key=value pairs into a settings patch. Unknown keys are
// ignored; a known key with a non-boolean value is an error.
func ParsePatch(pairs []string) (domain.SettingsPatch, error) {
	var p domain.SettingsPatch
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return p, fmt.Errorf("setting %q: want key=value", pair)
		}
		key = strings.ToLower(strings.TrimSpace(key))

		var field **bool
		switch key {
		case "voice_enabled":
			field = &p.VoiceEnabled
		case "show_tips":
			field = &p.ShowTips
		case "auto_advance":
			field = &p.AutoAdvance
		case "sound_enabled":
			field = &p.SoundEnabled
		case "compact_mode":
			field = &p.CompactMode
		default:
			continue
		}

		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return p, fmt.Errorf("setting %s: %q is not a boolean", key, value)
		}
		*field = domain.Bool(b)
	}
	return p, nil
}

// FilePath returns OTTOSTEP_CONFIG if set, else
// $XDG_CONFIG_HOME/ottostep/config.toml, else ~/.config/ottostep/config.toml.
func FilePath(getenv func(string) string) string {
	if p := getenv("OTTOSTEP_CONFIG"); p != "" {
		return expandTilde(p)
	}
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ottostep", "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "ottostep", "config.toml")
	}
	return ""
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "ottostep", "tts")
	}
	return filepath.Join(".ottostep-cache", "tts")
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
