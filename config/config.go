// Package config loads dietlog settings.
//
// Sources are layered, later ones winning: built-in defaults, an optional
// YAML file, DIETLOG_* environment variables, then explicit overrides (CLI
// flags).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "DIETLOG_"

// Config is the full dietlog configuration.
type Config struct {
	Data   DataConfig   `koanf:"data"`
	Log    LogConfig    `koanf:"log"`
	LLM    LLMConfig    `koanf:"llm"`
	Server ServerConfig `koanf:"server"`
}

// DataConfig says where the data files live.
type DataConfig struct {
	Dir           string `koanf:"dir"`
	MealsFile     string `koanf:"meals_file"`
	ExercisesFile string `koanf:"exercises_file"`
	FoodsFile     string `koanf:"foods_file"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// LLMConfig configures the meal-plan model. An empty Token disables it.
type LLMConfig struct {
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
	Token   string `koanf:"token"`
}

// ServerConfig configures `dietlog serve`.
type ServerConfig struct {
	Address string `koanf:"address"`
}

// Defaults returns the built-in configuration as a flat koanf map.
func Defaults() map[string]any {
	return map[string]any{
		"data.dir":            "data",
		"data.meals_file":     "meals.csv",
		"data.exercises_file": "exercises.csv",
		"data.foods_file":     "foods.csv",
		"log.level":           "warn",
		"log.format":          "text",
		"llm.base_url":        "https://openrouter.ai/api/v1",
		"llm.model":           "deepseek/deepseek-r1-distill-llama-70b",
		"llm.token":           "",
		"server.address":      ":8080",
	}
}

// DefaultPath returns the config file looked for when none is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dietlog", "config.yaml")
}

// Load builds a Config. path may be empty; a missing file at the default
// location is not an error, a missing file that was asked for is. overrides
// uses dotted keys such as "data.dir" and is applied last.
func Load(path string, explicit bool, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(Defaults()), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	// DIETLOG_DATA_MEALS_FILE -> data.meals_file
	transform := func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(s, "_", ".", 1)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(mapProvider(overrides), nil); err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Data.MealsFile == "" {
		errs = append(errs, errors.New("data.meals_file must not be empty"))
	}
	if c.Data.ExercisesFile == "" {
		errs = append(errs, errors.New("data.exercises_file must not be empty"))
	}
	if c.Data.FoodsFile == "" {
		errs = append(errs, errors.New("data.foods_file must not be empty"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want text or json", c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MealsPath is the meals file inside the data directory.
func (c *Config) MealsPath() string { return filepath.Join(c.Data.Dir, c.Data.MealsFile) }

// ExercisesPath is the exercises file inside the data directory.
func (c *Config) ExercisesPath() string { return filepath.Join(c.Data.Dir, c.Data.ExercisesFile) }

// FoodsPath is the food catalog file inside the data directory.
func (c *Config) FoodsPath() string { return filepath.Join(c.Data.Dir, c.Data.FoodsFile) }
