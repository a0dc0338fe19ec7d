package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fzft/go-probeset/hashset"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvInitialCapacity = "PROBESET_INITIAL_CAPACITY"
	EnvMinCapacity     = "PROBESET_MIN_CAPACITY"
	EnvMaxLoad         = "PROBESET_MAX_LOAD"
	EnvMinLoad         = "PROBESET_MIN_LOAD"
	EnvGrowthFactor    = "PROBESET_GROWTH_FACTOR"
	EnvHistFile        = "PROBESET_HISTFILE"

	HistFileDefault = ".probeset_history"
)

// Config is the probeset configuration file.
type Config struct {
	Set   SetConfig   `yaml:"set"`
	Shell ShellConfig `yaml:"shell"`
}

// SetConfig mirrors hashset.Options.
type SetConfig struct {
	InitialCapacity int     `yaml:"initial_capacity"`
	MinCapacity     int     `yaml:"min_capacity"`
	MaxLoadFactor   float64 `yaml:"max_load_factor"`
	MinLoadFactor   float64 `yaml:"min_load_factor"`
	GrowthFactor    int     `yaml:"growth_factor"`
}

type ShellConfig struct {
	// HistoryFile is the path of the shell history; "/dev/null" disables it.
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
}

func Default() *Config {
	o := hashset.DefaultOptions()
	return &Config{
		Set: SetConfig{
			InitialCapacity: o.InitialCapacity,
			MinCapacity:     o.MinCapacity,
			MaxLoadFactor:   o.MaxLoadFactor,
			MinLoadFactor:   o.MinLoadFactor,
			GrowthFactor:    o.GrowthFactor,
		},
		Shell: ShellConfig{
			Prompt: "probeset",
		},
	}
}

// LoadEnvFiles loads .env and .env.local if present. Variables already set in
// the process environment win.
func LoadEnvFiles() error {
	var loaded int
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("failed to load %s: %w", envPath, err)
		}
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("no .env file found")
	}
	return nil
}

// Override adjusts a loaded Config before it is validated.
type Override func(*Config)

// WithInitialCapacity overrides set.initial_capacity when n is positive.
func WithInitialCapacity(n int) Override {
	return func(c *Config) {
		if n > 0 {
			c.Set.InitialCapacity = n
		}
	}
}

// Load reads the YAML file at path on top of the defaults, then applies the
// PROBESET_* environment overrides and finally the given overrides. An empty
// path yields defaults plus environment.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	if cfg.Shell.HistoryFile == "" {
		cfg.Shell.HistoryFile = defaultHistoryFile()
	}
	if cfg.Shell.Prompt == "" {
		cfg.Shell.Prompt = "probeset"
	}

	if err := cfg.Options().Validate(); err != nil {
		return nil, fmt.Errorf("invalid set configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := []struct {
		env string
		dst *int
	}{
		{EnvInitialCapacity, &c.Set.InitialCapacity},
		{EnvMinCapacity, &c.Set.MinCapacity},
		{EnvGrowthFactor, &c.Set.GrowthFactor},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.env)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
		*e.dst = n
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{EnvMaxLoad, &c.Set.MaxLoadFactor},
		{EnvMinLoad, &c.Set.MinLoadFactor},
	}
	for _, e := range floats {
		v, ok := os.LookupEnv(e.env)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
		*e.dst = f
	}

	if v, ok := os.LookupEnv(EnvHistFile); ok {
		c.Shell.HistoryFile = v
	}
	return nil
}

func defaultHistoryFile() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", home, HistFileDefault)
}

// Options converts the set section into hashset options.
func (c *Config) Options() hashset.Options {
	o := hashset.DefaultOptions()
	o.InitialCapacity = c.Set.InitialCapacity
	o.MinCapacity = c.Set.MinCapacity
	o.MaxLoadFactor = c.Set.MaxLoadFactor
	o.MinLoadFactor = c.Set.MinLoadFactor
	o.GrowthFactor = c.Set.GrowthFactor
	return o
}
