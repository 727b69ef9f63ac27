// internal/config/config.go
//
// Process configuration. A YAML file with ${ENV} expansion layered over
// defaults; .env loading happens in main before this runs, so secrets
// can live there and be referenced from the YAML.

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	SQLite      SQLiteConfig      `yaml:"sqlite"`
	Redis       RedisConfig       `yaml:"redis"`
	Words       WordsConfig       `yaml:"words"`
	Game        GameConfig        `yaml:"game"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// ServerConfig holds HTTP server configuration. The timeout fields are
// integer nanoseconds in YAML (yaml.v3 does not parse "5s" strings);
// leave them unset to keep the defaults.
type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// SQLiteConfig holds the leaderboard database location.
type SQLiteConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig holds the optional rank cache connection.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// WordsConfig holds vocabulary and metadata sources.
type WordsConfig struct {
	File     string `yaml:"file"`      // word list, one word per line; empty = embedded defaults
	MetaFile string `yaml:"meta_file"` // optional YAML of word -> {meaning, pronunciation}
	Length   int    `yaml:"length"`
}

// GameConfig holds session rules and guess throttling.
type GameConfig struct {
	MaxAttempts   int     `yaml:"max_attempts"`
	GuessesPerSec float64 `yaml:"guesses_per_sec"` // per-chat rate limit
	GuessBurst    int     `yaml:"guess_burst"`
}

// LeaderboardConfig holds ranking policy and view settings.
type LeaderboardConfig struct {
	Policy       string `yaml:"policy"` // "decay" or "attempts"
	DefaultLimit int    `yaml:"default_limit"`
	MaxLimit     int    `yaml:"max_limit"`
	Timezone     string `yaml:"timezone"` // reference timezone for day/week/month windows
}

// Load reads configuration from a YAML file. A missing file is not an
// error: defaults apply, which keeps the server bootable with nothing but
// environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to defaults
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		data = []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for missing configuration.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}

	if c.SQLite.DSN == "" {
		c.SQLite.DSN = "./data/wordseek.db"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	if c.Words.Length == 0 {
		c.Words.Length = 6
	}

	if c.Game.MaxAttempts == 0 {
		c.Game.MaxAttempts = 6
	}
	if c.Game.GuessesPerSec == 0 {
		c.Game.GuessesPerSec = 2
	}
	if c.Game.GuessBurst == 0 {
		c.Game.GuessBurst = 5
	}

	if c.Leaderboard.Policy == "" {
		c.Leaderboard.Policy = "decay"
	}
	if c.Leaderboard.DefaultLimit == 0 {
		c.Leaderboard.DefaultLimit = 10
	}
	if c.Leaderboard.MaxLimit == 0 {
		c.Leaderboard.MaxLimit = 100
	}
	if c.Leaderboard.Timezone == "" {
		c.Leaderboard.Timezone = "Asia/Kolkata"
	}
}

// Location resolves the reference timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Leaderboard.Timezone)
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
