// Package config loads boardwalk settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/boardwalk/internal/auth"
)

type Config struct {
	DB          string        `yaml:"db"`
	Addr        string        `yaml:"addr"`
	RedisURL    string        `yaml:"redis_url"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	JWTSecret   string        `yaml:"jwt_secret"`
	JWKSURL     string        `yaml:"jwks_url"`
	APIURL      string        `yaml:"api_url"`
	Token       string        `yaml:"token"`
	User        string        `yaml:"user"`
	Org         string        `yaml:"org"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	LogLevel    string        `yaml:"log_level"`
}

// DefaultConfig returns the settings used when nothing is configured. Files
// live under dir, normally ~/.boardwalk.
func DefaultConfig(dir string) Config {
	return Config{
		DB:          filepath.Join(dir, "boardwalk.db"),
		Addr:        ":8080",
		CacheTTL:    5 * time.Minute,
		HTTPTimeout: 10 * time.Second,
		LogLevel:    "info",
	}
}

// DefaultDir is ~/.boardwalk.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".boardwalk"), nil
}

// Load reads path, or $BOARDWALK_CONFIG, or ~/.boardwalk/config.yml, then
// applies environment overrides. Only an explicitly named file must exist.
func Load(path string) (Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig(dir)

	explicit := true
	if path == "" {
		path = os.Getenv("BOARDWALK_CONFIG")
	}
	if path == "" {
		path = filepath.Join(dir, "config.yml")
		explicit = false
	}
	if err := readFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.DB, "BOARDWALK_DB")
	setString(&cfg.Addr, "BOARDWALK_ADDR")
	setString(&cfg.RedisURL, "BOARDWALK_REDIS_URL")
	setString(&cfg.JWTSecret, "BOARDWALK_JWT_SECRET")
	setString(&cfg.JWKSURL, "BOARDWALK_JWKS_URL")
	setString(&cfg.APIURL, "BOARDWALK_API_URL")
	setString(&cfg.Token, "BOARDWALK_TOKEN")
	setString(&cfg.User, "BOARDWALK_USER")
	setString(&cfg.Org, "BOARDWALK_ORG")
	setString(&cfg.LogLevel, "BOARDWALK_LOG_LEVEL")
	setDuration(&cfg.CacheTTL, "BOARDWALK_CACHE_TTL")
	setDuration(&cfg.HTTPTimeout, "BOARDWALK_HTTP_TIMEOUT")

	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		cfg.LogLevel = "debug"
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// setDuration ignores values that do not parse or are negative.
func setDuration(dst *time.Duration, env string) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return
	}
	*dst = d
}

// Principal is the identity used for in-process actions.
func (c Config) Principal() auth.Principal {
	return auth.Principal{UserID: c.User, OrgID: c.Org}
}

// Remote reports whether actions go to a server instead of the local store.
func (c Config) Remote() bool {
	return c.APIURL != ""
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
