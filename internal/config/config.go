package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/spring-countdown/internal/countdown"
	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/storage"
	"github.com/ensigniasec/spring-countdown/internal/validate"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPRING_COUNTDOWN_"

// DefaultConfigFile is the YAML file read when no path is given.
const DefaultConfigFile = "~/.config/spring-countdown/config.yaml"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidTarget = errors.New("invalid target time")
)

// Config holds everything the binary needs before the engines start.
type Config struct {
	Target          time.Time `yaml:"-"`
	StorageBackend  string    `yaml:"storage_backend"   validate:"oneof=json sqlite"`
	StorageFile     string    `yaml:"storage_file"      validate:"required"`
	Messages        []string  `yaml:"messages"          validate:"min=1,dive,required"`
	InitialPoolSize int       `yaml:"initial_pool_size" validate:"gte=0"`
	MaxPoolSize     int       `yaml:"max_pool_size"     validate:"gte=1,gtefield=InitialPoolSize"`
	ReachedText     string    `yaml:"reached_text"      validate:"required"`
	Plain           bool      `yaml:"plain"`
	LogFile         string    `yaml:"log_file"`
}

// fileConfig mirrors the YAML document; the target stays a string so
// local-time forms can be parsed with ParseTarget.
type fileConfig struct {
	Config `yaml:",inline"`
	Target string `yaml:"target"`
}

// DefaultTarget is midnight local time on the first day of the 2026 festival.
func DefaultTarget() time.Time {
	return time.Date(2026, time.February, 17, 0, 0, 0, 0, time.Local)
}

// DefaultStorageFile returns the storage path used for a backend.
func DefaultStorageFile(backend string) string {
	if backend == storage.BackendSQLite {
		return "~/.config/spring-countdown/storage.db"
	}
	return "~/.config/spring-countdown/storage.json"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	pool := danmaku.DefaultConfig()
	return Config{
		Target:          DefaultTarget(),
		StorageBackend:  storage.BackendJSON,
		StorageFile:     DefaultStorageFile(storage.BackendJSON),
		Messages:        append([]string(nil), danmaku.DefaultMessages...),
		InitialPoolSize: pool.InitialPoolSize,
		MaxPoolSize:     pool.MaxPoolSize,
		ReachedText:     countdown.DefaultReachedText,
	}
}

// Options controls where Load looks for its inputs. Zero values select the
// defaults: DefaultConfigFile, ".env" in the working directory and the
// process environment.
type Options struct {
	ConfigFile string
	EnvFile    string
	LookupEnv  func(key string) (string, bool)
}

// Load layers defaults, the YAML config file, the .env file and the
// environment, in increasing precedence, then validates the result. Missing
// files are not an error. CLI flags are applied by the caller, which should
// call Validate again afterwards.
func Load(opts Options) (Config, error) {
	cfg := Defaults()

	path := opts.ConfigFile
	if path == "" {
		path = DefaultConfigFile
	}
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, envFile, err)
		}
		dotenv = nil
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+key]
		return v, ok
	}
	if err := cfg.mergeEnv(env); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	expanded, err := expandTilde(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		logrus.Debugf("No config file at %s", expanded)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	fc := fileConfig{Config: *c}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, expanded, err)
	}
	if fc.Target != "" {
		t, err := ParseTarget(fc.Target)
		if err != nil {
			return err
		}
		fc.Config.Target = t
	}
	backendChanged := fc.StorageBackend != c.StorageBackend
	*c = fc.Config
	if backendChanged && c.StorageFile == DefaultStorageFile(storage.BackendJSON) {
		c.StorageFile = DefaultStorageFile(c.StorageBackend)
	}
	logrus.Debugf("Loaded config file %s", expanded)
	return nil
}

func (c *Config) mergeEnv(env func(string) (string, bool)) error {
	if v, ok := env("TARGET"); ok {
		t, err := ParseTarget(v)
		if err != nil {
			return err
		}
		c.Target = t
	}
	if v, ok := env("STORAGE_BACKEND"); ok {
		if c.StorageFile == DefaultStorageFile(c.StorageBackend) {
			c.StorageFile = DefaultStorageFile(v)
		}
		c.StorageBackend = v
	}
	c.StorageFile = getEnv(env, "STORAGE_FILE", c.StorageFile)
	c.Messages = getEnvList(env, "MESSAGES", c.Messages)
	c.ReachedText = getEnv(env, "REACHED_TEXT", c.ReachedText)
	c.LogFile = getEnv(env, "LOG_FILE", c.LogFile)

	var err error
	if c.InitialPoolSize, err = getEnvInt(env, "INITIAL_POOL_SIZE", c.InitialPoolSize); err != nil {
		return err
	}
	if c.MaxPoolSize, err = getEnvInt(env, "MAX_POOL_SIZE", c.MaxPoolSize); err != nil {
		return err
	}
	if c.Plain, err = getEnvBool(env, "PLAIN", c.Plain); err != nil {
		return err
	}
	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, validate.FieldErrors(err))
	}
	if c.Target.IsZero() {
		return fmt.Errorf("%w: zero", ErrInvalidTarget)
	}
	return nil
}

// Danmaku returns the comment engine configuration derived from c.
func (c Config) Danmaku() danmaku.Config {
	d := danmaku.DefaultConfig()
	d.Messages = append([]string(nil), c.Messages...)
	d.InitialPoolSize = c.InitialPoolSize
	d.MaxPoolSize = c.MaxPoolSize
	return d
}

var targetLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTarget accepts RFC 3339 timestamps, or date and time forms without a
// zone, which are read in local time.
func ParseTarget(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range targetLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
}

func getEnv(env func(string) (string, bool), key, fallback string) string {
	if v, ok := env(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(env func(string) (string, bool), key string, fallback int) (int, error) {
	v, ok := env(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, key, v)
	}
	return n, nil
}

func getEnvBool(env func(string) (string, bool), key string, fallback bool) (bool, error) {
	v, ok := env(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, key, v)
	}
	return b, nil
}

// getEnvList splits a "|"-separated value; comment texts may contain commas.
func getEnvList(env func(string) (string, bool), key string, fallback []string) []string {
	v, ok := env(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func expandTilde(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
