package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL      = "http://127.0.0.1:7333"
	DefaultDataDirName = ".nundu"
	DefaultStorage     = "json"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"

	configFileName = ".nundu.toml"
	envFileName    = ".env"

	configDirEnvKey          = "NUNDU_CONFIG_DIR"
	trustProjectConfigEnvKey = "NUNDU_TRUST_PROJECT_CONFIG"
)

// Config defines runtime configuration for nundu.
//
// Values are layered: defaults, the global TOML file, a trusted project TOML
// file, a .env file in the working directory, then NUNDU_* environment
// variables. The log level is resolved separately by the CLI so that a
// --log-level flag can win over NUNDU_LOG_LEVEL.
type Config struct {
	APIURL      string   `toml:"api_url" env:"NUNDU_API_URL"`
	DataDir     string   `toml:"data_dir" env:"NUNDU_DATA_DIR"`
	Storage     string   `toml:"storage" env:"NUNDU_STORAGE"`
	LogLevel    string   `toml:"log_level"`
	LogFormat   string   `toml:"log_format" env:"NUNDU_LOG_FORMAT"`
	CORSOrigins []string `toml:"cors_origins" env:"NUNDU_CORS_ORIGINS" envSeparator:","`

	TrustedProjectConfigPath string `toml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:      DefaultAPIURL,
		DataDir:     "",
		Storage:     DefaultStorage,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		CORSOrigins: []string{"*"},
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

// loadDotEnv exports the variables of a .env file in dir. Variables that are
// already set in the environment win.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, envFileName)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"api_url",
	"data_dir",
	"storage",
	"log_level",
	"log_format",
	"cors_origins",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "data_dir":
		return c.DataDir, nil
	case "storage":
		return c.Storage, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	case "cors_origins":
		return strings.Join(c.CORSOrigins, ","), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	data[key] = parsedValue

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files, the working directory's .env file
// and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				loaded, err := loadFileIfExists(projectPath, &cfg)
				if err != nil {
					return nil, err
				}
				if loaded {
					cfg.TrustedProjectConfigPath = projectPath
				}
			}
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		if err := loadDotEnv(cwd); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage == "" {
		c.Storage = DefaultStorage
	}
	if _, err := parseSetValue("storage", c.Storage); err != nil {
		return err
	}

	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if _, err := parseSetValue("log_format", c.LogFormat); err != nil {
		return err
	}

	if strings.TrimSpace(c.DataDir) == "" {
		if cwd, err := os.Getwd(); err == nil {
			c.DataDir = filepath.Join(cwd, DefaultDataDirName)
		}
	}
	c.CORSOrigins = splitCSV(strings.Join(c.CORSOrigins, ","))
	return nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "storage":
		switch strings.ToLower(value) {
		case "json", "sqlite":
			return strings.ToLower(value), nil
		default:
			return nil, fmt.Errorf("storage must be json or sqlite")
		}
	case "log_format":
		switch strings.ToLower(value) {
		case "text", "json":
			return strings.ToLower(value), nil
		default:
			return nil, fmt.Errorf("log_format must be text or json")
		}
	case "cors_origins":
		return splitCSV(value), nil
	default:
		return value, nil
	}
}

func splitCSV(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
