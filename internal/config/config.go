// Package config loads punch settings from defaults, an optional YAML file,
// an optional .env file and PUNCH_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/punch/internal/domain"
)

// Config holds all runtime settings.
type Config struct {
	DBPath         string                `yaml:"db"`
	ClockOutPolicy domain.ClockOutPolicy `yaml:"clock_out_policy"`
	BreakScope     domain.BreakScope     `yaml:"break_scope"`
	DailyTargetMin int                   `yaml:"daily_target_min"`
	LogLevel       string                `yaml:"log_level"`
	LogUseCases    bool                  `yaml:"log_use_cases"`
	LogLimit       int                   `yaml:"log_limit"`

	// ConfigPath is the YAML file that was consulted, whether or not it existed.
	ConfigPath string `yaml:"-"`
}

// DefaultConfig returns a Config with the defaults used when nothing is set.
// The database lives under ~/.punch unless the home directory is unknown.
func DefaultConfig() Config {
	return Config{
		DBPath:         filepath.Join(punchDir(), "punch.db"),
		ClockOutPolicy: domain.ClockOutReject,
		BreakScope:     domain.BreakScopeSession,
		DailyTargetMin: 480,
		LogLevel:       "warn",
		LogUseCases:    false,
		LogLimit:       80,
		ConfigPath:     filepath.Join(punchDir(), "config.yaml"),
	}
}

func punchDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".punch"
	}
	return filepath.Join(home, ".punch")
}

// Load builds the effective configuration. envFiles name dotenv files to read
// (".env" when none are given); missing files are skipped. Variables already
// present in the environment win over dotenv values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if v := os.Getenv("PUNCH_CONFIG"); v != "" {
		cfg.ConfigPath = v
	}
	if err := LoadFile(cfg.ConfigPath, &cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg. A missing file is not an
// error; fields absent from the file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PUNCH_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PUNCH_CLOCK_OUT_POLICY"); v != "" {
		cfg.ClockOutPolicy = domain.ClockOutPolicy(strings.ToLower(v))
	}
	if v := os.Getenv("PUNCH_BREAK_SCOPE"); v != "" {
		cfg.BreakScope = domain.BreakScope(strings.ToLower(v))
	}
	if v := os.Getenv("PUNCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PUNCH_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PUNCH_LOG_USE_CASES: %w", err)
		}
		cfg.LogUseCases = b
	}
	if v := os.Getenv("PUNCH_DAILY_TARGET_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PUNCH_DAILY_TARGET_MIN: %w", err)
		}
		cfg.DailyTargetMin = n
	}
	if v := os.Getenv("PUNCH_LOG_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PUNCH_LOG_LIMIT: %w", err)
		}
		cfg.LogLimit = n
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var problems []string
	if c.DBPath == "" {
		problems = append(problems, "db path is empty")
	}
	if !domain.ValidClockOutPolicies[string(c.ClockOutPolicy)] {
		problems = append(problems, fmt.Sprintf("clock_out_policy %q must be reject or force_close", c.ClockOutPolicy))
	}
	if !domain.ValidBreakScopes[string(c.BreakScope)] {
		problems = append(problems, fmt.Sprintf("break_scope %q must be session or day", c.BreakScope))
	}
	if c.DailyTargetMin <= 0 {
		problems = append(problems, "daily_target_min must be positive")
	}
	if c.LogLimit <= 0 {
		problems = append(problems, "log_limit must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
