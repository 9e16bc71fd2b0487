package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile    = ".neuroflow.yaml"
	DefaultEnvFile = ".env"
)

type RuntimeConfig struct {
	DesktopNotifications bool   `mapstructure:"desktop_notifications" yaml:"desktop_notifications"`
	FocusWorkMinutes     int    `mapstructure:"focus_work_minutes" yaml:"focus_work_minutes"`
	FocusBreakMinutes    int    `mapstructure:"focus_break_minutes" yaml:"focus_break_minutes"`
	TickMillis           int    `mapstructure:"tick_millis" yaml:"tick_millis"`
	SpinnerMillis        int    `mapstructure:"spinner_millis" yaml:"spinner_millis"`
	SchedulerBuffer      int    `mapstructure:"scheduler_buffer" yaml:"scheduler_buffer"`
	StorageBackend       string `mapstructure:"storage_backend" yaml:"storage_backend"`
	StoragePath          string `mapstructure:"storage_path" yaml:"storage_path"`
	StorageQuotaBytes    int    `mapstructure:"storage_quota_bytes" yaml:"storage_quota_bytes"`
	LogPath              string `mapstructure:"log_path" yaml:"log_path"`
	LogLevel             string `mapstructure:"log_level" yaml:"log_level"`

	GatewayBaseURL string        `mapstructure:"gateway_base_url" yaml:"gateway_base_url"`
	GatewayModel   string        `mapstructure:"gateway_model" yaml:"gateway_model"`
	GatewayTimeout time.Duration `mapstructure:"gateway_timeout" yaml:"-"`
	// APIKey is never written back out.
	APIKey string `mapstructure:"api_key" yaml:"-"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		FocusWorkMinutes:     25,
		FocusBreakMinutes:    5,
		TickMillis:           1000,
		SpinnerMillis:        16,
		SchedulerBuffer:      64,
		StorageBackend:       "sqlite",
		StoragePath:          ".neuroflow.db",
		LogPath:              ".neuroflow.log",
		LogLevel:             "info",
		GatewayBaseURL:       "https://generativelanguage.googleapis.com/v1beta",
		GatewayModel:         "gemini-3-flash-preview",
		GatewayTimeout:       15 * time.Second,
	}
}

// Load layers defaults, the YAML file and the environment. Variables from
// .env are loaded into the environment without overriding existing ones.
// A missing default file is not an error.
func Load(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("config: load %s: %w", DefaultEnvFile, err)
	}

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
	}
	if err := loadFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	return RuntimeConfigFromEnv(cfg), nil
}

func loadFile(path string, cfg *RuntimeConfig) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("NEUROFLOW_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("NEUROFLOW_FOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.FocusWorkMinutes = v
	}
	if v, ok := getEnvInt("NEUROFLOW_FOCUS_BREAK_MINUTES"); ok && v > 0 {
		cfg.FocusBreakMinutes = v
	}
	if v, ok := getEnvInt("NEUROFLOW_TICK_MILLIS"); ok && v > 0 {
		cfg.TickMillis = v
	}
	if v, ok := getEnvInt("NEUROFLOW_SPINNER_MILLIS"); ok && v > 0 {
		cfg.SpinnerMillis = v
	}
	if v, ok := getEnvInt("NEUROFLOW_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("NEUROFLOW_STORAGE_QUOTA_BYTES"); ok && v >= 0 {
		cfg.StorageQuotaBytes = v
	}
	if v, ok := getEnvString("NEUROFLOW_STORAGE_BACKEND"); ok {
		cfg.StorageBackend = v
	}
	if v, ok := getEnvString("NEUROFLOW_STORAGE_PATH"); ok {
		cfg.StoragePath = v
	}
	if v, ok := getEnvString("NEUROFLOW_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("NEUROFLOW_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("NEUROFLOW_GATEWAY_BASE_URL"); ok {
		cfg.GatewayBaseURL = v
	}
	if v, ok := getEnvString("NEUROFLOW_GATEWAY_MODEL"); ok {
		cfg.GatewayModel = v
	}
	if v, ok := getEnvString("NEUROFLOW_GATEWAY_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.GatewayTimeout = d
		}
	}
	if v, ok := getEnvString("GEMINI_API_KEY"); ok {
		cfg.APIKey = v
	} else if v, ok := getEnvString("API_KEY"); ok && cfg.APIKey == "" {
		cfg.APIKey = v
	}
	return cfg
}

func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

func (c RuntimeConfig) SpinnerInterval() time.Duration {
	return time.Duration(c.SpinnerMillis) * time.Millisecond
}

func (c RuntimeConfig) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// YAML renders the effective configuration without secrets.
func (c RuntimeConfig) YAML() ([]byte, error) {
	return yaml.Marshal(struct {
		RuntimeConfig  `yaml:",inline"`
		GatewayTimeout string `yaml:"gateway_timeout"`
	}{c, c.GatewayTimeout.String()})
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
