package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all stackctl configuration.
type Config struct {
	EnvFile        string          `mapstructure:"env_file"`
	Dirs           []string        `mapstructure:"dirs"`
	PrimaryService string          `mapstructure:"primary_service"`
	Compose        ComposeConfig   `mapstructure:"compose"`
	Docker         DockerConfig    `mapstructure:"docker"`
	Health         HealthConfig    `mapstructure:"health"`
	Readiness      ReadinessConfig `mapstructure:"readiness"`
	Logs           LogsConfig      `mapstructure:"logs"`
	Mongo          MongoConfig     `mapstructure:"mongo"`
	Backup         BackupConfig    `mapstructure:"backup"`
	Source         SourceConfig    `mapstructure:"source"`
	Lock           LockConfig      `mapstructure:"lock"`
	Log            LogConfig       `mapstructure:"log"`
}

// ComposeConfig selects the stack definition handed to the orchestration tool.
type ComposeConfig struct {
	File    string `mapstructure:"file"`
	Project string `mapstructure:"project"`
	Dir     string `mapstructure:"dir"`
}

// DockerConfig holds Docker client configuration for the readiness poll.
type DockerConfig struct {
	Host string `mapstructure:"host"`
}

// HealthConfig holds the verification probe settings.
type HealthConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`

	// StrictExit makes a failed probe flip the process exit status. Setting
	// it false preserves the historical always-zero behaviour.
	StrictExit bool `mapstructure:"strict_exit"`
}

// ReadinessConfig holds the wait between start and verification.
type ReadinessConfig struct {
	Mode     string        `mapstructure:"mode"` // "poll" or "fixed"
	Wait     time.Duration `mapstructure:"wait"`
	Interval time.Duration `mapstructure:"interval"`
	Deadline time.Duration `mapstructure:"deadline"`
}

// LogsConfig bounds log collection.
type LogsConfig struct {
	Tail int `mapstructure:"tail"`
}

// MongoConfig holds the database settings for seed and backup.
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// BackupConfig holds the update-path backup settings.
type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

// SourceConfig holds the update-path working tree.
type SourceConfig struct {
	Dir string `mapstructure:"dir"`
}

// LockConfig holds the advisory deployment lock.
type LockConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("env_file", ".env")
	v.SetDefault("dirs", []string{"logs", "ssl"})
	v.SetDefault("primary_service", "")
	v.SetDefault("compose.file", "docker-compose.yml")
	v.SetDefault("compose.project", "")
	v.SetDefault("compose.dir", "")
	v.SetDefault("docker.host", "")
	v.SetDefault("health.url", "http://localhost/health")
	v.SetDefault("health.timeout", "3s")
	v.SetDefault("health.strict_exit", true)
	v.SetDefault("readiness.mode", "poll")
	v.SetDefault("readiness.wait", "30s") // fixed-mode delay, matches the original scripts
	v.SetDefault("readiness.interval", "5s")
	v.SetDefault("readiness.deadline", "120s")
	v.SetDefault("logs.tail", 50)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "telegram_bot_db")
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("source.dir", "")
	v.SetDefault("lock.path", ".stackctl.lock")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("STACKCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
