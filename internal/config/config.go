package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	PDF    PDFConfig    `yaml:"pdf"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects where work item rows live. Path is the JSON file used
// by the json backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Watch   bool   `yaml:"watch"`
}

// DBConfig locates the SQLite database holding the activity log and, with
// the sqlite backend, the rows.
type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// PDFConfig points at the scanned price list served by /api/raw-pdf.
type PDFConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Backend: BackendJSON,
			Path:    "data/repair_history.json",
			Watch:   true,
		},
		DB: DBConfig{
			Path: "data/repairdesk.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, in that order. path overrides
// REPAIRDESK_CONFIG_PATH when non-empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("REPAIRDESK_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("REPAIRDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("REPAIRDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid REPAIRDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("REPAIRDESK_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if storePath := os.Getenv("REPAIRDESK_STORE_PATH"); storePath != "" {
		cfg.Store.Path = storePath
	}
	if watchStr := os.Getenv("REPAIRDESK_WATCH"); watchStr != "" {
		watch, err := strconv.ParseBool(watchStr)
		if err != nil {
			return fmt.Errorf("invalid REPAIRDESK_WATCH: %w", err)
		}
		cfg.Store.Watch = watch
	}
	if dbPath := os.Getenv("REPAIRDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("REPAIRDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("REPAIRDESK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if pdfPath := os.Getenv("REPAIRDESK_PDF_PATH"); pdfPath != "" {
		cfg.PDF.Path = pdfPath
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the json backend")
		}
	case BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ParseLogLevel maps a config level name to a slog level. Unknown names
// select info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
