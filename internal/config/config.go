package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

type Config struct {
	Port           int      `yaml:"port"`
	DataSource     string   `yaml:"data_source"` // csv or sqlite
	DataPath       string   `yaml:"data_path"`
	DatabasePath   string   `yaml:"database_path"`
	StaticDir      string   `yaml:"static_dir"`
	SidebarImage   string   `yaml:"sidebar_image"`
	CaptionAuthor  string   `yaml:"caption_author"`
	CaptionURL     string   `yaml:"caption_url"`
	LogDirectory   string   `yaml:"log_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AdminToken     string   `yaml:"admin_token"` // guards /logs; empty disables it
	ReadTimeout    int      `yaml:"read_timeout"`  // seconds
	WriteTimeout   int      `yaml:"write_timeout"` // seconds
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Port:           8080,
		DataSource:     SourceCSV,
		DataPath:       filepath.Join(".", "data", "all_df.csv"),
		DatabasePath:   filepath.Join(".", "data", "rentals.db"),
		StaticDir:      filepath.Join(".", "static"),
		SidebarImage:   filepath.Join(".", "static", "mountain-bike.jpg"),
		CaptionAuthor:  "Rina Rismawati",
		CaptionURL:     "https://www.linkedin.com/in/rinarsm17",
		LogDirectory:   filepath.Join(".", "logs"),
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		ReadTimeout:    5,
		WriteTimeout:   10,
	}
}

// Load reads .env (if present), then the optional YAML file named by
// CONFIG_FILE, then environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnvAsInt("PORT", cfg.Port)
	cfg.DataSource = strings.ToLower(getEnv("DATA_SOURCE", cfg.DataSource))
	cfg.DataPath = getEnv("DATA_PATH", cfg.DataPath)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)
	cfg.SidebarImage = getEnv("SIDEBAR_IMAGE", cfg.SidebarImage)
	cfg.CaptionAuthor = getEnv("CAPTION_AUTHOR", cfg.CaptionAuthor)
	cfg.CaptionURL = getEnv("CAPTION_URL", cfg.CaptionURL)
	cfg.LogDirectory = getEnv("LOG_DIR", cfg.LogDirectory)
	cfg.AllowedOrigins = getEnvAsList("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.AdminToken = getEnv("ADMIN_TOKEN", cfg.AdminToken)
	cfg.ReadTimeout = getEnvAsInt("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", cfg.WriteTimeout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.DataSource {
	case SourceCSV:
		if c.DataPath == "" {
			return fmt.Errorf("DATA_PATH is required for the csv source")
		}
	case SourceSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.DataSource)
	}
	return nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
