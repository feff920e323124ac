package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultPort            = 8080
	defaultDBType          = "sqlite"
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBName          = "go4it"
	defaultSQLitePath      = "./go4it.db"
	defaultMigrationsPath  = "./migrations"
	defaultOpenAIModel     = "gpt-4o"
	defaultAnalysisTimeout = 60
	defaultMaxRetries      = 3
	defaultFFmpegTimeout   = 120
	defaultUploadDir       = "./uploads"
	defaultStorageBackend  = "local"
	defaultWorkers         = 2
	defaultIntervalHours   = 24
	defaultActor           = "system"
)

type Config struct {
	// Secrets come from the environment only, never from config.yaml.
	OpenAIAPIKey string
	DBPassword   string
	GCSBucket    string

	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Media     MediaConfig     `yaml:"media"`
	Storage   StorageConfig   `yaml:"storage"`
	Generator GeneratorConfig `yaml:"generator"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Type           string `yaml:"type"` // "sqlite" or "postgres"
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Name           string `yaml:"name"`
	SQLitePath     string `yaml:"sqlite_path"`
	MigrationsPath string `yaml:"migrations_path"`
}

type OpenAIConfig struct {
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

type MediaConfig struct {
	WorkDir        string `yaml:"work_dir"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type StorageConfig struct {
	Backend   string `yaml:"backend"` // "local" or "gcs"
	UploadDir string `yaml:"upload_dir"`
	GCSPrefix string `yaml:"gcs_prefix"`
}

type GeneratorConfig struct {
	Workers          int    `yaml:"workers"`
	IntervalHours    int    `yaml:"interval_hours"`
	ScheduleDisabled bool   `yaml:"schedule_disabled"`
	Actor            string `yaml:"actor"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[CONFIG] No .env file found, relying on environment variables")
	}

	cfg := &Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		GCSBucket:    os.Getenv("GCS_BUCKET"),
	}

	loadYAML(cfg, defaultConfigPath)
	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg
}

func loadYAML(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[CONFIG] No %s found, using defaults", path)
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Printf("[CONFIG] Failed to parse %s: %v", path, err)
	}
}

// applyEnvOverrides lets deployment environments steer the config without a
// yaml file, matching the variables the compose setup exports.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		cfg.Database.Type = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MIGRATIONS_PATH"); v != "" {
		cfg.Database.MigrationsPath = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Storage.UploadDir = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("GENERATOR_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Generator.Workers = workers
		}
	}
	if v := os.Getenv("GENERATOR_SCHEDULE_DISABLED"); v == "true" || v == "1" {
		cfg.Generator.ScheduleDisabled = true
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = defaultDBType
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = defaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = defaultDBName
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = defaultDBName
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = defaultSQLitePath
	}
	if cfg.Database.MigrationsPath == "" {
		cfg.Database.MigrationsPath = defaultMigrationsPath
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = defaultOpenAIModel
	}
	if cfg.OpenAI.TimeoutSeconds == 0 {
		cfg.OpenAI.TimeoutSeconds = defaultAnalysisTimeout
	}
	if cfg.OpenAI.MaxRetries == 0 {
		cfg.OpenAI.MaxRetries = defaultMaxRetries
	}
	if cfg.Media.WorkDir == "" {
		cfg.Media.WorkDir = os.TempDir()
	}
	if cfg.Media.TimeoutSeconds == 0 {
		cfg.Media.TimeoutSeconds = defaultFFmpegTimeout
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaultStorageBackend
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = defaultUploadDir
	}
	if cfg.Generator.Workers == 0 {
		cfg.Generator.Workers = defaultWorkers
	}
	if cfg.Generator.IntervalHours == 0 {
		cfg.Generator.IntervalHours = defaultIntervalHours
	}
	if cfg.Generator.Actor == "" {
		cfg.Generator.Actor = defaultActor
	}
}

// Validate catches combinations Load cannot default its way out of.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Storage.Backend == "gcs" && c.GCSBucket == "" {
		return fmt.Errorf("GCS_BUCKET is required when storage backend is gcs")
	}
	switch c.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	return nil
}

func (c *Config) AnalysisTimeout() time.Duration {
	return time.Duration(c.OpenAI.TimeoutSeconds) * time.Second
}

func (c *Config) ExtractionTimeout() time.Duration {
	return time.Duration(c.Media.TimeoutSeconds) * time.Second
}

func (c *Config) ScheduleInterval() time.Duration {
	return time.Duration(c.Generator.IntervalHours) * time.Hour
}
