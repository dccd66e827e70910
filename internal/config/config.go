package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default dataset locations
const (
	DefaultTripURL  = "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-01.parquet"
	DefaultZoneURL  = "https://d37ci6vzurychx.cloudfront.net/misc/taxi_zone_lookup.csv"
	DefaultDataDir  = "./data/raw"
	DefaultTripFile = "yellow_tripdata_2024-01.parquet"
	DefaultZoneFile = "taxi_zone_lookup.csv"
)

// Config 应用配置
type Config struct {
	Server  ServerConfig  `yaml:"server" validate:"required"`
	Dataset DatasetConfig `yaml:"dataset" validate:"required"`
	Engine  EngineConfig  `yaml:"engine"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port string `yaml:"port" validate:"required"`
	Mode string `yaml:"mode" validate:"omitempty,oneof=debug release test"`
	// RateLimit is the number of API requests allowed per client per minute,
	// 0 disables limiting
	RateLimit int `yaml:"rate_limit" validate:"gte=0"`
}

// DatasetConfig locates the trip and zone files and where to fetch them from
type DatasetConfig struct {
	Dir      string `yaml:"dir" validate:"required"`
	TripFile string `yaml:"trip_file" validate:"required"`
	ZoneFile string `yaml:"zone_file" validate:"required"`
	TripURL  string `yaml:"trip_url" validate:"omitempty,url"`
	ZoneURL  string `yaml:"zone_url" validate:"omitempty,url"`
	Download bool   `yaml:"download"`
}

// EngineConfig tunes the embedded query engine
type EngineConfig struct {
	Threads     int    `yaml:"threads" validate:"gte=0"`
	MemoryLimit string `yaml:"memory_limit"`
	MaxConns    int    `yaml:"max_conns" validate:"gte=0"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
}

// TripPath returns the trip file path
func (d DatasetConfig) TripPath() string {
	return filepath.Join(d.Dir, d.TripFile)
}

// ZonePath returns the zone file path
func (d DatasetConfig) ZonePath() string {
	return filepath.Join(d.Dir, d.ZoneFile)
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: ":8080", Mode: "release", RateLimit: 120},
		Dataset: DatasetConfig{
			Dir:      DefaultDataDir,
			TripFile: DefaultTripFile,
			ZoneFile: DefaultZoneFile,
			TripURL:  DefaultTripURL,
			ZoneURL:  DefaultZoneURL,
			Download: true,
		},
		Engine: EngineConfig{MaxConns: 1},
		Log:    LogConfig{Level: "INFO"},
	}
}

// Load 加载配置. path may be empty, in which case defaults are used.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			port = ":" + port
		}
		cfg.Server.Port = port
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.Dataset.Dir = dir
	}
	if f := os.Getenv("TRIP_FILE"); f != "" {
		cfg.Dataset.TripFile = f
	}
	if f := os.Getenv("ZONE_FILE"); f != "" {
		cfg.Dataset.ZoneFile = f
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if threads := os.Getenv("ENGINE_THREADS"); threads != "" {
		n, err := strconv.Atoi(threads)
		if err != nil {
			return fmt.Errorf("invalid ENGINE_THREADS %q: %w", threads, err)
		}
		cfg.Engine.Threads = n
	}
	return nil
}
