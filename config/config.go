package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FITSTUDIO_DATABASE_HOST.
const EnvPrefix = "FITSTUDIO"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address               string `yaml:"address"`
	Swagger               bool   `yaml:"swagger"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds" split_words:"true"`
}

type GRPCConfig struct {
	// Empty address disables the gRPC server.
	Address string `yaml:"address"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode" split_words:"true"`
	MaxConns int32  `yaml:"max_conns" split_words:"true"`
	Migrate  bool   `yaml:"migrate"`
	Seed     bool   `yaml:"seed"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	// Empty address disables the classes cache.
	Addr              string `yaml:"addr"`
	Password          string `yaml:"password"`
	DB                int    `yaml:"db"`
	ClassesTTLSeconds int    `yaml:"classes_ttl_seconds" split_words:"true"`
}

type KafkaConfig struct {
	// No brokers disables booking events.
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic" split_words:"true"`
	GroupID            string   `yaml:"group_id" split_words:"true"`
}

type BookingConfig struct {
	DefaultTimezone string `yaml:"default_timezone" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:               ":8080",
			Swagger:               true,
			RequestTimeoutSeconds: 10,
		},
		GRPC:    GRPCConfig{Address: ":9090"},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Name:     "fitstudio",
			SSLMode:  "disable",
			MaxConns: 10,
			Migrate:  true,
			Seed:     true,
		},
		Redis: RedisConfig{ClassesTTLSeconds: 30},
		Kafka: KafkaConfig{
			BookingEventsTopic: "fitstudio.bookings",
			GroupID:            "fitstudio-audit",
		},
		Booking: BookingConfig{DefaultTimezone: "Asia/Kolkata"},
		Log:     LogConfig{Level: "info", Format: "json"},
	}
}

// LoadConfig reads the YAML file at path over Default() and then applies
// FITSTUDIO_* environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.HTTP.Address == "" {
		return fmt.Errorf("http address is required")
	}
	if c.Booking.DefaultTimezone == "" {
		return fmt.Errorf("booking default timezone is required")
	}
	return nil
}
