package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PAWS"

// Document store drivers. The memory driver keeps everything in-process and
// is meant for local development.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// DatabaseConfig holds PostgreSQL connection settings for the document store.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the libpq-style connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// JWTConfig holds the identity token settings.
type JWTConfig struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration
}

// KafkaConfig holds broker and topic settings.
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	EventsTopic string
	UserTopic   string
	GroupPrefix string
}

// UploadConfig holds object storage settings.
type UploadConfig struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

// CatalogConfig holds adoption catalog and clinic seed settings.
type CatalogConfig struct {
	SeedFile string
	MaxAge   int
}

// ServiceConfig holds all configuration for the welfare service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	StoreDriver   string
	CacheSize     int
	DBConfig      DatabaseConfig
	JWTConfig     JWTConfig
	KafkaConfig   KafkaConfig
	UploadConfig  UploadConfig
	CatalogConfig CatalogConfig
}

// Load reads configuration from PAWS_* environment variables and an optional
// config file (pawsprotect.yaml in the working directory).
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("pawsprotect")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("cache_size", 128)
	v.SetDefault("store_driver", "postgres")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "pawsprotect")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_issuer", "pawsprotect-identity")
	v.SetDefault("jwt_access_ttl", "15m")

	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_events_topic", "pawsprotect.events")
	v.SetDefault("kafka_user_topic", "identity.user.events")
	v.SetDefault("kafka_group_prefix", "pawsprotect-")

	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("upload_base_url", "http://localhost:8080/uploads")
	v.SetDefault("upload_max_bytes", 5*1024*1024)

	v.SetDefault("catalog_seed_file", "")
	v.SetDefault("catalog_max_age", 15)
}

func fromViper(v *viper.Viper) (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Port:        normalizePort(v.GetString("service_port")),
		AppEnv:      v.GetString("app_env"),
		StoreDriver: v.GetString("store_driver"),
		CacheSize:   v.GetInt("cache_size"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		JWTConfig: JWTConfig{
			Secret:    v.GetString("jwt_secret"),
			Issuer:    v.GetString("jwt_issuer"),
			AccessTTL: v.GetDuration("jwt_access_ttl"),
		},
		KafkaConfig: KafkaConfig{
			Enabled:     v.GetBool("kafka_enabled"),
			Brokers:     splitList(v.GetString("kafka_brokers")),
			EventsTopic: v.GetString("kafka_events_topic"),
			UserTopic:   v.GetString("kafka_user_topic"),
			GroupPrefix: v.GetString("kafka_group_prefix"),
		},
		UploadConfig: UploadConfig{
			Dir:      v.GetString("upload_dir"),
			BaseURL:  strings.TrimRight(v.GetString("upload_base_url"), "/"),
			MaxBytes: v.GetInt64("upload_max_bytes"),
		},
		CatalogConfig: CatalogConfig{
			SeedFile: v.GetString("catalog_seed_file"),
			MaxAge:   v.GetInt("catalog_max_age"),
		},
	}

	if cfg.JWTConfig.Secret == "" && cfg.AppEnv != "development" {
		return nil, fmt.Errorf("PAWS_JWT_SECRET is required outside development")
	}
	if cfg.JWTConfig.Secret == "" {
		cfg.JWTConfig.Secret = "development-secret"
	}
	switch cfg.StoreDriver {
	case StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.CatalogConfig.MaxAge <= 0 {
		return nil, fmt.Errorf("catalog max age must be positive, got %d", cfg.CatalogConfig.MaxAge)
	}
	if cfg.UploadConfig.MaxBytes <= 0 {
		return nil, fmt.Errorf("upload max bytes must be positive, got %d", cfg.UploadConfig.MaxBytes)
	}
	return cfg, nil
}

func normalizePort(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
