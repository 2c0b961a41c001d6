package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GWP_SERVER_PORT.
const EnvPrefix = "GWP"

// LoadConfig reads configuration from file and environment.
//
// A missing file is not an error: defaults plus environment variables are
// enough to start the server.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" && fileExists(configFile) {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the original deployment passes the DSN as DATABASE_URL
	if err := v.BindEnv("database.dsn", EnvPrefix+"_DATABASE_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv("server.expose_errors"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	registerDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	setDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// registerDefaults makes every key known to viper so AutomaticEnv can
// override it during Unmarshal.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8002)
	v.SetDefault("server.production_mode", false)
	v.SetDefault("server.tls_cert", "fullchain.pem")
	v.SetDefault("server.tls_key", "private.key")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cleanup_interval", "10m")
	v.SetDefault("session.redis.host", "localhost")
	v.SetDefault("session.redis.port", 6379)
	v.SetDefault("session.redis.db", 0)
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.redis.key_prefix", "gwp:session:")

	v.SetDefault("auth.admin_user_ids", []uint{1})
	v.SetDefault("auth.admin.nombre", "Administrador")
	v.SetDefault("auth.admin.username", "")
	v.SetDefault("auth.admin.password", "")

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.upload_dir", "./uploads")
	v.SetDefault("storage.max_upload_mb", 50)
	v.SetDefault("storage.max_concurrent_uploads", 3)
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")
	v.SetDefault("storage.s3.prefix", "")

	v.SetDefault("cors.origins", []string{"*"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Origin", "Content-Length", "Content-Type", "Authorization"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// setDefaults fills values viper cannot default (derived or emptied by the file).
func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8002
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	if cfg.Database.DSN == "" {
		switch cfg.Database.Driver {
		case "sqlite":
			cfg.Database.DSN = "./database/gwp.db"
		case "postgres":
			cfg.Database.DSN = "postgres://postgres@localhost:5432/GWP?sslmode=disable"
		}
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	cfg.Session.Backend = strings.ToLower(cfg.Session.Backend)
	cfg.Storage.Provider = strings.ToLower(cfg.Storage.Provider)
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "./uploads"
	}
	if cfg.Storage.MaxUploadMB <= 0 {
		cfg.Storage.MaxUploadMB = 50
	}
	if cfg.Storage.MaxConcurrentUploads < 0 {
		cfg.Storage.MaxConcurrentUploads = 0
	}
	if len(cfg.Auth.AdminUserIDs) == 0 {
		cfg.Auth.AdminUserIDs = []uint{1}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// validateConfig rejects unusable settings and prepares local directories.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database dsn is empty (database.dsn / DATABASE_URL)")
	}
	if cfg.Database.MinConns < 0 || cfg.Database.MinConns > cfg.Database.MaxConns {
		return fmt.Errorf("invalid pool size: min=%d max=%d", cfg.Database.MinConns, cfg.Database.MaxConns)
	}

	switch cfg.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session backend: %q", cfg.Session.Backend)
	}
	if cfg.Session.TTL < 0 {
		return fmt.Errorf("session ttl must not be negative")
	}

	switch cfg.Storage.Provider {
	case "local":
		if err := os.MkdirAll(cfg.Storage.UploadDir, 0755); err != nil {
			return fmt.Errorf("create upload dir: %w", err)
		}
	case "s3":
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("s3 storage requires a bucket")
		}
	default:
		return fmt.Errorf("unsupported storage provider: %q", cfg.Storage.Provider)
	}

	if cfg.Database.Driver == "sqlite" {
		dbDir := filepath.Dir(cfg.Database.DSN)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("create database dir: %w", err)
		}
	}

	return nil
}

// TLSFiles returns the certificate and key paths when both exist.
func (s *ServerConfig) TLSFiles() (string, string, bool) {
	if s.TLSCert == "" || s.TLSKey == "" {
		return "", "", false
	}
	if !fileExists(s.TLSCert) || !fileExists(s.TLSKey) {
		return "", "", false
	}
	return s.TLSCert, s.TLSKey, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
