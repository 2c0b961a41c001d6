package config

import (
	"fmt"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
	TLSCert        string `mapstructure:"tls_cert"`
	TLSKey         string `mapstructure:"tls_key"`
	// ExposeErrors returns raw internal error strings in 500 responses.
	// Unset means "only outside production mode".
	ExposeErrors *bool `mapstructure:"expose_errors"`
}

// GetAddress returns host:port for the HTTP listener.
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ShouldExposeErrors reports whether 500 bodies carry the underlying error text.
func (s *ServerConfig) ShouldExposeErrors() bool {
	if s.ExposeErrors != nil {
		return *s.ExposeErrors
	}
	return !s.ProductionMode
}

// DatabaseConfig selects the SQL dialect and sizes the connection pool.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MinConns        int           `mapstructure:"min_conns"`
	MaxConns        int           `mapstructure:"max_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// SessionConfig configures where bearer tokens live and for how long.
type SessionConfig struct {
	Backend         string        `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Redis           RedisConfig   `mapstructure:"redis"`
}

// RedisConfig points the redis session backend at a server.
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	DB        int    `mapstructure:"db"`
	Password  string `mapstructure:"password"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// GetAddress returns host:port of the redis server.
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig lists privileged users and the optional bootstrap account.
type AuthConfig struct {
	AdminUserIDs []uint      `mapstructure:"admin_user_ids"`
	Admin        AdminConfig `mapstructure:"admin"`
}

// AdminConfig describes the account created at startup when it does not exist yet.
type AdminConfig struct {
	Nombre   string `mapstructure:"nombre"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// StorageConfig selects the file store backend.
type StorageConfig struct {
	Provider    string `mapstructure:"provider"`
	UploadDir   string `mapstructure:"upload_dir"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`

	// MaxConcurrentUploads is the per-user cap on uploads in flight; 0 disables it.
	MaxConcurrentUploads int      `mapstructure:"max_concurrent_uploads"`
	S3                   S3Config `mapstructure:"s3"`
}

// MaxUploadBytes is the multipart memory limit handed to gin.
func (s *StorageConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// S3Config holds credentials for the S3-compatible provider.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// CORSConfig CORS settings.
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
