package config

import (
	"errors"
	"time"

	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/database"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Logger      LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	// ResetEnabled gates the table-wipe endpoint. Never enable outside
	// test environments.
	ResetEnabled bool `mapstructure:"resetEnabled"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      int           `mapstructure:"retryDelay"` // seconds
}

// AuthConfig contains access token settings
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwtSecret"`
	TokenDuration time.Duration `mapstructure:"tokenDuration"` // minutes
	BcryptCost    int           `mapstructure:"bcryptCost"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// Validate checks the settings that have no safe fallback
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is required; set it via BL_AUTH_JWT_SECRET")
	}
	if c.Environment == Production && c.Server.ResetEnabled {
		return errors.New("server.resetEnabled must be off in production")
	}
	return c.DatabaseConfig().Validate()
}

// DatabaseConfig converts the database section into the connection
// manager's config type
func (c *Config) DatabaseConfig() *database.Config {
	return &database.Config{
		Driver:          c.Database.Driver,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		Username:        c.Database.Username,
		Password:        c.Database.Password,
		Database:        c.Database.Database,
		SSLMode:         c.Database.SSLMode,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		QueryTimeout:    c.Database.QueryTimeout,
		LogLevel:        c.Logger.Level,
		RetryAttempts:   c.Database.RetryAttempts,
		RetryDelay:      c.Database.RetryDelay,
	}
}
