package config

// Config holds all application configuration. It is loaded once at
// startup and passed explicitly to the components that need it; no
// component reads the process environment on its own.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all HTTP-server-related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}
