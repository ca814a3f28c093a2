package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// LogFile enables rotated file output in addition to stdout when set.
	LogFile string `mapstructure:"log_file"`

	ReadTimeoutSeconds     int `mapstructure:"read_timeout_seconds"     validate:"gte=0"`
	WriteTimeoutSeconds    int `mapstructure:"write_timeout_seconds"    validate:"gte=0"`
	IdleTimeoutSeconds     int `mapstructure:"idle_timeout_seconds"     validate:"gte=0"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                        validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"             validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"             validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"  validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// TokenLifetimeMinutes of zero issues tokens without an exp claim.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"gte=0,lt=525600"`
	// PasswordHashing selects how credentials are stored and compared.
	// "plaintext" exists only to read rows written by the legacy deployment.
	PasswordHashing string `mapstructure:"password_hashing" validate:"required,oneof=bcrypt plaintext"`
	BcryptCost      int    `mapstructure:"bcrypt_cost"      validate:"gte=4,lte=31"`
}

// TracingConfig controls OpenTelemetry span export. Incoming W3C trace
// context is honored whether or not export is enabled.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name" validate:"required"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}
