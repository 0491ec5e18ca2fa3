package config

import (
	"carbonaudit/pkg/logger"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Supported values of Database.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// the audit collaborators, background workers and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set.
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// It must exceed RequestTimeout because synchronous audits take minutes.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"4m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"3m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// CORSOrigins lists allowed browser origins, "*" allows any
		CORSOrigins []string      `env:"HTTP_CORS_ORIGINS" env-default:"*" env-separator:"," yaml:"corsOrigins"`
		CORSMaxAge  time.Duration `env:"HTTP_CORS_MAX_AGE" env-default:"10m" yaml:"corsMaxAge"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Driver selects the storage backend: postgres or sqlite
		Driver string `env:"DATABASE_DRIVER" env-default:"postgres" yaml:"driver"`
		// SQLitePath is the database file used by the sqlite driver
		SQLitePath string `env:"DATABASE_SQLITE_PATH" env-default:"carbonaudit.db" yaml:"sqlitePath"`
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"carbonaudit" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Carbon configures the carbon estimator and its collaborators
	Carbon struct {
		UserAgent    string        `env:"CARBON_USER_AGENT" env-default:"Mozilla/5.0 (compatible; CarbonAuditBot/1.0)" yaml:"userAgent"` //nolint: lll
		FetchTimeout time.Duration `env:"CARBON_FETCH_TIMEOUT" env-default:"30s" yaml:"fetchTimeout"`
		// MaxBodyBytes caps the size of fetched pages
		MaxBodyBytes      int64         `env:"CARBON_MAX_BODY_BYTES" env-default:"52428800" yaml:"maxBodyBytes"`
		GreenCheckURL     string        `env:"CARBON_GREEN_CHECK_URL" env-default:"https://api.thegreenwebfoundation.org/api/v3/greencheck/" yaml:"greenCheckUrl"` //nolint: lll
		GreenCheckTimeout time.Duration `env:"CARBON_GREEN_CHECK_TIMEOUT" env-default:"5s" yaml:"greenCheckTimeout"`
		FallbackURL       string        `env:"CARBON_FALLBACK_URL" env-default:"https://api.websitecarbon.com/site" yaml:"fallbackUrl"`
		FallbackTimeout   time.Duration `env:"CARBON_FALLBACK_TIMEOUT" env-default:"15s" yaml:"fallbackTimeout"`
	} `yaml:"carbon"`

	// Lighthouse configures the performance auditor
	Lighthouse struct {
		// Binary is the lighthouse executable
		Binary string `env:"LIGHTHOUSE_BINARY" env-default:"lighthouse" yaml:"binary"`
		// ChromePath overrides the Chrome executable lookup
		ChromePath string `env:"LIGHTHOUSE_CHROME_PATH" yaml:"chromePath"`
		// Timeout bounds one audit including browser start-up
		Timeout               time.Duration `env:"LIGHTHOUSE_TIMEOUT" env-default:"2m" yaml:"timeout"`
		RTTMs                 int           `env:"LIGHTHOUSE_RTT_MS" env-default:"40" yaml:"rttMs"`
		ThroughputKbps        int           `env:"LIGHTHOUSE_THROUGHPUT_KBPS" env-default:"10240" yaml:"throughputKbps"`
		CPUSlowdownMultiplier float64       `env:"LIGHTHOUSE_CPU_SLOWDOWN" env-default:"1" yaml:"cpuSlowdownMultiplier"`
	} `yaml:"lighthouse"`

	// Reports configures where report artifacts are written and served
	Reports struct {
		Dir        string `env:"REPORTS_DIR" env-default:"reports" yaml:"dir"`
		PublicPath string `env:"REPORTS_PUBLIC_PATH" env-default:"/reports" yaml:"publicPath"`
		// PDF enables PDF renditions through headless Chrome
		PDF bool `env:"REPORTS_PDF" env-default:"false" yaml:"pdf"`
	} `yaml:"reports"`

	// Worker configures the background audit workers (postgres driver only)
	Worker struct {
		Enabled     bool `env:"WORKER_ENABLED" env-default:"true" yaml:"enabled"`
		MaxWorkers  int  `env:"WORKER_MAX_WORKERS" env-default:"4" yaml:"maxWorkers"`
		MaxAttempts int  `env:"WORKER_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
	} `yaml:"worker"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"30s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv fills a Config from environment variables and defaults only.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cleanenv cannot express.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.HTTP.RequestTimeout > 0 && c.HTTP.WriteTimeout > 0 && c.HTTP.WriteTimeout <= c.HTTP.RequestTimeout {
		return fmt.Errorf("http write timeout (%s) must exceed request timeout (%s)",
			c.HTTP.WriteTimeout, c.HTTP.RequestTimeout)
	}

	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == logger.ProductionEnvironment
}
