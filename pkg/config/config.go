package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is the envconfig namespace shared by every binary.
	EnvPrefix = "vinashop"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VINASHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"VINASHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VINASHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VINASHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VINASHOP_DB_DSN"`
	Driver string `envconfig:"VINASHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VINASHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"VINASHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VINASHOP_DB_USER"`
	LegacyPassword string `envconfig:"VINASHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"VINASHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"VINASHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VINASHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VINASHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VINASHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VINASHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN builds a DSN from the discrete host/user/name variables when one
// was not provided directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either VINASHOP_DB_DSN or VINASHOP_DB_HOST/USER/NAME must be set")
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}
	if d.LegacyPassword != "" {
		u.User = url.UserPassword(d.LegacyUser, d.LegacyPassword)
	} else {
		u.User = url.User(d.LegacyUser)
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()

	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"VINASHOP_REDIS_URL"`
	Address      string        `envconfig:"VINASHOP_REDIS_ADDR"`
	Password     string        `envconfig:"VINASHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"VINASHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VINASHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VINASHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VINASHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VINASHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VINASHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"VINASHOP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VINASHOP_JWT_ISSUER" default:"vinashop"`
	ExpirationMinutes      int    `envconfig:"VINASHOP_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"VINASHOP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VINASHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VINASHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VINASHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VINASHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VINASHOP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"VINASHOP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"VINASHOP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"VINASHOP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"VINASHOP_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"VINASHOP_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"VINASHOP_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VINASHOP_AUTO_MIGRATE" default:"false"`
}
