package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Bids          BidConfig
	Notifications NotificationConfig
	Cron          CronConfig
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
	Env          string `envconfig:"AGRITRADE_APP_ENV" required:"true"`
	Port         string `envconfig:"AGRITRADE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AGRITRADE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AGRITRADE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"AGRITRADE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"AGRITRADE_DB_DSN"`
	Driver string `envconfig:"AGRITRADE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AGRITRADE_DB_HOST"`
	LegacyPort     int    `envconfig:"AGRITRADE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AGRITRADE_DB_USER"`
	LegacyPassword string `envconfig:"AGRITRADE_DB_PASSWORD"`
	LegacyName     string `envconfig:"AGRITRADE_DB_NAME"`
	LegacySSLMode  string `envconfig:"AGRITRADE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AGRITRADE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AGRITRADE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AGRITRADE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AGRITRADE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AGRITRADE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AGRITRADE_REDIS_ADDR"`
	Password     string        `envconfig:"AGRITRADE_REDIS_PASSWORD"`
	DB           int           `envconfig:"AGRITRADE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AGRITRADE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AGRITRADE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AGRITRADE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AGRITRADE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AGRITRADE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AGRITRADE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AGRITRADE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"AGRITRADE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"AGRITRADE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"AGRITRADE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"AGRITRADE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	BidEventsTopic string `envconfig:"AGRITRADE_PUBSUB_BID_EVENTS_TOPIC" default:"at-bid-events"`
}

type BidConfig struct {
	TTL time.Duration `envconfig:"AGRITRADE_BID_TTL" default:"24h"`
}

type NotificationConfig struct {
	RetentionTTL time.Duration `envconfig:"AGRITRADE_NOTIFICATION_RETENTION_TTL" default:"24h"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"AGRITRADE_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"AGRITRADE_CRON_LOCK_TTL" default:"55m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"AGRITRADE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"AGRITRADE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
