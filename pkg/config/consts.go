package config

// EnvPrefix scopes every environment variable read by Load.
const EnvPrefix = "AGRITRADE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "AGRITRADE_APP_ENV"
	EnvPort       = "AGRITRADE_APP_PORT"
	EnvDBDSN      = "AGRITRADE_DB_DSN"
	EnvDBHost     = "AGRITRADE_DB_HOST"
	EnvDBUser     = "AGRITRADE_DB_USER"
	EnvDBName     = "AGRITRADE_DB_NAME"
	EnvRedisURL   = "AGRITRADE_REDIS_URL"
	EnvJWTSecret  = "AGRITRADE_JWT_SECRET"
	EnvJWTIssuer  = "AGRITRADE_JWT_ISSUER"
	EnvJWTExpMins = "AGRITRADE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
