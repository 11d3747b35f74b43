package config

const (
	EnvPrefix = "gameden"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "GAMEDEN_APP_ENV"
	EnvPort     = "GAMEDEN_APP_PORT"
	EnvRedisURL = "GAMEDEN_REDIS_URL"

	EnvDBDSN  = "GAMEDEN_DB_DSN"
	EnvDBHost = "GAMEDEN_DB_HOST"
	EnvDBUser = "GAMEDEN_DB_USER"
	EnvDBName = "GAMEDEN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
