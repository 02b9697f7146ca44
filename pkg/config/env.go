package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "luminique"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv           = "LUMINIQUE_APP_ENV"
	EnvPort             = "LUMINIQUE_APP_PORT"
	EnvDBDSN            = "LUMINIQUE_DB_DSN"
	EnvDBHost           = "LUMINIQUE_DB_HOST"
	EnvDBUser           = "LUMINIQUE_DB_USER"
	EnvDBName           = "LUMINIQUE_DB_NAME"
	EnvRedisURL         = "LUMINIQUE_REDIS_URL"
	EnvCurrencySubunits = "LUMINIQUE_CURRENCY_SUBUNITS"
	EnvCurrencyTaxRate  = "LUMINIQUE_CURRENCY_TAX_RATE_PERCENT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
