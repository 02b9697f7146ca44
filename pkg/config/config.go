package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Currency     CurrencyConfig
	Cache        CacheConfig
	FeatureFlags FeatureFlagsConfig
	CSVImport    CSVImportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Currency.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUMINIQUE_APP_ENV" required:"true"`
	Port         string `envconfig:"LUMINIQUE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUMINIQUE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUMINIQUE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUMINIQUE_DB_DSN"`
	Driver string `envconfig:"LUMINIQUE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUMINIQUE_DB_HOST"`
	LegacyPort     int    `envconfig:"LUMINIQUE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUMINIQUE_DB_USER"`
	LegacyPassword string `envconfig:"LUMINIQUE_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUMINIQUE_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUMINIQUE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUMINIQUE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUMINIQUE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUMINIQUE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUMINIQUE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUMINIQUE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUMINIQUE_REDIS_ADDR"`
	Password     string        `envconfig:"LUMINIQUE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUMINIQUE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUMINIQUE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUMINIQUE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUMINIQUE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUMINIQUE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUMINIQUE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CurrencyConfig is the process-wide pricing currency. It is read once at boot
// and never mutated afterwards; every stored amount is in the smallest unit.
type CurrencyConfig struct {
	Code           string `envconfig:"LUMINIQUE_CURRENCY_CODE" default:"INR"`
	Locale         string `envconfig:"LUMINIQUE_CURRENCY_LOCALE" default:"en-IN"`
	Subunits       int    `envconfig:"LUMINIQUE_CURRENCY_SUBUNITS" default:"100"`
	IncludeTax     bool   `envconfig:"LUMINIQUE_CURRENCY_INCLUDE_TAX" default:"true"`
	TaxRatePercent int    `envconfig:"LUMINIQUE_CURRENCY_TAX_RATE_PERCENT" default:"3"`
}

func (c CurrencyConfig) validate() error {
	if c.Subunits <= 0 {
		return fmt.Errorf("%s must be positive", EnvCurrencySubunits)
	}
	if c.TaxRatePercent < 0 {
		return fmt.Errorf("%s cannot be negative", EnvCurrencyTaxRate)
	}
	return nil
}

type CacheConfig struct {
	MasterDataTTL time.Duration `envconfig:"LUMINIQUE_CACHE_MASTER_DATA_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LUMINIQUE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LUMINIQUE_AUTO_MIGRATE" default:"false"`
}

type CSVImportConfig struct {
	MaxRows int `envconfig:"LUMINIQUE_CSV_IMPORT_MAX_ROWS" default:"5000"`
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
