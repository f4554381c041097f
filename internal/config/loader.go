package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
)

const configName = "keys-service"

type LoadOption func(v *viper.Viper)

// WithEnvOverride makes environment variables with the given prefix override
// file values, e.g. API_SERVER_DATABASE_HOST for database.host.
func WithEnvOverride(prefix string) LoadOption {
	return func(v *viper.Viper) {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		v.AllowEmptyEnv(true)
	}
}

// WithConfigFile loads an explicit config file instead of the search paths.
func WithConfigFile(path string) LoadOption {
	return func(v *viper.Viper) {
		v.SetConfigFile(path)
	}
}

// LoadConfig reads the YAML configuration, applies defaults and validates
// the result. A missing config file is not an error; defaults and
// environment overrides still apply.
func LoadConfig(opts ...LoadOption) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/onecore-keys")

	for _, opt := range opts {
		opt(v)
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errs.Wrapf(err, "failed reading configuration")
		}
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, errs.Wrapf(err, "failed unmarshalling configuration")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.name", "onecore-keys")
	v.SetDefault("application.environment", "development")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "onecore_keys")
	v.SetDefault("database.user", "postgres")

	v.SetDefault("http.address", ":8080")
	v.SetDefault("http.shutdownTimeout", 5*time.Second)

	v.SetDefault("scheduler.taskQueue.host", "localhost")
	v.SetDefault("scheduler.taskQueue.port", "6379")

	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.bucket", "keys-documents")

	v.SetDefault("services.contacts.timeout", 10*time.Second)
	v.SetDefault("services.leasing.timeout", 10*time.Second)

	v.SetDefault("loans.reminderAfter", 30*24*time.Hour)
	v.SetDefault("receipts.purgeUnsignedAfter", 90*24*time.Hour)
	v.SetDefault("events.expireRequestedAfter", 60*24*time.Hour)
}
