package app

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	portEnvName = "PORT"

	defaultConfigPath = "config.yaml"
)

// Config is the application specific configuration.
// It is passed to the App.Init function, and is optional.
type Config map[string]interface{}

// BaseConfig contains the base configuration for services, as well as the
// application itself.
type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`

	AppName string `mapstructure:"app_name"`

	ListenAddress      string `mapstructure:"listen_address"`
	DebugListenAddress string `mapstructure:"debug_listen_address"`

	// TLSCertificate is an optional URL that specifies a TLS certificate to be
	// used for the HTTP server. Only the file scheme is built in. If no scheme
	// is specified, file is used.
	TLSCertificate string `mapstructure:"tls_certificate"`
	// TLSKey is an optional URL that specifies a TLS Private Key to be used for
	// the HTTP server.
	TLSKey string `mapstructure:"tls_private_key"`

	ShutdownGracePeriod time.Duration `mapstructure:"shutdown_grace_period"`

	EnablePprof   bool `mapstructure:"enable_pprof"`
	EnableExpvar  bool `mapstructure:"enable_expvar"`
	EnableMetrics bool `mapstructure:"enable_metrics"`

	// Ballast for improving Go GC performance. Note that capacity will be
	// limited to 50% of the total memory.
	// https://blog.twitch.tv/en/2019/04/10/go-memory-ballast-how-i-learnt-to-stop-worrying-and-love-the-heap/
	EnableBallast   bool    `mapstructure:"enable_ballast"`
	BallastCapacity float32 `mapstructure:"ballast_capacity"`

	// Periodically terminate the application when there's a memory leak
	EnableMemoryLeakCron   bool   `mapstructure:"enable_memory_leak_cron"`
	MemoryLeakCronSchedule string `mapstructure:"memory_leak_cron_schedule"`

	NewRelicLicenseKey string `mapstructure:"new_relic_license_key"`

	// Arbitrary configuration that the service can define / implement.
	//
	// Users should use mapstructure.Decode for AppConfig.
	AppConfig Config `mapstructure:"app"`
}

var defaultConfig = BaseConfig{
	LogLevel: "info",

	AppName: "solana-instruction-api",

	ListenAddress:      ":3000",
	DebugListenAddress: "localhost:8123",

	ShutdownGracePeriod: 30 * time.Second,

	EnablePprof:   true,
	EnableExpvar:  true,
	EnableMetrics: true,

	EnableBallast:   false,
	BallastCapacity: 0.333,

	EnableMemoryLeakCron:   false,
	MemoryLeakCronSchedule: "0 5 * * *",
}

var envBindings = map[string]string{
	"log_level": "LOG_LEVEL",

	"app_name": "APP_NAME",

	"listen_address":       "LISTEN_ADDRESS",
	"debug_listen_address": "DEBUG_LISTEN_ADDRESS",

	"tls_certificate": "TLS_CERTIFICATE",
	"tls_private_key": "TLS_PRIVATE_KEY",

	"shutdown_grace_period": "SHUTDOWN_GRACE_PERIOD",

	"enable_pprof":   "ENABLE_PPROF",
	"enable_expvar":  "ENABLE_EXPVAR",
	"enable_metrics": "ENABLE_METRICS",

	"enable_ballast":   "ENABLE_BALLAST",
	"ballast_capacity": "BALLAST_CAPACITY",

	"enable_memory_leak_cron":   "ENABLE_MEMORY_LEAK_CRON",
	"memory_leak_cron_schedule": "MEMORY_LEAK_CRON_SCHEDULE",

	"new_relic_license_key": "NEW_RELIC_LICENSE_KEY",
}

// LoadConfig reads the base config from the file at path, when it exists, and
// the environment. Variables from a .env file in the working directory are
// loaded first without overriding the real environment. A PORT variable
// overrides the listen address and binds on all interfaces.
func LoadConfig(path string) (BaseConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return BaseConfig{}, errors.Wrap(err, "failed to load .env file")
	}

	v := viper.New()
	for key, envName := range envBindings {
		if err := v.BindEnv(key, envName); err != nil {
			return BaseConfig{}, errors.Wrapf(err, "failed to bind %s", envName)
		}
	}

	// viper.ReadInConfig only returns ConfigFileNotFoundError if it has to search
	// for a default config file because one hasn't been explicitly set. That is,
	// if we explicitly set a config file, and it does not exist, viper will not
	// return a ConfigFileNotFoundError, so we check ourselves.
	if len(path) > 0 {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return BaseConfig{}, errors.Wrap(err, "failed to load config")
			}
		} else if !os.IsNotExist(err) {
			return BaseConfig{}, errors.Wrap(err, "failed to check if config exists")
		}
	}

	config := defaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return BaseConfig{}, errors.Wrap(err, "failed to unmarshal config")
	}

	if port, ok := os.LookupEnv(portEnvName); ok && len(port) > 0 {
		config.ListenAddress = "0.0.0.0:" + port
	}

	if len(config.AppName) == 0 {
		return BaseConfig{}, errors.New("must specify an application name")
	}
	if len(config.ListenAddress) == 0 {
		return BaseConfig{}, errors.New("must specify a listen address")
	}
	if len(config.TLSCertificate) > 0 && len(config.TLSKey) == 0 {
		return BaseConfig{}, errors.New("tls key must be provided if certificate is specified")
	}

	return config, nil
}
