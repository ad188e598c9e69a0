package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"

	EnvironmentDevelopment = "development"
	EnvironmentTest        = "test"
	EnvironmentProduction  = "production"
)

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/bookchain.yaml"
	environmentENV    = "ENVIRONMENT"
	portENV           = "PORT"
	serverPortENV     = "SERVER_PORT"
)

type Config struct {
	AppTitle                  string        `koanf:"app_title" default:"Bookchain API"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseDriver            string        `koanf:"database_driver" default:"sqlite"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries" default:"5"`
	DatabaseURL               string        `koanf:"database_url"`
	Environment               string        `koanf:"environment" default:"development"`
	ServerHost                string        `koanf:"server_host" default:"0.0.0.0"`
	ServerPort                int           `koanf:"server_port" default:"3000"`
}

// New builds the config from struct defaults, the profile selected by
// ENVIRONMENT, the optional YAML file at CONFIG_FILE, and finally environment
// variables, each layer overriding the previous one.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if environment := os.Getenv(environmentENV); environment != "" {
		cfg.Environment = environment
	}
	switch cfg.Environment {
	case EnvironmentDevelopment:
		loadDevelopmentConfig(cfg)
	case EnvironmentTest:
		loadTestConfig(cfg)
	case EnvironmentProduction:
	default:
		return nil, errors.Errorf("unknown environment %q", cfg.Environment)
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	keys := configKeys()
	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := keys[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.WithStack(err)
	}

	// PORT is the conventional override used by hosting platforms. SERVER_PORT
	// still wins when both are set.
	if os.Getenv(serverPortENV) == "" {
		if port, err := strconv.Atoi(os.Getenv(portENV)); err == nil {
			cfg.ServerPort = port
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns an in-memory SQLite config that never touches the
// environment or the filesystem.
func NewForTest() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.Environment = EnvironmentTest
	loadTestConfig(cfg)
	return cfg
}

func loadDevelopmentConfig(cfg *Config) {
	cfg.DatabaseDebug = true
	cfg.DatabaseFilePath = "./tmp/data.sqlite"
	cfg.ServerHost = "127.0.0.1"
}

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
}

func (cfg *Config) validate() error {
	var missing []string

	switch cfg.DatabaseDriver {
	case DatabaseDriverSQLite:
		if cfg.DatabaseFilePath == "" {
			missing = append(missing, "DatabaseFilePath")
		}
	case DatabaseDriverPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DatabaseURL")
		}
	default:
		return errors.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if len(missing) == 0 {
		return nil
	}

	descriptions := make([]string, 0, len(missing))
	for _, field := range missing {
		key := toSnakeCase(field)
		descriptions = append(descriptions, strings.ToUpper(key)+" (env) or "+key+" (file)")
	}
	return errors.Errorf("missing required config: %s", strings.Join(descriptions, ", "))
}

// configKeys collects the koanf tags of Config so that only relevant
// environment variables are loaded.
func configKeys() map[string]struct{} {
	keys := map[string]struct{}{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			keys[tag] = struct{}{}
		}
	}
	return keys
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
