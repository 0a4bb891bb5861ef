// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config.yml"
	DefaultEnvFile    = ".env"
	DefaultStorePath  = "tasks-database.json"

	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"

	envPrefix = "TASKS"
)

type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

type StoreConfig struct {
	Driver      string        `yaml:"driver"` // "json", "sqlite" или "memory"
	Path        string        `yaml:"path"`
	Lock        bool          `yaml:"lock"`
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

type LoggingConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:      DriverJSON,
			Path:        DefaultStorePath,
			Lock:        true,
			LockTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Development: false,
			Level:       "warn",
		},
	}
}

// RegisterFlags объявляет флаги, которые переопределяют конфиг.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", DefaultConfigPath, "путь к config.yml")
	flags.String("store", "", "путь к хранилищу задач")
	flags.String("driver", "", "драйвер хранилища: json, sqlite или memory")
	flags.Bool("dev", false, "логирование в режиме разработки")
	flags.String("log-level", "", "уровень логирования")
}

// Load собирает конфиг: значения по умолчанию, config.yml, .env и окружение,
// флаги. Каждый следующий слой перекрывает предыдущий.
func Load(flags *pflag.FlagSet) (*Config, error) {
	return load(flags, DefaultEnvFile)
}

func load(flags *pflag.FlagSet, envFile string) (*Config, error) {
	cfg := Default()

	path, explicit := DefaultConfigPath, false
	if f := flags.Lookup("config"); f != nil {
		path, explicit = f.Value.String(), f.Changed
	}
	if err := readFile(path, explicit, cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"store.path":          "store",
		"store.driver":        "driver",
		"logging.development": "dev",
		"logging.level":       "log-level",
	}
	for key, name := range bindings {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("привязка флага %s: %w", name, err)
			}
		}
	}

	if err := override(v, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string, explicit bool, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}
	return nil
}

func override(v *viper.Viper, cfg *Config) error {
	if v.IsSet("store.path") {
		cfg.Store.Path = v.GetString("store.path")
	}
	if v.IsSet("store.driver") {
		cfg.Store.Driver = v.GetString("store.driver")
	}
	if v.IsSet("store.lock") {
		lock, err := strconv.ParseBool(v.GetString("store.lock"))
		if err != nil {
			return fmt.Errorf("store.lock: %w", err)
		}
		cfg.Store.Lock = lock
	}
	if v.IsSet("store.lock_timeout") {
		timeout, err := time.ParseDuration(v.GetString("store.lock_timeout"))
		if err != nil {
			return fmt.Errorf("store.lock_timeout: %w", err)
		}
		cfg.Store.LockTimeout = timeout
	}
	if v.IsSet("logging.development") {
		dev, err := strconv.ParseBool(v.GetString("logging.development"))
		if err != nil {
			return fmt.Errorf("logging.development: %w", err)
		}
		cfg.Logging.Development = dev
	}
	if v.IsSet("logging.level") {
		cfg.Logging.Level = v.GetString("logging.level")
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverJSON, DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path не может быть пустым для драйвера %s", c.Store.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("неизвестный драйвер хранилища %q", c.Store.Driver)
	}

	if c.Store.LockTimeout < 0 {
		return fmt.Errorf("store.lock_timeout не может быть отрицательным: %s", c.Store.LockTimeout)
	}

	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	return nil
}
