package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TASKMANAGER"

type Config struct {
	Port   string       `mapstructure:"port"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Static StaticConfig `mapstructure:"static"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Server ServerConfig `mapstructure:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Driver       string        `mapstructure:"driver"` // sqlite | mysql
	DSN          string        `mapstructure:"dsn"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type ServerConfig struct {
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "7070")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "app.db")
	v.SetDefault("db.query_timeout", 5*time.Second)
	v.SetDefault("static.dir", "public")
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "task-activity")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Load reads configs/config.yml, or the file at path when given, and applies
// TASKMANAGER_* environment overrides. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported db.driver %q: use sqlite or mysql", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn must not be empty")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers must not be empty when kafka is enabled")
	}
	return nil
}
