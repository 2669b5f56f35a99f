package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090" validate:"required,numeric"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091" validate:"required,numeric"`
	Storage    string `yaml:"storage" env:"STORAGE" env-default:"memory" validate:"oneof=memory redis"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost" validate:"required"`
	Port string        `yaml:"port" env:"REDIS_PORT" env-default:"6379" validate:"required,numeric"`
	TTL  time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h" validate:"gte=0"`
}

// Load reads the config file at path, falling back to defaults and the
// environment when the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	err := cleanenv.ReadConfig(path, config)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
