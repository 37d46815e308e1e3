// Package config предоставляет структуры и функции для загрузки конфига сервиса.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Upload     `yaml:"upload"`
	RabbitMQ   `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeout" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Upload структура для настройки приёма файлов заказов
type Upload struct {
	MaxBytes      int64   `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES" env-default:"10485760"`
	RatePerSecond float64 `yaml:"rate_per_second" env-default:"1"`
	Burst         int     `yaml:"burst" env-default:"3"`
	Charset       string  `yaml:"charset" env-default:"iso-8859-1"`
}

// RabbitMQ структура для публикации событий о загрузках. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"orders"`
	Queue      string        `yaml:"queue"`
	RoutingKey string        `yaml:"routing_key" env-default:"orders.loaded"`
	Retries    int           `yaml:"retries" env-default:"3"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// MustLoad загружает конфиг из файла CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла path, дополняя его переменными окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file: %s - does not exist", op, path)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Upload:\n"+
			"  MaxBytes: %d\n"+
			"  RatePerSecond: %g\n"+
			"  Burst: %d\n"+
			"  Charset: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n"+
			"  RoutingKey: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.MaxBytes,
		c.RatePerSecond,
		c.Burst,
		c.Charset,
		c.RabbitMQ.URL != "",
		c.Exchange,
		c.RoutingKey,
	)
}
