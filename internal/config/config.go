package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type CacheDriver string

const (
	CacheDriverLRU   CacheDriver = "lru"
	CacheDriverRedis CacheDriver = "redis"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"UTC"`
	}

	HTTP struct {
		Port            string        `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host            string        `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}

	ClinicAPI struct {
		URL      string        `env:"CLINIC_API_URL"`
		Username string        `env:"CLINIC_API_USERNAME"`
		Password string        `env:"CLINIC_API_PASSWORD"`
		Timeout  time.Duration `env:"CLINIC_API_TIMEOUT" envDefault:"10s"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"slot_planner:slot_planner"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled  bool     `env:"RABBITMQ_ENABLED"`
		URL      string   `env:"RABBITMQ_URL"`
		Queue    string   `env:"RABBITMQ_QUEUE" envDefault:"slot-planner.bookings"`
		Exchange string   `env:"RABBITMQ_EXCHANGE" envDefault:"clinic.events"`
		Binds    []string `env:"RABBITMQ_BINDS" envSeparator:"," envDefault:"*.slot-planner.booking.*.*,*.slot-planner._all_.*.*"`
	}

	Cache struct {
		Enabled       bool          `env:"CACHE_ENABLED"`
		Driver        CacheDriver   `env:"CACHE_DRIVER" envDefault:"lru"`
		BookingsSize  int           `env:"CACHE_BOOKINGS_SIZE" envDefault:"1000"`
		TTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
		RedisAddr     string        `env:"CACHE_REDIS_ADDR" envDefault:"localhost:6379"`
		RedisPassword string        `env:"CACHE_REDIS_PASSWORD"`
		RedisDB       int           `env:"CACHE_REDIS_DB"`
	}

	Slots struct {
		DefaultHorizonDays int `env:"SLOTS_DEFAULT_HORIZON_DAYS" envDefault:"30"`
		MaxHorizonDays     int `env:"SLOTS_MAX_HORIZON_DAYS" envDefault:"90"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения и драйвера кэша к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Cache.Driver = CacheDriver(strings.ToLower(string(cfg.Cache.Driver)))

	cfg.Auth.BasicClients = parseBasicClients(cfg.Auth.BasicClientsString)

	// Без событий RabbitMQ кэш записей нечем инвалидировать, поэтому выключаем
	// Без адреса бэкенда кэшировать нечего
	if !cfg.RabbitMQ.Enabled || cfg.ClinicAPI.URL == "" {
		cfg.Cache.Enabled = false
	}

	if cfg.Slots.MaxHorizonDays < 1 {
		cfg.Slots.MaxHorizonDays = 1
	}
	if cfg.Slots.DefaultHorizonDays < 1 || cfg.Slots.DefaultHorizonDays > cfg.Slots.MaxHorizonDays {
		cfg.Slots.DefaultHorizonDays = cfg.Slots.MaxHorizonDays
	}

	return cfg, nil
}

// Разделение клиентов вида user:pass,user2:pass2
func parseBasicClients(raw string) []ConfigBasicClient {
	clients := []ConfigBasicClient{}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" {
			clients = append(clients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}
	return clients
}

// HorizonDays returns the recurrence horizon for a request, falling back to
// the default and capped at the configured maximum.
func (c *Config) HorizonDays(requested int) int {
	if requested <= 0 {
		return c.Slots.DefaultHorizonDays
	}
	if requested > c.Slots.MaxHorizonDays {
		return c.Slots.MaxHorizonDays
	}
	return requested
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
