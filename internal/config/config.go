package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "CARWASH"

const (
	TransportGoChannel = "gochannel"
	TransportAMQP      = "amqp"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Mailer        MailerConfig        `toml:"mailer"`
	Notifications NotificationsConfig `toml:"notifications"`
	Redis         RedisConfig         `toml:"redis"`
	Booking       BookingConfig       `toml:"booking"`
	Jobs          JobsConfig          `toml:"jobs"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// MailerConfig настройки HTTP API почтового сервиса
type MailerConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key" envconfig:"APIKEY"`
	From    string `toml:"from"`
	Timeout int    `toml:"timeout"`

	// Circuit breaker
	MaxFailures     uint32 `toml:"max_failures" split_words:"true"`
	OpenTimeoutSecs int    `toml:"open_timeout" envconfig:"OPEN_TIMEOUT"`
}

// NotificationsConfig настройки асинхронной доставки уведомлений
type NotificationsConfig struct {
	Transport    string `toml:"transport"`
	AMQPURL      string `toml:"amqp_url" envconfig:"AMQP_URL"`
	Topic        string `toml:"topic"`
	MaxRetries   int    `toml:"max_retries" split_words:"true"`
	PoisonTopic  string `toml:"poison_topic" split_words:"true"`
	RetryBackoff int    `toml:"retry_backoff_ms" envconfig:"RETRY_BACKOFF_MS"`
}

// RedisConfig хранилище ключей идемпотентности платежей
type RedisConfig struct {
	Enabled        bool   `toml:"enabled"`
	Addr           string `toml:"addr"`
	Password       string `toml:"password"`
	DB             int    `toml:"db"`
	IdempotencyTTL int    `toml:"idempotency_ttl" split_words:"true"`
}

type BookingConfig struct {
	StrictTransitions bool `toml:"strict_transitions" split_words:"true"`
}

type JobsConfig struct {
	ExpirePendingEnabled bool   `toml:"expire_pending_enabled" split_words:"true"`
	ExpirePendingSpec    string `toml:"expire_pending_spec" split_words:"true"`
	GraceDays            int    `toml:"grace_days" split_words:"true"`
}

// Load читает конфигурацию: значения по умолчанию, затем config.toml,
// затем .env и переменные окружения с префиксом CARWASH
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "carwash",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "carwash-booking",
		},
		Mailer: MailerConfig{
			Timeout:         5,
			MaxFailures:     5,
			OpenTimeoutSecs: 30,
		},
		Notifications: NotificationsConfig{
			Transport:    TransportGoChannel,
			Topic:        "booking.notifications",
			PoisonTopic:  "booking.notifications.poison",
			MaxRetries:   3,
			RetryBackoff: 500,
		},
		Redis: RedisConfig{
			Addr:           "localhost:6379",
			IdempotencyTTL: 86400,
		},
		Booking: BookingConfig{
			StrictTransitions: true,
		},
		Jobs: JobsConfig{
			ExpirePendingEnabled: true,
			ExpirePendingSpec:    "@every 1h",
			GraceDays:            1,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server.http_port: %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("database.host and database.dbname are required")
	}
	switch c.Notifications.Transport {
	case TransportGoChannel:
	case TransportAMQP:
		if c.Notifications.AMQPURL == "" {
			return errors.New("notifications.amqp_url is required for amqp transport")
		}
	default:
		return fmt.Errorf("unknown notifications.transport: %q", c.Notifications.Transport)
	}
	if c.Notifications.Topic == "" {
		return errors.New("notifications.topic is required")
	}
	if c.Jobs.ExpirePendingEnabled && c.Jobs.ExpirePendingSpec == "" {
		return errors.New("jobs.expire_pending_spec is required when the job is enabled")
	}
	if c.Jobs.GraceDays < 0 {
		return fmt.Errorf("invalid jobs.grace_days: %d", c.Jobs.GraceDays)
	}
	return nil
}
