package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// Например: BOOKING_DATABASE_PASSWORD, BOOKING_KAFKA_BROKERS
const EnvPrefix = "BOOKING"

// Драйверы хранилищ
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	SourceHTTP     = "http"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Storage  StorageConfig  `toml:"storage"`
	Spaces   SpacesConfig   `toml:"spaces"`
	Calendar CalendarConfig `toml:"calendar"`
	Mongo    MongoConfig    `toml:"mongo"`
	Kafka    KafkaConfig    `toml:"kafka"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Tracing  TracingConfig  `toml:"tracing"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN возвращает строку подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// BookingConfig настройки движка бронирований
type BookingConfig struct {
	MaxTxRetries       int `toml:"max_tx_retries" split_words:"true"`
	RetryBackoffMs     int `toml:"retry_backoff_ms" split_words:"true"`
	OverviewDays       int `toml:"overview_days" split_words:"true"`
	MaxOverviewDays    int `toml:"max_overview_days" split_words:"true"`
	LockTimeoutMs      int `toml:"lock_timeout_ms" split_words:"true"`
}

// RetryBackoff возвращает базовую задержку между повторами транзакции
func (b BookingConfig) RetryBackoff() time.Duration {
	return time.Duration(b.RetryBackoffMs) * time.Millisecond
}

// StorageConfig выбор хранилища бронирований (postgres | memory)
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// SpacesConfig источник данных о пространствах (postgres | http)
type SpacesConfig struct {
	Source  string `toml:"source"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// CalendarConfig источник расписаний доступности (postgres | mongo)
type CalendarConfig struct {
	Driver string `toml:"driver"`
}

// MongoConfig настройки MongoDB для календаря
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	Timeout    int    `toml:"timeout"` // секунды
}

// KafkaConfig настройки публикации событий бронирований
type KafkaConfig struct {
	Enabled        bool     `toml:"enabled"`
	Brokers        []string `toml:"brokers"`
	Topic          string   `toml:"topic"`
	DLQTopic       string   `toml:"dlq_topic" split_words:"true"`
	Compression    string   `toml:"compression"`
	RequiredAcks   int      `toml:"required_acks" split_words:"true"`
	MaxAttempts    int      `toml:"max_attempts" split_words:"true"`
	BatchTimeoutMs int      `toml:"batch_timeout_ms" split_words:"true"`
	PublishTimeout int      `toml:"publish_timeout" split_words:"true"` // секунды
}

// RabbitMQConfig настройки потребителя событий оплаты
type RabbitMQConfig struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	Exchange   string `toml:"exchange"`
	Queue      string `toml:"queue"`
	RoutingKey string `toml:"routing_key" split_words:"true"`
	Prefetch   int    `toml:"prefetch"`
}

// TracingConfig настройки AWS X-Ray
type TracingConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" split_words:"true"`
	DaemonAddr  string `toml:"daemon_addr" split_words:"true"`
}

// Load читает конфигурацию из TOML файла
// Затем подгружает .env рядом с файлом (если есть) и применяет переменные окружения с префиксом BOOKING
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrReadEnv, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadEnv, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefaultString(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefaultString(&c.Logs.Level, "info")
	setDefaultString(&c.Metrics.Path, "/metrics")
	setDefaultString(&c.Metrics.ServiceName, "space_booking")

	setDefault(&c.Booking.MaxTxRetries, 3)
	setDefault(&c.Booking.RetryBackoffMs, 10)
	setDefault(&c.Booking.OverviewDays, 7)
	setDefault(&c.Booking.MaxOverviewDays, 31)
	setDefault(&c.Booking.LockTimeoutMs, 2000)

	setDefaultString(&c.Storage.Driver, DriverPostgres)
	setDefaultString(&c.Spaces.Source, DriverPostgres)
	setDefault(&c.Spaces.Timeout, 5)
	setDefaultString(&c.Calendar.Driver, DriverPostgres)

	setDefaultString(&c.Mongo.Collection, "availability_schedules")
	setDefault(&c.Mongo.Timeout, 5)

	setDefaultString(&c.Kafka.Topic, "booking.events")
	setDefault(&c.Kafka.MaxAttempts, 3)
	setDefault(&c.Kafka.BatchTimeoutMs, 10)
	setDefault(&c.Kafka.PublishTimeout, 5)

	setDefaultString(&c.RabbitMQ.Exchange, "payment.exchange")
	setDefaultString(&c.RabbitMQ.Queue, "space-booking.payments")
	setDefaultString(&c.RabbitMQ.RoutingKey, "payment.succeeded")
	setDefault(&c.RabbitMQ.Prefetch, 10)

	setDefaultString(&c.Tracing.ServiceName, "space-booking")
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver must be postgres or memory, got %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Spaces.Source {
	case DriverPostgres, DriverMemory:
	case SourceHTTP:
		if c.Spaces.URL == "" {
			return fmt.Errorf("%w: spaces.url is required for http source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: spaces.source must be postgres, memory or http, got %q", ErrInvalidConfig, c.Spaces.Source)
	}

	switch c.Calendar.Driver {
	case DriverPostgres, DriverMemory:
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo.uri and mongo.database are required for mongo calendar", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: calendar.driver must be postgres, memory or mongo, got %q", ErrInvalidConfig, c.Calendar.Driver)
	}

	if c.Storage.Driver == DriverPostgres && c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka.brokers is required when kafka is enabled", ErrInvalidConfig)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}

	if c.Booking.MaxTxRetries < 0 {
		return fmt.Errorf("%w: booking.max_tx_retries must be non-negative", ErrInvalidConfig)
	}

	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setDefaultString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
