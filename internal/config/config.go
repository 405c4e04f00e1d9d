package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	LogLevel string `env:"LOG_LEVEL"`

	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	RabbitMQ RabbitMQConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:""`
	Port            int           `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type GRPCConfig struct {
	Enabled bool `env:"GRPC_ENABLED" env-default:"true"`
	Port    int  `env:"GRPC_PORT" env-default:"9090"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" env-default:"postgres"`
}

type PostgresConfig struct {
	Host           string        `env:"DB_HOST" env-default:"localhost"`
	Port           int           `env:"DB_PORT" env-default:"5432"`
	User           string        `env:"DB_USER" env-default:"postgres"`
	Password       string        `env:"DB_PASSWORD"`
	DBName         string        `env:"DB_NAME" env-default:"tasks"`
	SSLMode        string        `env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns       int32         `env:"DB_MAX_CONNS" env-default:"20"`
	MinConns       int32         `env:"DB_MIN_CONNS" env-default:"2"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"5s"`
	Migrate        bool          `env:"DB_MIGRATE" env-default:"true"`
}

// URL is the connection string shared by pgxpool and golang-migrate.
func (c PostgresConfig) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s?sslmode=%s",
		c.User, c.Password, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.DBName, c.SSLMode)
}

type SQLiteConfig struct {
	DSN string `env:"SQLITE_DSN" env-default:"tasks.db"`
}

type RabbitMQConfig struct {
	Enabled       bool   `env:"RABBITMQ_ENABLED" env-default:"false"`
	User          string `env:"RABBITMQ_USER" env-default:"guest"`
	Password      string `env:"RABBITMQ_PASSWORD" env-default:"guest"`
	Host          string `env:"RABBITMQ_HOST" env-default:"localhost"`
	Port          int    `env:"RABBITMQ_PORT" env-default:"5672"`
	Queue         string `env:"RABBITMQ_QUEUE" env-default:"task_events"`
	WorkerEnabled bool   `env:"EVENT_WORKER_ENABLED" env-default:"false"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s/", c.User, c.Password, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)))
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q: must be %s, %s or %s", c.Env, EnvLocal, EnvDev, EnvProd)
	}

	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q: must be %s or %s", c.Storage.Driver, DriverPostgres, DriverSQLite)
	}

	if err := validPort("HTTP_PORT", c.HTTP.Port); err != nil {
		return err
	}
	if c.GRPC.Enabled {
		if err := validPort("GRPC_PORT", c.GRPC.Port); err != nil {
			return err
		}
		if c.GRPC.Port == c.HTTP.Port {
			return fmt.Errorf("GRPC_PORT and HTTP_PORT must differ, both are %d", c.HTTP.Port)
		}
	}

	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 || c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("http timeouts must be positive")
	}

	if c.Storage.Driver == DriverPostgres {
		if c.Postgres.MaxConns < 1 || c.Postgres.MinConns < 0 || c.Postgres.MinConns > c.Postgres.MaxConns {
			return fmt.Errorf("invalid pool size: min %d, max %d", c.Postgres.MinConns, c.Postgres.MaxConns)
		}
	}
	if c.Storage.Driver == DriverSQLite && c.SQLite.DSN == "" {
		return fmt.Errorf("SQLITE_DSN cannot be empty when storage driver is sqlite")
	}

	if c.RabbitMQ.WorkerEnabled && !c.RabbitMQ.Enabled {
		return fmt.Errorf("EVENT_WORKER_ENABLED requires RABBITMQ_ENABLED")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Queue == "" {
		return fmt.Errorf("RABBITMQ_QUEUE cannot be empty when rabbitmq is enabled")
	}

	return nil
}

func validPort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s %d: must be between 1 and 65535", name, port)
	}
	return nil
}
