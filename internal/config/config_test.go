package config

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestRead_Defaults(t *testing.T) {
	cfg, err := NewEnvReader().Read()

	assert.NilError(t, err)
	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 9090, cfg.GRPC.Port)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "task_events", cfg.RabbitMQ.Queue)
	assert.Assert(t, !cfg.RabbitMQ.Enabled)
}

func TestRead_FromEnv(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("STORAGE_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_DSN", "file::memory:")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("EVENT_WORKER_ENABLED", "true")

	cfg, err := NewEnvReader().Read()

	assert.NilError(t, err)
	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":8081", cfg.HTTP.Addr())
	assert.Equal(t, "file::memory:", cfg.SQLite.DSN)
	assert.Assert(t, cfg.RabbitMQ.WorkerEnabled)
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"unknown env", map[string]string{"ENV": "staging"}, "unknown env"},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mysql"}, "unknown storage driver"},
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "invalid HTTP_PORT"},
		{"same ports", map[string]string{"HTTP_PORT": "9090"}, "must differ"},
		{"worker without rabbit", map[string]string{"EVENT_WORKER_ENABLED": "true"}, "requires RABBITMQ_ENABLED"},
		{"pool bounds", map[string]string{"DB_MIN_CONNS": "30"}, "invalid pool size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewEnvReader().Read()
			assert.Assert(t, is.ErrorContains(err, tt.msg))
		})
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "tasks", SSLMode: "disable"}
	assert.Equal(t, "postgresql://u:p@db:5432/tasks?sslmode=disable", cfg.URL())
}
