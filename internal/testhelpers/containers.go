// Package testhelpers поднимает PostgreSQL и Redis в контейнерах для интеграционных тестов
//
// Требуется запущенный Docker. Тесты, использующие пакет, собираются с тегом integration:
//
//	go test -tags integration ./...
package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/migrations"
	"github.com/m04kA/clinic-scheduling-service/pkg/dbmetrics"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"

	postgresUser     = "clinic"
	postgresPassword = "clinic"
	postgresDB       = "clinic_test"

	startupTimeout = 60 * time.Second
)

// SetupPostgres запускает PostgreSQL, применяет миграции и возвращает обертку над пулом
// Контейнер останавливается через t.Cleanup
func SetupPostgres(t *testing.T) *dbmetrics.DB {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// Сообщение печатается дважды: после initdb и после рестарта
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(startupTimeout),
	}

	container := startContainer(t, ctx, req)

	host, port := endpoint(t, ctx, container, "5432")
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, postgresUser, postgresPassword, postgresDB)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to open postgres connection: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	db := dbmetrics.Wrap(sqlDB, nil, "clinic-scheduling-test")

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		t.Fatalf("Failed to ping postgres: %v", err)
	}

	if err := migrations.Apply(ctx, db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	return db
}

// TruncateAll очищает таблицы между тестами
func TruncateAll(t *testing.T, db *dbmetrics.DB) {
	t.Helper()

	_, err := db.ExecContext(context.Background(),
		"TRUNCATE appointment_events, appointments, availability_templates RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SetupRedis запускает Redis и возвращает подключенный клиент
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(startupTimeout),
	}

	container := startContainer(t, ctx, req)

	host, port := endpoint(t, ctx, container, "6379")

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to ping redis: %v", err)
	}

	return client
}

func startContainer(t *testing.T, ctx context.Context, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start %s container: %v", req.Image, err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate %s container: %v", req.Image, err)
		}
	})

	t.Logf("%s container started", req.Image)

	return container
}

func endpoint(t *testing.T, ctx context.Context, container testcontainers.Container, port string) (string, int) {
	t.Helper()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	mapped, err := container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		t.Fatalf("Failed to get mapped port %s: %v", port, err)
	}

	return host, mapped.Int()
}
