package api

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/clinic-scheduling-service/internal/api/handlers"
)

// Статусы проверки готовности
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusError    = "error"
	statusDown     = "down"
	statusDisabled = "disabled"
)

const (
	readinessTimeout  = 2 * time.Second
	dependencyTimeout = time.Second
)

// DBPinger проверка соединения с БД
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger проверка соединения с Redis
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// HealthHandler liveness и readiness проверки
// db == nil означает хранилище в памяти, redis == nil - локальные блокировки
type HealthHandler struct {
	db      DBPinger
	redis   RedisPinger
	version string
}

func NewHealthHandler(db DBPinger, redis RedisPinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redis,
		version: version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

// Liveness GET /health/live
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, LivenessResponse{
		Status:  statusOK,
		Version: h.version,
	})
}

// Readiness GET /health/ready
// Недоступная БД дает 503, недоступный Redis только понижает статус до degraded
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]string, 2)
	status := statusOK

	// Проверяем Postgres
	if h.db == nil {
		deps["postgres"] = statusDisabled
	} else if err := pingWithTimeout(ctx, h.db.PingContext); err != nil {
		deps["postgres"] = statusDown
		status = statusError
	} else {
		deps["postgres"] = statusOK
	}

	// Проверяем Redis
	if h.redis == nil {
		deps["redis"] = statusDisabled
	} else if err := pingWithTimeout(ctx, func(ctx context.Context) error { return h.redis.Ping(ctx).Err() }); err != nil {
		deps["redis"] = statusDown
		if status == statusOK {
			status = statusDegraded
		}
	} else {
		deps["redis"] = statusOK
	}

	httpStatus := http.StatusOK
	if status == statusError {
		httpStatus = http.StatusServiceUnavailable
	}

	handlers.RespondJSON(w, httpStatus, ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Dependencies: deps,
	})
}

func pingWithTimeout(ctx context.Context, ping func(ctx context.Context) error) error {
	pingCtx, cancel := context.WithTimeout(ctx, dependencyTimeout)
	defer cancel()
	return ping(pingCtx)
}
