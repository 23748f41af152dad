package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/clinic-scheduling-service/internal/config"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/pkg/logger"
)

const (
	doctorID  = 1
	patientID = 50
)

type client struct {
	t      *testing.T
	router *mux.Router
}

func (c *client) do(method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprint(userID))
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func newMemoryApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		Storage:    config.StorageConfig{Driver: config.StorageDriverMemory},
		Scheduling: config.SchedulingConfig{Timezone: "UTC"},
		Metrics:    config.MetricsConfig{ServiceName: "test"},
	}

	a, err := New(context.Background(), cfg, logger.NewWithWriter(io.Discard, "error"))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

// nextMonday ближайший понедельник не раньше чем через неделю
func nextMonday() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func TestApp_BookingLifecycle(t *testing.T) {
	a := newMemoryApp(t)
	c := &client{t: t, router: a.Router("test")}
	date := nextMonday().Format(domain.DateFormat)
	slotsPath := fmt.Sprintf("/api/v1/doctors/%d/available-slots?date=%s", doctorID, date)

	// 1. Врач задает расписание на понедельник
	rec := c.do(http.MethodPut, fmt.Sprintf("/api/v1/doctors/%d/availability", doctorID), doctorID, map[string]interface{}{
		"days":                []string{"MONDAY"},
		"startTime":           "09:00",
		"endTime":             "12:00",
		"slotDurationMinutes": 30,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, slotsPath, 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["slots"], 6)

	// 2. Пациент записывается, второй пациент на тот же слот получает 409
	booking := map[string]interface{}{"doctorId": doctorID, "date": date, "slot": "10:00"}
	rec = c.do(http.MethodPost, "/api/v1/appointments", patientID, booking)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "PENDING", created["status"])
	id := int64(created["id"].(float64))

	rec = c.do(http.MethodPost, "/api/v1/appointments", patientID+1, booking)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "SLOT_UNAVAILABLE", decode(t, rec)["code"])

	rec = c.do(http.MethodGet, slotsPath, 0, nil)
	assert.NotContains(t, decode(t, rec)["slots"], "10:00")

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/doctors/%d/availability/check?date=%s&time=10:00", doctorID, date), 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["available"])

	// 3. Подтверждает только врач
	confirmPath := fmt.Sprintf("/api/v1/appointments/%d/confirm", id)
	rec = c.do(http.MethodPatch, confirmPath, patientID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodPatch, confirmPath, doctorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CONFIRMED", decode(t, rec)["status"])

	// 4. Посторонний не видит запись
	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/appointments/%d", id), 99, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// 5. Отмена освобождает слот, повторная отмена - недопустимый переход
	cancelPath := fmt.Sprintf("/api/v1/appointments/%d/cancel", id)
	rec = c.do(http.MethodPatch, cancelPath, patientID, map[string]string{"cancellationReason": "заболел"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "CANCELLED", decode(t, rec)["status"])

	rec = c.do(http.MethodPatch, cancelPath, patientID, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_TRANSITION", decode(t, rec)["code"])

	rec = c.do(http.MethodGet, slotsPath, 0, nil)
	assert.Contains(t, decode(t, rec)["slots"], "10:00")

	// 6. История и списки
	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/appointments/%d/history", id), doctorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["events"], 3)

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/doctors/%d/appointments", doctorID), doctorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["total"])

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/doctors/%d/appointments", doctorID), doctorID+1, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/appointments?status=CONFIRMED", patientID), patientID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["total"])

	// 7. Снятие дня из расписания
	rec = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/doctors/%d/availability/monday", doctorID), doctorID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/doctors/%d/availability/days", doctorID), 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["days"])

	rec = c.do(http.MethodGet, slotsPath, 0, nil)
	assert.Empty(t, decode(t, rec)["slots"])
}

func TestApp_ProtectedRoutesRequireUser(t *testing.T) {
	c := &client{t: t, router: newMemoryApp(t).Router("test")}

	rec := c.do(http.MethodPost, "/api/v1/appointments", 0, map[string]interface{}{"doctorId": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodGet, "/api/v1/doctors/1/available-slots?date=2030-01-07", 0, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_Health(t *testing.T) {
	c := &client{t: t, router: newMemoryApp(t).Router("1.0.0")}

	rec := c.do(http.MethodGet, "/health/live", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.0.0", decode(t, rec)["version"])

	rec = c.do(http.MethodGet, "/health/ready", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]interface{}{"postgres": "disabled", "redis": "disabled"}, body["dependencies"])
}
