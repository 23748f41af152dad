package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_Body(t *testing.T) {
	tests := []struct {
		name       string
		respond    func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(w http.ResponseWriter) { RespondBadRequest(w, "x") }, http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid template", func(w http.ResponseWriter) { RespondInvalidTemplate(w, "x") }, http.StatusBadRequest, "INVALID_TEMPLATE"},
		{"forbidden", func(w http.ResponseWriter) { RespondForbidden(w, "x") }, http.StatusForbidden, "ACCESS_DENIED"},
		{"not found", func(w http.ResponseWriter) { RespondNotFound(w, "x") }, http.StatusNotFound, "NOT_FOUND"},
		{"slot", func(w http.ResponseWriter) { RespondSlotUnavailable(w, "x") }, http.StatusConflict, "SLOT_UNAVAILABLE"},
		{"transition", func(w http.ResponseWriter) { RespondInvalidTransition(w, "x") }, http.StatusConflict, "INVALID_TRANSITION"},
		{"storage", func(w http.ResponseWriter) { RespondServiceUnavailable(w, "x") }, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
		{"internal", func(w http.ResponseWriter) { RespondInternalError(w) }, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRespondJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "a", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "0", "-3"} {
		r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		_, err = PathInt64(r, "id")
		assert.Error(t, err, raw)
	}
}
