package log

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := NewContext(context.Background(), LevelInfo, OutputJSON, buf)
	ctx = With(ctx, "assignment", "AM-1")

	Debug(ctx, "hidden")
	Info(ctx, "issued", "status", "active")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "issued", line["msg"])
	assert.Equal(t, "AM-1", line["assignment"])
	assert.Equal(t, "active", line["status"])
}

func TestChiMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := NewContext(context.Background(), LevelDebug, OutputJSON, buf)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID, ChiMiddleware(ctx))
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		Debug(r.Context(), "inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var req map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &req))
	assert.Equal(t, "http req", req["msg"])
	assert.Equal(t, float64(http.StatusTeapot), req["status"])
	assert.NotEmpty(t, req["req-id"])
}
