package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"medsumm/internal/http/middleware"
)

func TestNew_MiddlewareChain(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reg := prometheus.NewRegistry()

	app, err := New(Options{Name: "test", BodyLimit: 1024}, zap.New(core), reg)
	require.NoError(t, err)

	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "missing") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 2, logs.FilterMessage("http_request").Len())

	expected := `
		# HELP http_requests_total Total number of HTTP requests processed.
		# TYPE http_requests_total counter
		http_requests_total{method="GET",path="/boom",status="404"} 1
		http_requests_total{method="GET",path="/ping",status="200"} 1
	`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))
}

func TestNew_RecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app, err := New(Options{}, zap.New(core), prometheus.NewRegistry())
	require.NoError(t, err)
	app.Get("/panic", func(c *fiber.Ctx) error { panic("corrupt object table") })
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"].(map[string]any)["message"], "corrupt object table")

	// The server keeps serving after the panic.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotZero(t, logs.FilterLevelExact(zap.ErrorLevel).Len())
}

func TestNew_BodyLimit(t *testing.T) {
	app, err := New(Options{BodyLimit: 8}, zap.NewNop(), prometheus.NewRegistry())
	require.NoError(t, err)
	app.Post("/echo", func(c *fiber.Ctx) error { return c.Send(c.Body()) })

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("this body is too long")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(Options{}, zap.NewNop(), reg)
	require.NoError(t, err)

	_, err = New(Options{}, zap.NewNop(), reg)
	assert.Error(t, err)
}

func TestNewRegistry(t *testing.T) {
	families, err := NewRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
