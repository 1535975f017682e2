package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoggerRecordsRequestFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	engine := gin.New()
	engine.Use(RequestID(), Logger(logger))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	requestID := rec.Header().Get("X-Request-Id")
	require.NotEmpty(t, requestID)

	line := buf.String()
	require.Contains(t, line, `"message":"http request"`)
	require.Contains(t, line, `"path":"/ping"`)
	require.Contains(t, line, `"status":200`)
	require.Contains(t, line, `"bytes":4`)
	require.Contains(t, line, requestID)
}

func TestRecoveryLogsPanicPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	engine := gin.New()
	engine.Use(RequestID(), Recovery(logger))
	engine.GET("/boom", func(c *gin.Context) {
		panic("proof store offline")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	line := buf.String()
	require.Contains(t, line, `"message":"panic recovered"`)
	require.Contains(t, line, `"path":"/boom"`)
	require.Contains(t, line, "proof store offline")
}
