package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecoveryRouter(buf *bytes.Buffer) *gin.Engine {
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelError}))
	router := gin.New()
	router.Use(CorrelationID())
	router.Use(Recovery(log))
	return router
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("PanicBecomes500WithCorrelationID", func(t *testing.T) {
		var logBuffer bytes.Buffer
		router := newRecoveryRouter(&logBuffer)
		router.GET("/boom", func(c *gin.Context) {
			panic("points balance underflow")
		})

		correlationID := uuid.NewString()
		req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
		req.Header.Set(CorrelationIDHeader, correlationID)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

		errField, ok := body["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", errField["code"])
		assert.Equal(t, correlationID, body["correlation_id"])

		// Panic value and stack land in the log, not in the response
		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, `"msg":"Panic recovered"`)
		assert.Contains(t, logOutput, `"error":"points balance underflow"`)
		assert.Contains(t, logOutput, `"path":"/boom"`)
		assert.NotContains(t, rr.Body.String(), "underflow")
	})

	t.Run("PassesThroughWhenNoPanic", func(t *testing.T) {
		var logBuffer bytes.Buffer
		router := newRecoveryRouter(&logBuffer)
		router.GET("/healthy", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		req, _ := http.NewRequest(http.MethodGet, "/healthy", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
		assert.Empty(t, logBuffer.String())
	})
}
