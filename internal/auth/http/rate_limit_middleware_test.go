package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(rps, burst, slog.New(slog.DiscardHandler)))
	router.GET("/limited", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func doRequest(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = remoteAddr

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests within burst", func(t *testing.T) {
		router := setupRateLimitedRouter(1, 3)

		for i := 0; i < 3; i++ {
			w := doRequest(router, "10.0.0.1:1234")
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("rejects requests beyond burst", func(t *testing.T) {
		router := setupRateLimitedRouter(0.001, 1)

		w := doRequest(router, "10.0.0.2:1234")
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(router, "10.0.0.2:1234")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	})

	t.Run("limits are per client ip", func(t *testing.T) {
		router := setupRateLimitedRouter(0.001, 1)

		w := doRequest(router, "10.0.0.3:1234")
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(router, "10.0.0.4:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
