package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ovationhq/ovation/internal/testutil"
)

func TestLoginRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(LoginRateLimitMiddleware(1, 2, testutil.Logger()))
	router.POST("/v1/sessions", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		return w.Code
	}

	// Burst of 2 passes, the third request is throttled.
	assert.Equal(t, http.StatusCreated, do())
	assert.Equal(t, http.StatusCreated, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestLoginRateLimitMiddlewareIsPerIP(t *testing.T) {
	router := gin.New()
	router.Use(LoginRateLimitMiddleware(1, 1, testutil.Logger()))
	router.POST("/v1/sessions", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	do := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusCreated, do("10.0.0.2:1234"))
}
