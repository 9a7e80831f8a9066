package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/pkg/apperror"
)

func serveWithErrorHandler(debug bool, err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(debug))
	r.GET("/boom", func(c *gin.Context) {
		c.Error(err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	cause := errors.New("pq: connection refused at 10.0.0.7")

	t.Run("Should expose the internal cause in development mode", func(t *testing.T) {
		w := serveWithErrorHandler(true, apperror.Internal(cause))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "connection refused")
	})

	t.Run("Should hide the internal cause outside development mode", func(t *testing.T) {
		w := serveWithErrorHandler(false, apperror.Internal(cause))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal Server Error")
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("Should keep business error codes and messages untouched", func(t *testing.T) {
		w := serveWithErrorHandler(true, apperror.NotFound("Offer not found"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Offer not found")
	})

	t.Run("Should translate an untyped error into a generic 500", func(t *testing.T) {
		w := serveWithErrorHandler(false, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}
