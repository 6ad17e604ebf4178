package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_PassesThrough(t *testing.T) {
	app := drift.New()
	app.Use(RequestLogger())
	app.Get("/ping", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
