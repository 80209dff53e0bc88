package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCurrencyCodeBinding(t *testing.T) {
	type payload struct {
		Currency string `json:"currency" binding:"omitempty,currency_code"`
	}

	engine := gin.New()
	engine.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name     string
		body     string
		expected int
	}{
		{"valid_upper", `{"currency":"EUR"}`, http.StatusOK},
		{"valid_lower", `{"currency":"usd"}`, http.StatusOK},
		{"empty_allowed", `{}`, http.StatusOK},
		{"too_long", `{"currency":"EURO"}`, http.StatusBadRequest},
		{"digits", `{"currency":"E12"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)
			assert.Equal(t, tc.expected, w.Code)
		})
	}
}
