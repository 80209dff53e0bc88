package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}

	serve := func(err error) *httptest.ResponseRecorder {
		engine := gin.New()
		engine.GET("/t", func(c *gin.Context) {
			h.HandleError(c, err)
		})
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
		return w
	}

	t.Run("not found maps to 404", func(t *testing.T) {
		w := serve(shared.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})

	t.Run("duplicate maps to 400", func(t *testing.T) {
		w := serve(shared.NewDomainError("ALREADY_EXISTS", "Quote number already in use"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_ALREADY_EXISTS")
	})

	t.Run("line validation maps to 400", func(t *testing.T) {
		w := serve(shared.NewDomainError("INVALID_LINE", "Quantity must be positive"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	})

	t.Run("invalid state maps to 400", func(t *testing.T) {
		w := serve(shared.NewDomainError("INVALID_STATE", "Quote is already accepted"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_STATE")
	})

	t.Run("upstream failure maps to 502", func(t *testing.T) {
		w := serve(shared.NewDomainError("UPSTREAM_FAILURE", "Email delivery failed"))
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UPSTREAM")
	})

	t.Run("unknown errors collapse to 500 without leaking", func(t *testing.T) {
		w := serve(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
