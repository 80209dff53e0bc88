package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodcrm/backend/internal/domain/identity"
	"github.com/foodcrm/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupPermissionRouter(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(svc))

	items := r.Group("/api/v1/items", RequireResource("items"))
	{
		items.GET("", okHandler)
		items.POST("", okHandler)
		items.DELETE("/:id", okHandler)
	}

	emails := r.Group("/api/v1/emails")
	{
		emails.POST("/send", RequireAction("emails", "send"), okHandler)
		emails.GET("", RequireResource("emails"), okHandler)
	}

	deals := r.Group("/api/v1/deals", RequireResource("deals"))
	{
		deals.PATCH("/:id/stage", okHandler)
	}

	return r
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	return w
}

func TestRequireResource(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	router := setupPermissionRouter(svc)

	t.Run("owner wildcard passes everything", func(t *testing.T) {
		token := issueTestToken(t, svc, identity.RoleOwner)

		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodDelete, "/api/v1/items/1", token).Code)
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/emails/send", token).Code)
	})

	t.Run("ops can manage items", func(t *testing.T) {
		token := issueTestToken(t, svc, identity.RoleOps)

		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/api/v1/items", token).Code)
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/items", token).Code)
	})

	t.Run("sales cannot write items", func(t *testing.T) {
		token := issueTestToken(t, svc, identity.RoleSales)

		w := doRequest(router, http.MethodPost, "/api/v1/items", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})

	t.Run("viewer cannot delete", func(t *testing.T) {
		token := issueTestToken(t, svc, identity.RoleViewer)

		assert.Equal(t, http.StatusForbidden, doRequest(router, http.MethodDelete, "/api/v1/items/1", token).Code)
	})
}

func TestRequireAction(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	router := setupPermissionRouter(svc)

	t.Run("ops may send email without full email grant", func(t *testing.T) {
		token := issueTestToken(t, svc, identity.RoleOps)

		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/emails/send", token).Code)
	})

	t.Run("viewer may not send email", func(t *testing.T) {
		token := issueTestToken(t, svc, identity.RoleViewer)

		assert.Equal(t, http.StatusForbidden, doRequest(router, http.MethodPost, "/api/v1/emails/send", token).Code)
	})

	t.Run("stage change maps to deals update", func(t *testing.T) {
		token := issueTestToken(t, svc, identity.RoleSales)

		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPatch, "/api/v1/deals/1/stage", token).Code)
	})
}

func TestMethodToAction(t *testing.T) {
	assert.Equal(t, "read", methodToAction(http.MethodGet))
	assert.Equal(t, "create", methodToAction(http.MethodPost))
	assert.Equal(t, "update", methodToAction(http.MethodPut))
	assert.Equal(t, "update", methodToAction(http.MethodPatch))
	assert.Equal(t, "delete", methodToAction(http.MethodDelete))
	assert.Equal(t, "read", methodToAction("TRACE"))
}
