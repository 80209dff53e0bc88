// End-to-end API tests: register a tenant, log in, and exercise
// protected routes through the full middleware chain against a real
// database.
package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/foodcrm/backend/internal/application/identity"
	partnerapp "github.com/foodcrm/backend/internal/application/partner"
	"github.com/foodcrm/backend/internal/infrastructure/auth"
	"github.com/foodcrm/backend/internal/infrastructure/config"
	"github.com/foodcrm/backend/internal/infrastructure/persistence"
	"github.com/foodcrm/backend/internal/interfaces/http/handler"
	"github.com/foodcrm/backend/internal/interfaces/http/middleware"
	"github.com/foodcrm/backend/internal/interfaces/http/router"
	"github.com/foodcrm/backend/tests/testutil"
)

type apiEnvelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   map[string]interface{} `json:"error"`
}

// newAPITestServer wires the auth and partner slices of the API against
// a containerized database. Handlers for resources a test does not
// touch stay nil; their routes 401 before dereferencing anything.
func newAPITestServer(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()

	testDB := NewTestDB(t)

	userRepo := persistence.NewGormUserRepository(testDB.DB)
	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	registrationRepo := persistence.NewGormRegistrationRepository(testDB.DB)
	companyRepo := persistence.NewGormCompanyRepository(testDB.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "integration-test-secret-0123456789ab",
		TokenExpiration: time.Hour,
		Issuer:          "foodcrm-test",
	})

	authService := identityapp.NewAuthService(userRepo, tenantRepo, registrationRepo, jwtService, zap.NewNop())
	companyService := partnerapp.NewCompanyService(companyRepo)

	engine := gin.New()
	router.Setup(engine, router.Config{
		JWTService: jwtService,
		Logger:     zap.NewNop(),
		CORS:       middleware.DefaultCORSConfig(),
	}, router.Handlers{
		System:    handler.NewSystemHandler(nil, "test"),
		Auth:      handler.NewAuthHandler(authService),
		Companies: handler.NewCompanyHandler(companyService),
	})

	return engine, testDB
}

func registerTenant(t *testing.T, engine *gin.Engine, tenantName, email string) (token, tenantID string) {
	t.Helper()

	w := testutil.DoJSONRequest(t, engine, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"tenant_name": tenantName,
		"email":       email,
		"password":    "s3cret-password",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	var resp apiEnvelope
	testutil.DecodeResponse(t, w, &resp)
	token, _ = resp.Data["token"].(string)
	require.NotEmpty(t, token)
	user, _ := resp.Data["user"].(map[string]any)
	tenantID, _ = user["tenant_id"].(string)
	require.NotEmpty(t, tenantID)
	return token, tenantID
}

func TestAuthAPI_RegisterLoginMe(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	engine, _ := newAPITestServer(t)

	token, tenantID := registerTenant(t, engine, "Harbor Foods", "owner@harborfoods.test")

	t.Run("login_returns_fresh_token", func(t *testing.T) {
		w := testutil.DoJSONRequest(t, engine, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"tenant_id": tenantID,
			"email":     "owner@harborfoods.test",
			"password":  "s3cret-password",
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp apiEnvelope
		testutil.DecodeResponse(t, w, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, "Bearer", resp.Data["token_type"])
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("login_with_wrong_password_rejected", func(t *testing.T) {
		w := testutil.DoJSONRequest(t, engine, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"tenant_id": tenantID,
			"email":     "owner@harborfoods.test",
			"password":  "not-the-password",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me_returns_owner_profile", func(t *testing.T) {
		w := testutil.DoJSONRequest(t, engine, http.MethodGet, "/api/v1/auth/me", nil, testutil.AuthHeader(token))
		require.Equal(t, http.StatusOK, w.Code)

		var resp apiEnvelope
		testutil.DecodeResponse(t, w, &resp)
		assert.Equal(t, "owner@harborfoods.test", resp.Data["email"])
		assert.Equal(t, "owner", resp.Data["role"])
	})

	t.Run("duplicate_registration_rejected", func(t *testing.T) {
		w := testutil.DoJSONRequest(t, engine, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"tenant_name": "Harbor Foods Again",
			"email":       "owner@harborfoods.test",
			"password":    "s3cret-password",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp apiEnvelope
		testutil.DecodeResponse(t, w, &resp)
		assert.Equal(t, "ERR_ALREADY_EXISTS", resp.Error["code"])
	})
}

func TestAuthAPI_TenantScopedCompanies(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	engine, _ := newAPITestServer(t)

	tokenA, _ := registerTenant(t, engine, "Tenant Alpha", "owner@alpha.test")
	tokenB, _ := registerTenant(t, engine, "Tenant Beta", "owner@beta.test")

	// Tenant A creates a company
	w := testutil.DoJSONRequest(t, engine, http.MethodPost, "/api/v1/companies", map[string]interface{}{
		"name":    "Alpha Distribution",
		"country": "GR",
	}, testutil.AuthHeader(tokenA))
	require.Equal(t, http.StatusCreated, w.Code, "create company failed: %s", w.Body.String())

	var created apiEnvelope
	testutil.DecodeResponse(t, w, &created)
	companyID, _ := created.Data["id"].(string)
	require.NotEmpty(t, companyID)

	t.Run("tenant_B_cannot_read_tenant_A_company", func(t *testing.T) {
		w := testutil.DoJSONRequest(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/companies/%s", companyID), nil, testutil.AuthHeader(tokenB))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("tenant_B_list_is_empty", func(t *testing.T) {
		w := testutil.DoJSONRequest(t, engine, http.MethodGet, "/api/v1/companies", nil, testutil.AuthHeader(tokenB))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []interface{} `json:"data"`
			Meta struct {
				Total int64 `json:"total"`
			} `json:"meta"`
		}
		testutil.DecodeResponse(t, w, &resp)
		assert.Empty(t, resp.Data)
		assert.Equal(t, int64(0), resp.Meta.Total)
	})

	t.Run("tenant_A_sees_its_company", func(t *testing.T) {
		w := testutil.DoJSONRequest(t, engine, http.MethodGet,
			fmt.Sprintf("/api/v1/companies/%s", companyID), nil, testutil.AuthHeader(tokenA))
		require.Equal(t, http.StatusOK, w.Code)

		var resp apiEnvelope
		testutil.DecodeResponse(t, w, &resp)
		assert.Equal(t, "Alpha Distribution", resp.Data["name"])
	})

	t.Run("request_without_token_rejected", func(t *testing.T) {
		w := testutil.DoJSONRequest(t, engine, http.MethodGet, "/api/v1/companies", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
