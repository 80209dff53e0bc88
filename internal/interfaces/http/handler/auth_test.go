package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	identityapp "github.com/foodcrm/backend/internal/application/identity"
	"github.com/foodcrm/backend/internal/domain/identity"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/auth"
	"github.com/foodcrm/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) CreateTenantWithOwner(ctx context.Context, tenant *identity.Tenant, owner *identity.User) error {
	args := m.Called(ctx, tenant, owner)
	return args.Error(0)
}

type authTestEnv struct {
	userRepo     *MockUserRepository
	tenantRepo   *MockTenantRepository
	registration *MockRegistrationRepository
	engine       *gin.Engine
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &authTestEnv{
		userRepo:     new(MockUserRepository),
		tenantRepo:   new(MockTenantRepository),
		registration: new(MockRegistrationRepository),
	}

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		TokenExpiration: time.Hour,
		Issuer:          "foodcrm-test",
	})
	service := identityapp.NewAuthService(env.userRepo, env.tenantRepo, env.registration, jwtService, nil)
	h := NewAuthHandler(service)

	env.engine = gin.New()
	env.engine.POST("/api/v1/auth/register", h.Register)
	env.engine.POST("/api/v1/auth/login", h.Login)
	return env
}

func postJSON(engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates tenant and returns token", func(t *testing.T) {
		env := newAuthTestEnv(t)
		env.userRepo.On("FindByEmail", mock.Anything, "owner@taverna.example").Return(nil, shared.ErrNotFound)
		env.registration.On("CreateTenantWithOwner", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		w := postJSON(env.engine, "/api/v1/auth/register", gin.H{
			"tenant_name":  "Taverna Dionysos",
			"email":        "owner@taverna.example",
			"password":     "correct-horse-battery",
			"display_name": "Eleni",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Token     string `json:"token"`
				TokenType string `json:"token_type"`
				User      struct {
					Email string `json:"email"`
					Role  string `json:"role"`
				} `json:"user"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data.Token)
		assert.Equal(t, "Bearer", resp.Data.TokenType)
		assert.Equal(t, "owner", resp.Data.User.Role)
	})

	t.Run("short password fails binding", func(t *testing.T) {
		env := newAuthTestEnv(t)

		w := postJSON(env.engine, "/api/v1/auth/register", gin.H{
			"tenant_name": "Taverna Dionysos",
			"email":       "owner@taverna.example",
			"password":    "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
		env.registration.AssertNotCalled(t, "CreateTenantWithOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate email maps to 400", func(t *testing.T) {
		env := newAuthTestEnv(t)
		existing, err := identity.NewUser(uuid.New(), "owner@taverna.example", "another-pass-123", identity.RoleOwner)
		require.NoError(t, err)
		env.userRepo.On("FindByEmail", mock.Anything, "owner@taverna.example").Return(existing, nil)

		w := postJSON(env.engine, "/api/v1/auth/register", gin.H{
			"tenant_name": "Taverna Dionysos",
			"email":       "owner@taverna.example",
			"password":    "correct-horse-battery",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_ALREADY_EXISTS")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("wrong password yields 401", func(t *testing.T) {
		env := newAuthTestEnv(t)
		user, err := identity.NewUser(uuid.New(), "cook@taverna.example", "right-password-1", identity.RoleSales)
		require.NoError(t, err)
		env.userRepo.On("FindByEmail", mock.Anything, "cook@taverna.example").Return(user, nil)

		w := postJSON(env.engine, "/api/v1/auth/login", gin.H{
			"tenant_id": user.TenantID.String(),
			"email":     "cook@taverna.example",
			"password":  "wrong-password-1",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("valid credentials yield token", func(t *testing.T) {
		env := newAuthTestEnv(t)
		tenant, err := identity.NewTenant("Taverna Dionysos")
		require.NoError(t, err)
		user, err := identity.NewUser(tenant.ID, "cook@taverna.example", "right-password-1", identity.RoleSales)
		require.NoError(t, err)

		env.userRepo.On("FindByEmail", mock.Anything, "cook@taverna.example").Return(user, nil)
		env.tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		env.userRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		w := postJSON(env.engine, "/api/v1/auth/login", gin.H{
			"tenant_id": tenant.ID.String(),
			"email":     "cook@taverna.example",
			"password":  "right-password-1",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"token_type":"Bearer"`)
	})
}
