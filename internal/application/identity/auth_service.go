package identity

import (
	"context"
	"errors"
	"time"

	"github.com/foodcrm/backend/internal/domain/identity"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// AuthService handles registration, login and the current-user lookup
type AuthService struct {
	userRepo     identity.UserRepository
	tenantRepo   identity.TenantRepository
	registration identity.RegistrationRepository
	jwt          *auth.JWTService
	logger       *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	tenantRepo identity.TenantRepository,
	registration identity.RegistrationRepository,
	jwt *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:     userRepo,
		tenantRepo:   tenantRepo,
		registration: registration,
		jwt:          jwt,
		logger:       logger,
	}
}

// Register creates a tenant and its owner user in one transaction and
// returns a token for the new owner
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	tenant, err := identity.NewTenant(req.TenantName)
	if err != nil {
		return nil, err
	}
	owner, err := identity.NewUser(tenant.ID, req.Email, req.Password, identity.RoleOwner)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := owner.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.registration.CreateTenantWithOwner(ctx, tenant, owner); err != nil {
		return nil, err
	}
	s.logger.Info("tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("owner_email", owner.Email))

	return s.issueFor(owner)
}

// Login verifies credentials and issues a token. Unknown email, wrong
// tenant, and bad password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if user.TenantID != req.TenantID {
		return nil, errInvalidCredentials
	}
	if !user.VerifyPassword(req.Password) {
		return nil, errInvalidCredentials
	}
	if !user.Active {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is deactivated")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Tenant is suspended")
	}

	user.RecordLogin(time.Now().UTC())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	return s.issueFor(user)
}

// Me returns the current user
func (s *AuthService) Me(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

func (s *AuthService) issueFor(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwt.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token.Token,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}
