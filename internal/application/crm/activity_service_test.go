package crm

import (
	"context"
	"testing"
	"time"

	"github.com/foodcrm/backend/internal/domain/crm"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*crm.Activity, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Activity, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crm.Activity, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) Save(ctx context.Context, activity *crm.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockActivityRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockActivityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestActivityService_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("defaults to a task", func(t *testing.T) {
		repo := new(MockActivityRepository)
		service := NewActivityService(repo)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Activity")).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, CreateActivityRequest{
			Subject: "Call about the spring menu",
		})

		assert.NoError(t, err)
		assert.Equal(t, "task", resp.Type)
		assert.Nil(t, resp.CompletedAt)
	})

	t.Run("links to an entity", func(t *testing.T) {
		repo := new(MockActivityRepository)
		service := NewActivityService(repo)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Activity")).Return(nil)

		dealID := uuid.New()
		resp, err := service.Create(context.Background(), tenantID, CreateActivityRequest{
			Subject:    "Prepare proposal",
			Type:       "meeting",
			EntityType: "deal",
			EntityID:   &dealID,
		})

		assert.NoError(t, err)
		assert.Equal(t, "meeting", resp.Type)
		assert.Equal(t, "deal", resp.EntityType)
		assert.Equal(t, dealID, *resp.EntityID)
	})

	t.Run("rejects an unknown entity kind", func(t *testing.T) {
		repo := new(MockActivityRepository)
		service := NewActivityService(repo)

		entityID := uuid.New()
		_, err := service.Create(context.Background(), tenantID, CreateActivityRequest{
			Subject:    "Check invoice",
			EntityType: "invoice",
			EntityID:   &entityID,
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty subject", func(t *testing.T) {
		repo := new(MockActivityRepository)
		service := NewActivityService(repo)

		_, err := service.Create(context.Background(), tenantID, CreateActivityRequest{Subject: "  "})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestActivityService_Complete(t *testing.T) {
	tenantID := uuid.New()

	repo := new(MockActivityRepository)
	service := NewActivityService(repo)

	activity, _ := crm.NewActivity(tenantID, "Send samples", crm.ActivityTask)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, activity.ID).Return(activity, nil)
	repo.On("Save", mock.Anything, activity).Return(nil)

	before := time.Now().UTC()
	resp, err := service.Complete(context.Background(), tenantID, activity.ID)

	assert.NoError(t, err)
	assert.NotNil(t, resp.CompletedAt)
	assert.False(t, resp.CompletedAt.Before(before))
}

func TestActivityService_List_OpenFilter(t *testing.T) {
	tenantID := uuid.New()

	repo := new(MockActivityRepository)
	service := NewActivityService(repo)

	activity, _ := crm.NewActivity(tenantID, "Send samples", crm.ActivityTask)

	repo.On("FindAllForTenant", mock.Anything, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		open, ok := f.Filters["open"].(bool)
		return ok && open
	})).Return([]crm.Activity{*activity}, nil)
	repo.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(1), nil)

	open := true
	responses, total, err := service.List(context.Background(), tenantID, ActivityListFilter{Open: &open})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, responses, 1)
}
