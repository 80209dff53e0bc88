package mail

import (
	"context"
	"testing"
	"time"

	"github.com/foodcrm/backend/internal/domain/mail"
	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/cache"
	"github.com/foodcrm/backend/internal/infrastructure/mailsync"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of mailsync.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchUnseen(ctx context.Context, limit int) ([]mailsync.InboundMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mailsync.InboundMessage), args.Error(1)
}

func (m *MockFetcher) MarkSeen(ctx context.Context, uids []uint32) error {
	args := m.Called(ctx, uids)
	return args.Error(0)
}

// MockCompanyRepository is a mock implementation of partner.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Company, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Company, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Company, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Company, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newSyncService(t *testing.T, tenantID uuid.UUID, fetcher *MockFetcher, messageRepo *MockMessageRepository, companyRepo *MockCompanyRepository, dedup cache.DedupStore) *SyncService {
	t.Helper()
	service, err := NewSyncService(DefaultSyncConfig(tenantID), fetcher, messageRepo, companyRepo, dedup, nil, nil)
	assert.NoError(t, err)
	return service
}

func inboundFixture(uid uint32, providerMsgID, sender string) mailsync.InboundMessage {
	return mailsync.InboundMessage{
		UID:           uid,
		ProviderMsgID: providerMsgID,
		Subject:       "Re: your offer",
		Sender:        sender,
		Recipients:    []string{"crm@foodcrm.example"},
		SentAt:        time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		BodyText:      "Looks good, please proceed.",
	}
}

func TestSyncService_SyncOnce(t *testing.T) {
	tenantID := uuid.New()

	t.Run("ingests new message as in row", func(t *testing.T) {
		fetcher := new(MockFetcher)
		messageRepo := new(MockMessageRepository)
		companyRepo := new(MockCompanyRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		service := newSyncService(t, tenantID, fetcher, messageRepo, companyRepo, dedup)

		fetcher.On("FetchUnseen", mock.Anything, 50).Return([]mailsync.InboundMessage{
			inboundFixture(101, "<in-1@remote>", "Maria@Aegean-Catering.example"),
		}, nil)
		messageRepo.On("ExistsByProviderID", mock.Anything, tenantID, "<in-1@remote>").Return(false, nil)
		companyRepo.On("FindByEmailForTenant", mock.Anything, tenantID, "maria@aegean-catering.example").Return(nil, shared.ErrNotFound)
		messageRepo.On("Save", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
			return msg.Direction == mail.DirectionIn &&
				msg.ProviderMsgID == "<in-1@remote>" &&
				msg.Sender == "maria@aegean-catering.example" &&
				msg.SentAt != nil &&
				msg.EntityType == ""
		})).Return(nil)
		fetcher.On("MarkSeen", mock.Anything, []uint32{101}).Return(nil)

		assert.NoError(t, service.SyncOnce(context.Background()))
		messageRepo.AssertExpectations(t)
		fetcher.AssertExpectations(t)
	})

	t.Run("auto-links sender to matching company", func(t *testing.T) {
		fetcher := new(MockFetcher)
		messageRepo := new(MockMessageRepository)
		companyRepo := new(MockCompanyRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		service := newSyncService(t, tenantID, fetcher, messageRepo, companyRepo, dedup)

		company, err := partner.NewCompany(tenantID, "Aegean Catering Ltd")
		assert.NoError(t, err)

		fetcher.On("FetchUnseen", mock.Anything, 50).Return([]mailsync.InboundMessage{
			inboundFixture(102, "<in-2@remote>", "maria@aegean-catering.example"),
		}, nil)
		messageRepo.On("ExistsByProviderID", mock.Anything, tenantID, "<in-2@remote>").Return(false, nil)
		companyRepo.On("FindByEmailForTenant", mock.Anything, tenantID, "maria@aegean-catering.example").Return(company, nil)
		messageRepo.On("Save", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
			return msg.EntityType == "company" && msg.EntityID != nil && *msg.EntityID == company.ID
		})).Return(nil)
		fetcher.On("MarkSeen", mock.Anything, mock.Anything).Return(nil)

		assert.NoError(t, service.SyncOnce(context.Background()))
		messageRepo.AssertExpectations(t)
	})

	t.Run("skips message already in the log", func(t *testing.T) {
		fetcher := new(MockFetcher)
		messageRepo := new(MockMessageRepository)
		companyRepo := new(MockCompanyRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		service := newSyncService(t, tenantID, fetcher, messageRepo, companyRepo, dedup)

		fetcher.On("FetchUnseen", mock.Anything, 50).Return([]mailsync.InboundMessage{
			inboundFixture(103, "<in-3@remote>", "maria@aegean-catering.example"),
		}, nil)
		messageRepo.On("ExistsByProviderID", mock.Anything, tenantID, "<in-3@remote>").Return(true, nil)
		fetcher.On("MarkSeen", mock.Anything, []uint32{103}).Return(nil)

		assert.NoError(t, service.SyncOnce(context.Background()))
		messageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		fetcher.AssertExpectations(t)
	})

	t.Run("skips message reserved in a previous pass", func(t *testing.T) {
		fetcher := new(MockFetcher)
		messageRepo := new(MockMessageRepository)
		companyRepo := new(MockCompanyRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		service := newSyncService(t, tenantID, fetcher, messageRepo, companyRepo, dedup)

		_, err := dedup.Reserve(context.Background(), dedupKey(tenantID, "<in-4@remote>"), time.Hour)
		assert.NoError(t, err)

		fetcher.On("FetchUnseen", mock.Anything, 50).Return([]mailsync.InboundMessage{
			inboundFixture(104, "<in-4@remote>", "maria@aegean-catering.example"),
		}, nil)

		assert.NoError(t, service.SyncOnce(context.Background()))
		messageRepo.AssertNotCalled(t, "ExistsByProviderID", mock.Anything, mock.Anything, mock.Anything)
		messageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		fetcher.AssertNotCalled(t, "MarkSeen", mock.Anything, mock.Anything)
	})

	t.Run("one bad message does not stop the batch", func(t *testing.T) {
		fetcher := new(MockFetcher)
		messageRepo := new(MockMessageRepository)
		companyRepo := new(MockCompanyRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		service := newSyncService(t, tenantID, fetcher, messageRepo, companyRepo, dedup)

		fetcher.On("FetchUnseen", mock.Anything, 50).Return([]mailsync.InboundMessage{
			inboundFixture(105, "<in-5@remote>", "maria@aegean-catering.example"),
			inboundFixture(106, "<in-6@remote>", "nikos@thessaly-farms.example"),
		}, nil)
		messageRepo.On("ExistsByProviderID", mock.Anything, tenantID, "<in-5@remote>").Return(false, assert.AnError)
		messageRepo.On("ExistsByProviderID", mock.Anything, tenantID, "<in-6@remote>").Return(false, nil)
		companyRepo.On("FindByEmailForTenant", mock.Anything, tenantID, "nikos@thessaly-farms.example").Return(nil, shared.ErrNotFound)
		messageRepo.On("Save", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
			return msg.ProviderMsgID == "<in-6@remote>"
		})).Return(nil)
		fetcher.On("MarkSeen", mock.Anything, []uint32{106}).Return(nil)

		assert.NoError(t, service.SyncOnce(context.Background()))
		messageRepo.AssertExpectations(t)
		fetcher.AssertExpectations(t)
	})

	t.Run("save failure keeps the message for the next pass", func(t *testing.T) {
		fetcher := new(MockFetcher)
		messageRepo := new(MockMessageRepository)
		companyRepo := new(MockCompanyRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		service := newSyncService(t, tenantID, fetcher, messageRepo, companyRepo, dedup)

		fetcher.On("FetchUnseen", mock.Anything, 50).Return([]mailsync.InboundMessage{
			inboundFixture(107, "<in-7@remote>", "maria@aegean-catering.example"),
		}, nil)
		messageRepo.On("ExistsByProviderID", mock.Anything, tenantID, "<in-7@remote>").Return(false, nil)
		companyRepo.On("FindByEmailForTenant", mock.Anything, tenantID, "maria@aegean-catering.example").Return(nil, shared.ErrNotFound)
		messageRepo.On("Save", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		assert.NoError(t, service.SyncOnce(context.Background()))
		fetcher.AssertNotCalled(t, "MarkSeen", mock.Anything, mock.Anything)

		// The reservation was released, so the next pass claims and stores it.
		messageRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		fetcher.On("MarkSeen", mock.Anything, []uint32{107}).Return(nil)

		assert.NoError(t, service.SyncOnce(context.Background()))
		messageRepo.AssertExpectations(t)
		fetcher.AssertExpectations(t)
	})

	t.Run("stores the thread id from in-reply-to", func(t *testing.T) {
		fetcher := new(MockFetcher)
		messageRepo := new(MockMessageRepository)
		companyRepo := new(MockCompanyRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		service := newSyncService(t, tenantID, fetcher, messageRepo, companyRepo, dedup)

		reply := inboundFixture(108, "<in-8@remote>", "maria@aegean-catering.example")
		reply.InReplyTo = "<parent@remote>"
		fetcher.On("FetchUnseen", mock.Anything, 50).Return([]mailsync.InboundMessage{reply}, nil)
		messageRepo.On("ExistsByProviderID", mock.Anything, tenantID, "<in-8@remote>").Return(false, nil)
		companyRepo.On("FindByEmailForTenant", mock.Anything, tenantID, "maria@aegean-catering.example").Return(nil, shared.ErrNotFound)
		messageRepo.On("Save", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
			return msg.ThreadID == "<parent@remote>"
		})).Return(nil)
		fetcher.On("MarkSeen", mock.Anything, []uint32{108}).Return(nil)

		assert.NoError(t, service.SyncOnce(context.Background()))
		messageRepo.AssertExpectations(t)
	})

	t.Run("fetch failure is returned for retry next tick", func(t *testing.T) {
		fetcher := new(MockFetcher)
		messageRepo := new(MockMessageRepository)
		companyRepo := new(MockCompanyRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		service := newSyncService(t, tenantID, fetcher, messageRepo, companyRepo, dedup)

		fetcher.On("FetchUnseen", mock.Anything, 50).Return(nil, assert.AnError)

		assert.Error(t, service.SyncOnce(context.Background()))
	})

	t.Run("requires a tenant id", func(t *testing.T) {
		_, err := NewSyncService(DefaultSyncConfig(uuid.Nil), new(MockFetcher), new(MockMessageRepository), new(MockCompanyRepository), cache.NewInMemoryDedupStore(), nil, nil)
		assert.Error(t, err)
	})
}
