package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodcrm/backend/internal/domain/mail"
	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/foodcrm/backend/internal/infrastructure/cache"
	"github.com/foodcrm/backend/internal/infrastructure/mailsync"
	"github.com/foodcrm/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncConfig holds mailbox ingestion settings. The polled mailbox maps
// to exactly one tenant.
type SyncConfig struct {
	TenantID  uuid.UUID
	BatchSize int
	// DedupTTL bounds how long a provider message id reservation is
	// held before the database row becomes the source of truth
	DedupTTL time.Duration
}

// DefaultSyncConfig returns default ingestion settings
func DefaultSyncConfig(tenantID uuid.UUID) SyncConfig {
	return SyncConfig{
		TenantID:  tenantID,
		BatchSize: 50,
		DedupTTL:  24 * time.Hour,
	}
}

// SyncService ingests unseen mailbox messages into the email log. One
// pass fetches a batch, deduplicates each message on (tenant, provider
// message id) and auto-links senders to known companies.
type SyncService struct {
	cfg         SyncConfig
	fetcher     mailsync.Fetcher
	messageRepo mail.MessageRepository
	companyRepo partner.CompanyRepository
	dedup       cache.DedupStore
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
}

// NewSyncService creates a new SyncService. Metrics may be nil.
func NewSyncService(
	cfg SyncConfig,
	fetcher mailsync.Fetcher,
	messageRepo mail.MessageRepository,
	companyRepo partner.CompanyRepository,
	dedup cache.DedupStore,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) (*SyncService, error) {
	if cfg.TenantID == uuid.Nil {
		return nil, fmt.Errorf("sync tenant id is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.DedupTTL <= 0 {
		cfg.DedupTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		cfg:         cfg,
		fetcher:     fetcher,
		messageRepo: messageRepo,
		companyRepo: companyRepo,
		dedup:       dedup,
		metrics:     metrics,
		logger:      logger,
	}, nil
}

// SyncOnce performs one mailbox ingestion pass. A failure on one
// message is logged and does not stop the rest of the batch.
func (s *SyncService) SyncOnce(ctx context.Context) error {
	start := time.Now()
	err := s.syncOnce(ctx)
	s.metrics.RecordMailSyncRun(ctx, time.Since(start), err)
	return err
}

func (s *SyncService) syncOnce(ctx context.Context) error {
	messages, err := s.fetcher.FetchUnseen(ctx, s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("fetch unseen: %w", err)
	}
	if len(messages) == 0 {
		return nil
	}

	ingested := 0
	seen := make([]uint32, 0, len(messages))
	for _, msg := range messages {
		stored, settled, err := s.ingest(ctx, msg)
		if err != nil {
			// Left unseen in the mailbox; the next pass refetches it.
			s.logger.Error("mail ingestion failed",
				zap.String("provider_msg_id", msg.ProviderMsgID),
				zap.Error(err))
			continue
		}
		if settled {
			seen = append(seen, msg.UID)
		}
		if stored {
			ingested++
		}
	}

	if len(seen) > 0 {
		if err := s.fetcher.MarkSeen(ctx, seen); err != nil {
			s.logger.Warn("failed to mark messages as seen", zap.Error(err))
		}
	}

	s.logger.Info("mail sync pass finished",
		zap.Int("fetched", len(messages)),
		zap.Int("ingested", ingested))
	return nil
}

// ingest stores one inbound message. stored reports whether a new row
// was written; settled reports whether the message may be marked seen
// (stored, or a row for it already exists). A message claimed by a
// still-live reservation is neither: the next pass settles it against
// the database.
func (s *SyncService) ingest(ctx context.Context, msg mailsync.InboundMessage) (stored, settled bool, err error) {
	key := dedupKey(s.cfg.TenantID, msg.ProviderMsgID)
	reserved, err := s.dedup.Reserve(ctx, key, s.cfg.DedupTTL)
	if err != nil {
		return false, false, fmt.Errorf("dedup reserve: %w", err)
	}
	if !reserved {
		return false, false, nil
	}

	exists, err := s.messageRepo.ExistsByProviderID(ctx, s.cfg.TenantID, msg.ProviderMsgID)
	if err != nil {
		s.release(ctx, key)
		return false, false, fmt.Errorf("dedup lookup: %w", err)
	}
	if exists {
		return false, true, nil
	}

	message, err := mail.NewInboundMessage(s.cfg.TenantID, msg.ProviderMsgID, msg.Sender, msg.Subject)
	if err != nil {
		s.release(ctx, key)
		return false, false, err
	}
	message.Recipients = mail.JoinAddresses(msg.Recipients)
	message.CC = mail.JoinAddresses(msg.CC)
	message.SetBody(msg.BodyText, msg.BodyHTML)
	if msg.InReplyTo != "" {
		message.SetThread(msg.InReplyTo)
	}
	if !msg.SentAt.IsZero() {
		message.SetSentAt(msg.SentAt)
	}
	s.autoLink(ctx, message)

	if err := s.messageRepo.Save(ctx, message); err != nil {
		s.release(ctx, key)
		return false, false, fmt.Errorf("save message: %w", err)
	}
	s.metrics.RecordEmailIngested(ctx, s.cfg.TenantID)
	return true, true, nil
}

// release drops a dedup reservation after a failed ingest so the
// message can be claimed again on the next pass.
func (s *SyncService) release(ctx context.Context, key string) {
	if err := s.dedup.Release(ctx, key); err != nil {
		s.logger.Warn("failed to release dedup reservation",
			zap.String("key", key),
			zap.Error(err))
	}
}

// autoLink matches the sender address against company emails in the
// tenant. No match leaves the message unlinked.
func (s *SyncService) autoLink(ctx context.Context, message *mail.Message) {
	if message.Sender == "" {
		return
	}
	company, err := s.companyRepo.FindByEmailForTenant(ctx, s.cfg.TenantID, message.Sender)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("company lookup for auto-link failed",
				zap.String("sender", message.Sender),
				zap.Error(err))
		}
		return
	}
	if err := message.LinkTo(shared.EntityCompany, company.ID); err != nil {
		s.logger.Warn("auto-link failed", zap.String("sender", message.Sender), zap.Error(err))
	}
}

func dedupKey(tenantID uuid.UUID, providerMsgID string) string {
	return "mailsync:" + tenantID.String() + ":" + providerMsgID
}
