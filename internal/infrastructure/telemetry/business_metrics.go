package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks CRM activity: outbound and ingested email,
// document rendering and deal pipeline movement.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	emailSentTotal     *Counter
	emailIngestedTotal *Counter
	mailSyncRunsTotal  *Counter
	mailSyncDuration   *Histogram
	pdfRenderTotal     *Counter
	pdfRenderDuration  *Histogram
	dealStageTotal     *Counter
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	bm.emailSentTotal, err = NewCounter(
		cfg.Meter,
		"crm_email_sent_total",
		"Total number of outbound emails sent",
		"{emails}",
	)
	if err != nil {
		return nil, err
	}

	bm.emailIngestedTotal, err = NewCounter(
		cfg.Meter,
		"crm_email_ingested_total",
		"Total number of inbound emails ingested from the mailbox",
		"{emails}",
	)
	if err != nil {
		return nil, err
	}

	bm.mailSyncRunsTotal, err = NewCounter(
		cfg.Meter,
		"crm_mail_sync_runs_total",
		"Total number of mailbox sync runs",
		"{runs}",
	)
	if err != nil {
		return nil, err
	}

	bm.mailSyncDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "crm_mail_sync_duration_seconds",
		Description: "Duration of mailbox sync runs",
		Unit:        "s",
		Boundaries:  SyncDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	bm.pdfRenderTotal, err = NewCounter(
		cfg.Meter,
		"crm_pdf_render_total",
		"Total number of PDF documents rendered",
		"{documents}",
	)
	if err != nil {
		return nil, err
	}

	bm.pdfRenderDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "crm_pdf_render_duration_seconds",
		Description: "Duration of PDF rendering",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	bm.dealStageTotal, err = NewCounter(
		cfg.Meter,
		"crm_deal_stage_changes_total",
		"Total number of deal stage transitions",
		"{transitions}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordEmailSent records a successfully sent outbound email.
func (bm *BusinessMetrics) RecordEmailSent(ctx context.Context, tenantID uuid.UUID) {
	if bm == nil {
		return
	}
	bm.emailSentTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrDirection.String("out"),
	)
}

// RecordEmailIngested records an inbound email stored during mailbox sync.
func (bm *BusinessMetrics) RecordEmailIngested(ctx context.Context, tenantID uuid.UUID) {
	if bm == nil {
		return
	}
	bm.emailIngestedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrDirection.String("in"),
	)
}

// RecordMailSyncRun records the outcome and duration of one mailbox sync run.
func (bm *BusinessMetrics) RecordMailSyncRun(ctx context.Context, duration time.Duration, err error) {
	if bm == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	bm.mailSyncRunsTotal.Inc(ctx, AttrResult.String(result))
	bm.mailSyncDuration.RecordDuration(ctx, duration, AttrResult.String(result))
}

// RecordPDFRender records a rendered document and its render duration.
func (bm *BusinessMetrics) RecordPDFRender(ctx context.Context, tenantID uuid.UUID, docType string, duration time.Duration) {
	if bm == nil {
		return
	}
	bm.pdfRenderTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrDocType.String(docType),
	)
	bm.pdfRenderDuration.RecordDuration(ctx, duration, AttrDocType.String(docType))
}

// RecordDealStageChange records a deal pipeline transition.
func (bm *BusinessMetrics) RecordDealStageChange(ctx context.Context, tenantID uuid.UUID, stage string) {
	if bm == nil {
		return
	}
	bm.dealStageTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrDealStage.String(stage),
	)
}

// MetricsError represents an error in metrics operations.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}
