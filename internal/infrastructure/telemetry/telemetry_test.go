package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NotNil(t, tp.Tracer("test"))
}

func TestTracerProvider_SpanProfilesDisabledWithoutProvider(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, tp.EnableSpanProfiles())
	assert.False(t, tp.IsSpanProfilesEnabled())
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NoError(t, mp.Shutdown(context.Background()))
	assert.NotNil(t, mp.Meter("test"))
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestNewZapOTELCore_DisabledProviderReturnsNopCore(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	core := NewZapOTELCore(ZapBridgeConfig{ServiceName: "test", LoggerProvider: lp})
	assert.NotNil(t, core)

	logger := NewBridgedLogger(zap.NewNop().Core(), core)
	logger.Info("does not panic")
}

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServerAddress(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://pyroscope:4040"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("requires a meter", func(t *testing.T) {
		_, err := NewBusinessMetrics(BusinessMetricsConfig{})
		assert.ErrorIs(t, err, ErrMeterNil)
	})

	t.Run("records without panicking", func(t *testing.T) {
		meter := noop.NewMeterProvider().Meter("test")
		bm, err := NewBusinessMetrics(BusinessMetricsConfig{Meter: meter})
		require.NoError(t, err)

		ctx := context.Background()
		tenantID := uuid.New()

		bm.RecordEmailSent(ctx, tenantID)
		bm.RecordEmailIngested(ctx, tenantID)
		bm.RecordMailSyncRun(ctx, 3*time.Second, nil)
		bm.RecordMailSyncRun(ctx, time.Second, assert.AnError)
		bm.RecordPDFRender(ctx, tenantID, "quote", 800*time.Millisecond)
		bm.RecordDealStageChange(ctx, tenantID, "won")
	})

	t.Run("nil receiver is a no-op", func(t *testing.T) {
		var bm *BusinessMetrics
		bm.RecordEmailSent(context.Background(), uuid.New())
		bm.RecordMailSyncRun(context.Background(), time.Second, nil)
	})
}

func TestNewDBTracingPlugin_Defaults(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
	assert.Equal(t, "postgresql", p.config.DBSystem)
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
}
