package crm

import (
	"testing"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewDeal(t *testing.T) {
	tenantID := uuid.New()

	t.Run("starts at lead with zero value", func(t *testing.T) {
		deal, err := NewDeal(tenantID, "Q3 produce contract")
		assert.NoError(t, err)
		assert.Equal(t, StageLead, deal.Stage)
		assert.True(t, deal.Value.IsZero())
		assert.Equal(t, "EUR", deal.Currency)
		assert.False(t, deal.IsClosed())
	})

	t.Run("requires a title", func(t *testing.T) {
		_, err := NewDeal(tenantID, " ")
		assert.Error(t, err)
	})
}

func TestDealChangeStage(t *testing.T) {
	tenantID := uuid.New()
	deal, err := NewDeal(tenantID, "Q3 produce contract")
	assert.NoError(t, err)

	t.Run("accepts every canonical stage", func(t *testing.T) {
		for _, stage := range []DealStage{StageLead, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost} {
			assert.NoError(t, deal.ChangeStage(stage))
			assert.Equal(t, stage, deal.Stage)
		}
	})

	t.Run("rejects unknown stage", func(t *testing.T) {
		err := deal.ChangeStage(DealStage("closed-won"))
		assert.Error(t, err)
	})

	t.Run("won and lost are terminal", func(t *testing.T) {
		assert.NoError(t, deal.ChangeStage(StageWon))
		assert.True(t, deal.IsClosed())
		assert.NoError(t, deal.ChangeStage(StageLost))
		assert.True(t, deal.IsClosed())
	})
}

func TestDealSetValue(t *testing.T) {
	tenantID := uuid.New()
	deal, err := NewDeal(tenantID, "Q3 produce contract")
	assert.NoError(t, err)

	t.Run("stores decimal value and currency", func(t *testing.T) {
		assert.NoError(t, deal.SetValue(decimal.RequireFromString("1234.56"), "eur"))
		assert.Equal(t, "1234.56", deal.Value.String())
		assert.Equal(t, "EUR", deal.Currency)
	})

	t.Run("rejects negative value", func(t *testing.T) {
		err := deal.SetValue(decimal.NewFromInt(-1), "EUR")
		assert.Error(t, err)
	})

	t.Run("rejects malformed currency", func(t *testing.T) {
		err := deal.SetValue(decimal.NewFromInt(10), "EURO")
		assert.Error(t, err)
	})
}

func TestActivityComplete(t *testing.T) {
	tenantID := uuid.New()

	t.Run("defaults to task type", func(t *testing.T) {
		activity, err := NewActivity(tenantID, "Call the chef", "")
		assert.NoError(t, err)
		assert.Equal(t, ActivityTask, activity.Type)
		assert.False(t, activity.IsCompleted())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewActivity(tenantID, "Call the chef", ActivityType("email"))
		assert.Error(t, err)
	})

	t.Run("complete stamps UTC time", func(t *testing.T) {
		activity, err := NewActivity(tenantID, "Call the chef", ActivityCall)
		assert.NoError(t, err)

		local := time.Date(2026, 3, 14, 10, 30, 0, 0, time.FixedZone("EET", 2*3600))
		activity.Complete(local)
		assert.True(t, activity.IsCompleted())
		assert.Equal(t, time.UTC, activity.CompletedAt.Location())
		assert.True(t, activity.CompletedAt.Equal(local))
	})

	t.Run("link attaches polymorphic target", func(t *testing.T) {
		activity, err := NewActivity(tenantID, "Follow up", ActivityMeeting)
		assert.NoError(t, err)
		dealID := uuid.New()
		assert.NoError(t, activity.LinkTo(shared.EntityDeal, dealID))
		assert.Equal(t, shared.EntityDeal, activity.EntityType)
		assert.Equal(t, dealID, *activity.EntityID)
	})

	t.Run("link rejects unknown entity kinds", func(t *testing.T) {
		activity, err := NewActivity(tenantID, "Follow up", ActivityMeeting)
		assert.NoError(t, err)
		err = activity.LinkTo("invoice", uuid.New())
		assert.Error(t, err)
		assert.Empty(t, activity.EntityType)
		assert.Nil(t, activity.EntityID)
	})
}
