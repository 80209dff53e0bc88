package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewItem(t *testing.T) {
	tenantID := uuid.New()

	t.Run("applies defaults", func(t *testing.T) {
		item, err := NewItem(tenantID, "FETA-01", "Feta PDO 1kg")
		assert.NoError(t, err)
		assert.Equal(t, "pcs", item.Unit)
		assert.Equal(t, "24", item.VATRate.String())
	})

	t.Run("requires sku and name", func(t *testing.T) {
		_, err := NewItem(tenantID, "", "Feta PDO 1kg")
		assert.Error(t, err)
		_, err = NewItem(tenantID, "FETA-01", " ")
		assert.Error(t, err)
	})

	t.Run("vat rate bounds", func(t *testing.T) {
		item, err := NewItem(tenantID, "FETA-01", "Feta PDO 1kg")
		assert.NoError(t, err)
		assert.NoError(t, item.SetVATRate(decimal.NewFromInt(13)))
		assert.Error(t, item.SetVATRate(decimal.NewFromInt(-1)))
		assert.Error(t, item.SetVATRate(decimal.NewFromInt(101)))
	})
}

func TestPriceList(t *testing.T) {
	tenantID := uuid.New()

	t.Run("add line defaults moq to one", func(t *testing.T) {
		pl, err := NewPriceList(tenantID, "Wholesale 2026")
		assert.NoError(t, err)

		line, err := pl.AddLine(uuid.New(), decimal.RequireFromString("12.5000"), decimal.Zero)
		assert.NoError(t, err)
		assert.Equal(t, "1", line.MOQ.String())
		assert.Len(t, pl.Lines, 1)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		pl, err := NewPriceList(tenantID, "Wholesale 2026")
		assert.NoError(t, err)
		_, err = pl.AddLine(uuid.New(), decimal.NewFromInt(-1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("remove line by id", func(t *testing.T) {
		pl, err := NewPriceList(tenantID, "Wholesale 2026")
		assert.NoError(t, err)
		line, err := pl.AddLine(uuid.New(), decimal.NewFromInt(10), decimal.NewFromInt(2))
		assert.NoError(t, err)

		assert.NoError(t, pl.RemoveLine(line.ID))
		assert.Empty(t, pl.Lines)
		assert.Error(t, pl.RemoveLine(line.ID))
	})

	t.Run("validity window ordering", func(t *testing.T) {
		pl, err := NewPriceList(tenantID, "Wholesale 2026")
		assert.NoError(t, err)
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, -1, 0)
		assert.Error(t, pl.SetValidity(&from, &to))
		to = from.AddDate(1, 0, 0)
		assert.NoError(t, pl.SetValidity(&from, &to))
	})
}
