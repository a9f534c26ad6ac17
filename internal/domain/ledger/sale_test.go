package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSaleInput() NewSaleInput {
	return NewSaleInput{
		ProductName:      "Amoxicillin 500mg",
		ProductCategory:  "Antibiotic",
		ProductCode:      "AMX-500",
		Quantity:         10,
		UnitPrice:        decimal.NewFromFloat(12.50),
		Discount:         decimal.NewFromFloat(5),
		PharmacyName:     "Central Pharmacy",
		PharmacyLocation: "Downtown",
		SaleDate:         time.Now().Add(-24 * time.Hour),
	}
}

func TestNewSale(t *testing.T) {
	t.Run("computes total from quantity, unit price and discount", func(t *testing.T) {
		sale, err := NewSale(validSaleInput())
		require.NoError(t, err)

		assert.True(t, sale.TotalPrice.Equal(decimal.NewFromFloat(120)))
		assert.True(t, sale.IsActive)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", sale.ID.String())
	})

	t.Run("defaults sale date to now", func(t *testing.T) {
		in := validSaleInput()
		in.SaleDate = time.Time{}

		sale, err := NewSale(in)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), sale.SaleDate, time.Second)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		in := validSaleInput()
		in.Quantity = 0

		_, err := NewSale(in)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive unit price", func(t *testing.T) {
		in := validSaleInput()
		in.UnitPrice = decimal.Zero

		_, err := NewSale(in)
		assert.Error(t, err)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		in := validSaleInput()
		in.Discount = decimal.NewFromInt(-1)

		_, err := NewSale(in)
		assert.Error(t, err)
	})

	t.Run("rejects future sale date", func(t *testing.T) {
		in := validSaleInput()
		in.SaleDate = time.Now().Add(48 * time.Hour)

		_, err := NewSale(in)
		assert.Error(t, err)
	})

	t.Run("rejects blank product name", func(t *testing.T) {
		in := validSaleInput()
		in.ProductName = "   "

		_, err := NewSale(in)
		assert.Error(t, err)
	})
}

func TestSaleApply(t *testing.T) {
	t.Run("recomputes total when quantity changes", func(t *testing.T) {
		sale, err := NewSale(validSaleInput())
		require.NoError(t, err)

		qty := 4
		require.NoError(t, sale.Apply(SaleUpdate{Quantity: &qty}))

		assert.Equal(t, 4, sale.Quantity)
		assert.True(t, sale.TotalPrice.Equal(decimal.NewFromFloat(45)))
	})

	t.Run("recomputes total when discount changes", func(t *testing.T) {
		sale, err := NewSale(validSaleInput())
		require.NoError(t, err)

		discount := decimal.Zero
		require.NoError(t, sale.Apply(SaleUpdate{Discount: &discount}))

		assert.True(t, sale.TotalPrice.Equal(decimal.NewFromFloat(125)))
	})

	t.Run("leaves total untouched for non-financial updates", func(t *testing.T) {
		sale, err := NewSale(validSaleInput())
		require.NoError(t, err)
		before := sale.TotalPrice

		notes := "reorder expected"
		require.NoError(t, sale.Apply(SaleUpdate{Notes: &notes}))

		assert.True(t, sale.TotalPrice.Equal(before))
		assert.Equal(t, "reorder expected", sale.Notes)
	})

	t.Run("rejects invalid partial values", func(t *testing.T) {
		sale, err := NewSale(validSaleInput())
		require.NoError(t, err)

		qty := -1
		assert.Error(t, sale.Apply(SaleUpdate{Quantity: &qty}))

		price := decimal.Zero
		assert.Error(t, sale.Apply(SaleUpdate{UnitPrice: &price}))
	})
}

func TestSaleDeactivate(t *testing.T) {
	sale, err := NewSale(validSaleInput())
	require.NoError(t, err)

	sale.Deactivate()
	assert.False(t, sale.IsActive)
}
