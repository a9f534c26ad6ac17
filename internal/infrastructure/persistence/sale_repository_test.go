package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func saleColumns() []string {
	return []string{
		"id", "created_at", "updated_at",
		"product_name", "product_category", "product_code",
		"quantity", "unit_price", "discount", "total_price",
		"pharmacy_name", "pharmacy_location", "customer_type",
		"sale_date", "payment_method", "campaign_id", "sales_rep",
		"notes", "is_active",
	}
}

func TestGormSaleRepository_FindByID(t *testing.T) {
	t.Run("finds existing sale", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(gormDB)

		saleID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(saleColumns()).
			AddRow(saleID, now, now,
				"Amoxicillin 500mg", "Antibiotic", "AMX-500",
				10, decimal.NewFromFloat(12.5), decimal.Zero, decimal.NewFromFloat(125),
				"Central Pharmacy", "Downtown", "retail",
				now, "card", "", "",
				"", true)

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id = \$1 AND is_active = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(saleID, true, 1).
			WillReturnRows(rows)

		sale, err := repo.FindByID(context.Background(), saleID)

		assert.NoError(t, err)
		require.NotNil(t, sale)
		assert.Equal(t, saleID, sale.ID)
		assert.Equal(t, "Amoxicillin 500mg", sale.ProductName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing sale", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(gormDB)

		saleID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id = \$1 AND is_active = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(saleID, true, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		sale, err := repo.FindByID(context.Background(), saleID)

		assert.Nil(t, sale)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_List(t *testing.T) {
	t.Run("lists with filters and pagination", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(gormDB)

		countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE is_active = \$1 AND product_name ILIKE \$2`).
			WithArgs(true, "%Amox%").
			WillReturnRows(countRows)

		saleID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows(saleColumns()).
			AddRow(saleID, now, now,
				"Amoxicillin 500mg", "Antibiotic", "AMX-500",
				10, decimal.NewFromFloat(12.5), decimal.Zero, decimal.NewFromFloat(125),
				"Central Pharmacy", "Downtown", "retail",
				now, "card", "", "",
				"", true)

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE is_active = \$1 AND product_name ILIKE \$2 ORDER BY sale_date DESC LIMIT .*`).
			WithArgs(true, "%Amox%", 100).
			WillReturnRows(rows)

		sales, total, err := repo.List(context.Background(), ledger.SaleListFilter{
			ProductName: "Amox",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, sales, 1)
		assert.Equal(t, saleID, sales[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_Save(t *testing.T) {
	t.Run("inserts a sale", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(gormDB)

		sale, err := ledger.NewSale(ledger.NewSaleInput{
			ProductName:     "Ibuprofen 200mg",
			ProductCategory: "Analgesic",
			Quantity:        5,
			UnitPrice:       decimal.NewFromFloat(3.20),
			SaleDate:        time.Now().Add(-time.Hour),
		})
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "sales"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.Save(context.Background(), sale))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
