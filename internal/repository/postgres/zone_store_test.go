package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func sampleRecord() *domain.ZoneClassificationRecord {
	return &domain.ZoneClassificationRecord{
		AccountID:     "acct-1",
		MarketplaceID: "ATVPDKIKX0DER",
		Level:         domain.LevelAccount,
		ZoneDate:      "2026-07-31",
		Zone:          domain.ZoneOpportunity,
		ASIN:          "B01EXAMPLE",
		SKU:           "SKU-1",
		Brand:         "Acme",
		TotalSales:    500,
	}
}

func TestZoneStoreUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewZoneStore(db)

	mock.ExpectExec("INSERT INTO performance_zones").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.Upsert(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZoneStoreUpsertWrapsError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewZoneStore(db)

	mock.ExpectExec("INSERT INTO performance_zones").
		WillReturnError(assert.AnError)

	err := store.Upsert(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B01EXAMPLE")
}

func TestZoneStoreGetZoneSummary(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewZoneStore(db)

	rows := sqlmock.NewRows([]string{"zone", "count"}).
		AddRow("OPPORTUNITY", 12).
		AddRow("OPTIMAL", 3).
		AddRow("WORK_IN_PROGRESS", 40)

	mock.ExpectQuery("SELECT zone, COUNT").
		WithArgs("acct-1", "ATVPDKIKX0DER", "ACCOUNT", "2026-07-31").
		WillReturnRows(rows)

	summaries, err := store.GetZoneSummary(context.Background(), domain.ZoneFilter{
		AccountID:     "acct-1",
		MarketplaceID: "ATVPDKIKX0DER",
		Level:         domain.LevelAccount,
		ZoneDate:      "2026-07-31",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, domain.ZoneOptimal, summaries[1].Zone)
	assert.Equal(t, 3, summaries[1].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZoneStoreGetZoneItemsPaginates(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewZoneStore(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("acct-1", "OPTIMAL").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	itemRows := sqlmock.NewRows([]string{"id", "account_id", "zone", "asin", "total_sales"}).
		AddRow(1, "acct-1", "OPTIMAL", "B01AAA", 900.0).
		AddRow(2, "acct-1", "OPTIMAL", "B01BBB", 450.0)

	// Page 2 with page size 10 translates to LIMIT 10 OFFSET 10.
	mock.ExpectQuery("FROM performance_zones").
		WithArgs("acct-1", "OPTIMAL", 10, 10).
		WillReturnRows(itemRows)

	items, total, err := store.GetZoneItems(context.Background(), domain.ZoneFilter{
		AccountID: "acct-1",
		Zone:      domain.ZoneOptimal,
		Page:      2,
		PageSize:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, items, 2)
	assert.Equal(t, "B01AAA", items[0].ASIN)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZoneStoreGetAvailableDates(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewZoneStore(db)

	day := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT DISTINCT zone_date").
		WithArgs("acct-1", "ATVPDKIKX0DER", 30).
		WillReturnRows(sqlmock.NewRows([]string{"zone_date"}).AddRow(day).AddRow(day.AddDate(0, 0, -1)))

	dates, err := store.GetAvailableDates(context.Background(), "acct-1", "ATVPDKIKX0DER", 0)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, day, dates[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
