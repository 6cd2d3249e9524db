package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetricsRepository(db)

	rows := sqlmock.NewRows([]string{
		"asin", "sku", "brand", "total_sales", "total_units_sold",
		"unique_orders", "page_views", "sessions",
		"sp_impressions", "sp_clicks", "sp_spend", "sp_sales",
	}).
		AddRow("B01AAA", "SKU-1", "Acme", 500.0, 50, 5, 1000, 200, 100, 10, 20.0, 100.0).
		AddRow("B01BBB", "SKU-2", "", 120.0, 10, 2, 400, 100, 0, 0, 0.0, 0.0)

	mock.ExpectQuery("WITH organic AS").
		WithArgs("acct-1", "ATVPDKIKX0DER", "2026-07-01", "2026-07-31").
		WillReturnRows(rows)

	got, err := repo.FetchRows(context.Background(), "acct-1", "ATVPDKIKX0DER", "2026-07-01", "2026-07-31")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B01AAA", got[0].ASIN)
	assert.Equal(t, int64(100), got[0].SPImpressions)
	assert.Empty(t, got[1].Brand)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchRowsWrapsUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetricsRepository(db)

	mock.ExpectQuery("WITH organic AS").
		WillReturnError(assert.AnError)

	_, err := repo.FetchRows(context.Background(), "acct-1", "ATVPDKIKX0DER", "2026-07-01", "2026-07-31")
	require.ErrorIs(t, err, repository.ErrDataUnavailable)
}

func TestFetchBrandAggregate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetricsRepository(db)

	rows := sqlmock.NewRows([]string{"brand", "impressions", "clicks", "spend", "sales"}).
		AddRow("Acme", 500, 50, 100.0, 400.0)

	mock.ExpectQuery("FROM sponsored_brands_daily").
		WithArgs("acct-1", "ATVPDKIKX0DER", "2026-07-01", "2026-07-31", "Acme").
		WillReturnRows(rows)

	agg, err := repo.FetchBrandAggregate(context.Background(), "acct-1", "ATVPDKIKX0DER", "2026-07-01", "2026-07-31", "Acme")
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, int64(500), agg.Impressions)
	assert.Equal(t, 100.0, agg.Spend)
}

func TestFetchBrandAggregateAbsentBrand(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetricsRepository(db)

	mock.ExpectQuery("FROM sponsored_brands_daily").
		WithArgs("acct-1", "ATVPDKIKX0DER", "2026-07-01", "2026-07-31", "NoAds").
		WillReturnRows(sqlmock.NewRows([]string{"brand", "impressions", "clicks", "spend", "sales"}))

	agg, err := repo.FetchBrandAggregate(context.Background(), "acct-1", "ATVPDKIKX0DER", "2026-07-01", "2026-07-31", "NoAds")
	require.NoError(t, err)
	assert.Nil(t, agg, "a brand with no sponsored-brand rows must be reported absent, not zero")
}
