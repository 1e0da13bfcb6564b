package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

var stationColumns = []string{
	"id", "name", "brand", "address", "lat", "lng", "rating",
	"review_count", "complaints_count", "seal", "has_promotion",
	"promotion_text", "created_at", "updated_at",
}

var priceColumns = []string{"station_id", "fuel_type", "price", "updated_at"}

func stationRow(rows *sqlmock.Rows, id, name string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, name, "Ipiranga", "Av. Brasil, 100", -23.55, -46.63,
		4.2, 10, 0, "observation", false, nil, now, now)
}

func TestListWithPrices(t *testing.T) {
	t.Run("Postos com os preços vigentes embutidos", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		stations := sqlmock.NewRows(stationColumns)
		stationRow(stations, "st-1", "Posto Andorinha")
		stationRow(stations, "st-2", "Posto Beija-Flor")

		mock.ExpectQuery("SELECT s.id, s.name, .* FROM stations s").
			WithArgs(false).
			WillReturnRows(stations)

		now := time.Now()
		prices := sqlmock.NewRows(priceColumns).
			AddRow("st-1", "gnv", "4.390", now).
			AddRow("st-1", "gasolina_comum", "5.990", now).
			AddRow("st-2", "etanol", "3.790", now)

		mock.ExpectQuery("SELECT DISTINCT ON \\(fp.station_id, fp.fuel_type\\)").
			WillReturnRows(prices)

		repo := NewStationRepository(db)

		result, err := repo.ListWithPrices(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Len(t, result[0].Prices, 2)
		assert.Len(t, result[1].Prices, 1)
		assert.Equal(t, domain.FuelGNV, result[0].Prices[0].FuelType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Preço malformado entra em quarentena e não derruba a listagem", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		stations := sqlmock.NewRows(stationColumns)
		stationRow(stations, "st-1", "Posto Andorinha")

		mock.ExpectQuery("SELECT s.id, s.name, .* FROM stations s").
			WithArgs(false).
			WillReturnRows(stations)

		now := time.Now()
		prices := sqlmock.NewRows(priceColumns).
			AddRow("st-1", "gnv", "preço?", now).
			AddRow("st-1", "etanol", "3.790", now)

		mock.ExpectQuery("SELECT DISTINCT ON \\(fp.station_id, fp.fuel_type\\)").
			WillReturnRows(prices)

		repo := NewStationRepository(db)

		result, err := repo.ListWithPrices(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 1)
		// Só a linha válida sobrevive à ingestão
		require.Len(t, result[0].Prices, 1)
		assert.Equal(t, domain.FuelEtanol, result[0].Prices[0].FuelType)
	})

	t.Run("Base vazia retorna lista vazia sem consultar preços", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT s.id, s.name, .* FROM stations s").
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows(stationColumns))

		repo := NewStationRepository(db)

		result, err := repo.ListWithPrices(context.Background())

		require.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	t.Run("Posto inexistente retorna nil sem erro", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT s.id, s.name, .* FROM stations s").
			WithArgs(false, "st-404").
			WillReturnRows(sqlmock.NewRows(stationColumns))

		repo := NewStationRepository(db)

		station, err := repo.GetByID(context.Background(), "st-404")

		require.NoError(t, err)
		assert.Nil(t, station)
	})

	t.Run("Posto encontrado vem com os preços vigentes", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		stations := sqlmock.NewRows(stationColumns)
		stationRow(stations, "st-1", "Posto Andorinha")

		mock.ExpectQuery("SELECT s.id, s.name, .* FROM stations s").
			WithArgs(false, "st-1").
			WillReturnRows(stations)

		prices := sqlmock.NewRows(priceColumns).
			AddRow("st-1", "gnv", "4.390", time.Now())

		mock.ExpectQuery("SELECT DISTINCT ON \\(fp.station_id, fp.fuel_type\\)").
			WillReturnRows(prices)

		repo := NewStationRepository(db)

		station, err := repo.GetByID(context.Background(), "st-1")

		require.NoError(t, err)
		require.NotNil(t, station)
		assert.Equal(t, "Posto Andorinha", station.Name)
		require.Len(t, station.Prices, 1)
		assert.Equal(t, domain.FuelGNV, station.Prices[0].FuelType)
	})
}

func TestAddPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entry := domain.FuelPriceEntry{
		FuelType:  domain.FuelGNV,
		Price:     decimalFromString(t, "4.39"),
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO fuel_prices").
		WithArgs("st-1", "gnv", "4.390", entry.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewStationRepository(db)

	err = repo.AddPrice(context.Background(), "st-1", entry)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSeal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE stations SET seal = .* WHERE id = ").
		WithArgs("trusted", "st-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewStationRepository(db)

	err = repo.UpdateSeal(context.Background(), "st-1", domain.SealTrusted)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
