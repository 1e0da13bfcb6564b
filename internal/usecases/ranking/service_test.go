package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository/mocks"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRankStations(t *testing.T) {
	stations := []*domain.Station{
		station("st-1", "Posto Andorinha", withPrices(entry(domain.FuelEtanol, "3.89"))),
		station("st-2", "Posto Beija-Flor", withPrices(entry(domain.FuelEtanol, "3.69"))),
	}

	t.Run("Usuário anônimo não consulta favoritos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)

		stationRepo.EXPECT().ListWithPrices(gomock.Any()).Return(stations, nil)

		service := NewStationRankingService(stationRepo, favoriteRepo, nil)

		response, err := service.RankStations(context.Background(), 0, domain.RankingContext{
			FuelFilter: domain.FuelFilterAll,
			SortBy:     domain.SortByPrice,
		})

		require.NoError(t, err)
		require.Equal(t, 2, response.Total)
		assert.Equal(t, "st-2", response.Stations[0].ID)
		assert.Equal(t, "st-1", response.Stations[1].ID)
	})

	t.Run("Usuário logado filtra pelos favoritos do snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)

		stationRepo.EXPECT().ListWithPrices(gomock.Any()).Return(stations, nil)
		favoriteRepo.EXPECT().GetByUser(gomock.Any(), 42).Return(map[string]struct{}{"st-1": {}}, nil)

		service := NewStationRankingService(stationRepo, favoriteRepo, nil)

		response, err := service.RankStations(context.Background(), 42, domain.RankingContext{
			FuelFilter: domain.FuelFilterFavorites,
		})

		require.NoError(t, err)
		require.Equal(t, 1, response.Total)
		assert.Equal(t, "st-1", response.Stations[0].ID)
	})

	t.Run("Erro do banco interrompe a listagem", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)

		stationRepo.EXPECT().ListWithPrices(gomock.Any()).Return(nil, errors.New("connection refused"))

		service := NewStationRankingService(stationRepo, favoriteRepo, nil)

		response, err := service.RankStations(context.Background(), 0, domain.RankingContext{FuelFilter: domain.FuelFilterAll})

		assert.Error(t, err)
		assert.Nil(t, response)
	})

	t.Run("Erro ao buscar favoritos interrompe a listagem", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)

		stationRepo.EXPECT().ListWithPrices(gomock.Any()).Return(stations, nil)
		favoriteRepo.EXPECT().GetByUser(gomock.Any(), 42).Return(nil, errors.New("connection refused"))

		service := NewStationRankingService(stationRepo, favoriteRepo, nil)

		response, err := service.RankStations(context.Background(), 42, domain.RankingContext{FuelFilter: domain.FuelFilterAll})

		assert.Error(t, err)
		assert.Nil(t, response)
	})
}
