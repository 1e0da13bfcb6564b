package refueling

import (
	"context"
	"testing"
	"time"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository/mocks"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func refuelAt(fuel domain.FuelType, daysAgo int, now time.Time) *domain.Refuel {
	return &domain.Refuel{
		FuelType: fuel,
		Date:     now.AddDate(0, 0, -daysAgo),
	}
}

func TestFilterRefuels(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	refuels := []*domain.Refuel{
		refuelAt(domain.FuelGNV, 2, now),
		refuelAt(domain.FuelEtanol, 10, now),
		refuelAt(domain.FuelGNV, 45, now),
		refuelAt(domain.FuelGasolinaComum, 100, now),
	}

	tests := []struct {
		name     string
		filter   domain.RefuelFilter
		expected int
	}{
		{
			name:     "Sem filtros retorna tudo",
			filter:   domain.RefuelFilter{},
			expected: 4,
		},
		{
			name:     "Combustível 'all' não restringe",
			filter:   domain.RefuelFilter{FuelType: "all"},
			expected: 4,
		},
		{
			name:     "Filtro por combustível específico",
			filter:   domain.RefuelFilter{FuelType: "gnv"},
			expected: 2,
		},
		{
			name:     "Filtro por período de 30 dias",
			filter:   domain.RefuelFilter{PeriodDays: 30},
			expected: 2,
		},
		{
			name:     "Combustível e período combinados",
			filter:   domain.RefuelFilter{FuelType: "gnv", PeriodDays: 30},
			expected: 1,
		},
		{
			name:     "Período negativo não restringe",
			filter:   domain.RefuelFilter{PeriodDays: -1},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterRefuels(refuels, tt.filter, now)
			assert.Len(t, filtered, tt.expected)
		})
	}
}

func TestFilterRefuels_ListaVazia(t *testing.T) {
	filtered := FilterRefuels(nil, domain.RefuelFilter{FuelType: "gnv"}, time.Now())
	assert.Empty(t, filtered)
	assert.NotNil(t, filtered)
}

func TestRecord(t *testing.T) {
	req := &domain.NewRefuelRequest{
		StationID: "st-1",
		FuelType:  domain.FuelGNV,
		Liters:    "12.5",
		TotalPaid: "54.90",
		Date:      "2025-06-10",
	}

	t.Run("Abastecimento válido credita pontos e contador", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		refuelRepo := mocks.NewMockRefuelRepository(ctrl)
		stationRepo := mocks.NewMockStationRepository(ctrl)
		userRepo := mocks.NewMockUserRepository(ctrl)

		stationRepo.EXPECT().GetByID(gomock.Any(), "st-1").Return(&domain.Station{ID: "st-1", Name: "Posto Andorinha"}, nil)
		refuelRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		userRepo.EXPECT().IncrementRefuels(gomock.Any(), 42).Return(nil)
		userRepo.EXPECT().AddPoints(gomock.Any(), 42, domain.PointsRefuel).Return(nil)

		service := NewService(refuelRepo, stationRepo, userRepo, nil)

		refuel, err := service.Record(context.Background(), 42, req)

		require.NoError(t, err)
		assert.Equal(t, "Posto Andorinha", refuel.StationName)
		assert.Equal(t, domain.FuelGNV, refuel.FuelType)
		assert.Equal(t, 2025, refuel.Date.Year())
	})

	t.Run("Falha ao creditar pontos não derruba o registro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		refuelRepo := mocks.NewMockRefuelRepository(ctrl)
		stationRepo := mocks.NewMockStationRepository(ctrl)
		userRepo := mocks.NewMockUserRepository(ctrl)

		stationRepo.EXPECT().GetByID(gomock.Any(), "st-1").Return(&domain.Station{ID: "st-1", Name: "Posto Andorinha"}, nil)
		refuelRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		userRepo.EXPECT().IncrementRefuels(gomock.Any(), 42).Return(errors.New("timeout"))
		userRepo.EXPECT().AddPoints(gomock.Any(), 42, domain.PointsRefuel).Return(errors.New("timeout"))

		service := NewService(refuelRepo, stationRepo, userRepo, nil)

		refuel, err := service.Record(context.Background(), 42, req)

		require.NoError(t, err)
		assert.NotNil(t, refuel)
	})

	t.Run("Posto inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		refuelRepo := mocks.NewMockRefuelRepository(ctrl)
		stationRepo := mocks.NewMockStationRepository(ctrl)
		userRepo := mocks.NewMockUserRepository(ctrl)

		stationRepo.EXPECT().GetByID(gomock.Any(), "st-1").Return(nil, nil)

		service := NewService(refuelRepo, stationRepo, userRepo, nil)

		_, err := service.Record(context.Background(), 42, req)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStationNotFound))
	})

	t.Run("Validações de entrada", func(t *testing.T) {
		tests := []struct {
			name        string
			req         *domain.NewRefuelRequest
			expectedErr error
		}{
			{
				name:        "Combustível desconhecido",
				req:         &domain.NewRefuelRequest{StationID: "st-1", FuelType: "querosene", Liters: "10", TotalPaid: "50"},
				expectedErr: ErrInvalidFuelType,
			},
			{
				name:        "Litros não numéricos",
				req:         &domain.NewRefuelRequest{StationID: "st-1", FuelType: domain.FuelGNV, Liters: "abc", TotalPaid: "50"},
				expectedErr: ErrInvalidLiters,
			},
			{
				name:        "Litros negativos",
				req:         &domain.NewRefuelRequest{StationID: "st-1", FuelType: domain.FuelGNV, Liters: "-3", TotalPaid: "50"},
				expectedErr: ErrInvalidLiters,
			},
			{
				name:        "Valor pago zerado",
				req:         &domain.NewRefuelRequest{StationID: "st-1", FuelType: domain.FuelGNV, Liters: "10", TotalPaid: "0"},
				expectedErr: ErrInvalidTotalPaid,
			},
			{
				name:        "Data em formato inválido",
				req:         &domain.NewRefuelRequest{StationID: "st-1", FuelType: domain.FuelGNV, Liters: "10", TotalPaid: "50", Date: "15/06/2025"},
				expectedErr: ErrInvalidRefuelDate,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				service := NewService(
					mocks.NewMockRefuelRepository(ctrl),
					mocks.NewMockStationRepository(ctrl),
					mocks.NewMockUserRepository(ctrl),
					nil,
				)

				_, err := service.Record(context.Background(), 42, tt.req)

				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
			})
		}
	})
}
