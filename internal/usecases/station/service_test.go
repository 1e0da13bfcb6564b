package station

import (
	"context"
	"testing"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository/mocks"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegister(t *testing.T) {
	t.Run("Posto novo nasce com o selo observation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		stationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		service := NewService(stationRepo, mocks.NewMockComplaintRepository(ctrl), nil)

		station, err := service.Register(context.Background(), &domain.NewStationRequest{
			Name:    "Posto Andorinha",
			Brand:   "Ipiranga",
			Address: "Av. Brasil, 100",
		}, 42)

		require.NoError(t, err)
		assert.Equal(t, domain.SealObservation, station.Seal)
		assert.NotEmpty(t, station.ID)
		require.NotNil(t, station.CreatedBy)
		assert.Equal(t, 42, *station.CreatedBy)
	})

	t.Run("Cadastro anônimo não registra autor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		stationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		service := NewService(stationRepo, mocks.NewMockComplaintRepository(ctrl), nil)

		station, err := service.Register(context.Background(), &domain.NewStationRequest{
			Name:    "Posto Andorinha",
			Address: "Av. Brasil, 100",
		}, 0)

		require.NoError(t, err)
		assert.Nil(t, station.CreatedBy)
	})

	t.Run("Nome e endereço são obrigatórios", func(t *testing.T) {
		tests := []struct {
			name        string
			req         *domain.NewStationRequest
			expectedErr error
		}{
			{
				name:        "Sem nome",
				req:         &domain.NewStationRequest{Address: "Av. Brasil, 100"},
				expectedErr: ErrNameRequired,
			},
			{
				name:        "Sem endereço",
				req:         &domain.NewStationRequest{Name: "Posto Andorinha"},
				expectedErr: ErrAddressRequired,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				service := NewService(mocks.NewMockStationRepository(ctrl), mocks.NewMockComplaintRepository(ctrl), nil)

				_, err := service.Register(context.Background(), tt.req, 42)

				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
			})
		}
	})
}

func TestGetDetail(t *testing.T) {
	t.Run("Detalhe agrega o posto e as denúncias aprovadas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		complaintRepo := mocks.NewMockComplaintRepository(ctrl)

		stationRepo.EXPECT().GetByID(gomock.Any(), "st-1").Return(&domain.Station{ID: "st-1", Name: "Posto Andorinha"}, nil)
		complaintRepo.EXPECT().ListApprovedByStation(gomock.Any(), "st-1").Return([]*domain.Complaint{
			{ID: 7, Status: domain.ComplaintApproved},
		}, nil)

		service := NewService(stationRepo, complaintRepo, nil)

		detail, err := service.GetDetail(context.Background(), "st-1")

		require.NoError(t, err)
		assert.Equal(t, "Posto Andorinha", detail.Station.Name)
		assert.Len(t, detail.Complaints, 1)
	})

	t.Run("Posto inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		stationRepo.EXPECT().GetByID(gomock.Any(), "st-404").Return(nil, nil)

		service := NewService(stationRepo, mocks.NewMockComplaintRepository(ctrl), nil)

		_, err := service.GetDetail(context.Background(), "st-404")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStationNotFound))
	})
}

func TestReportPrice(t *testing.T) {
	t.Run("Preço válido entra no histórico do posto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		stationRepo.EXPECT().GetByID(gomock.Any(), "st-1").Return(&domain.Station{ID: "st-1"}, nil)
		stationRepo.EXPECT().AddPrice(gomock.Any(), "st-1", gomock.Any()).Return(nil)

		service := NewService(stationRepo, mocks.NewMockComplaintRepository(ctrl), nil)

		err := service.ReportPrice(context.Background(), "st-1", &domain.PriceReportRequest{
			FuelType: domain.FuelGNV,
			Price:    "4.39",
		})

		assert.NoError(t, err)
	})

	t.Run("Validações de entrada", func(t *testing.T) {
		tests := []struct {
			name        string
			req         *domain.PriceReportRequest
			expectedErr error
		}{
			{
				name:        "Combustível desconhecido",
				req:         &domain.PriceReportRequest{FuelType: "querosene", Price: "4.39"},
				expectedErr: ErrInvalidFuelType,
			},
			{
				name:        "Preço não numérico",
				req:         &domain.PriceReportRequest{FuelType: domain.FuelGNV, Price: "abc"},
				expectedErr: ErrInvalidPrice,
			},
			{
				name:        "Preço zerado",
				req:         &domain.PriceReportRequest{FuelType: domain.FuelGNV, Price: "0"},
				expectedErr: ErrInvalidPrice,
			},
			{
				name:        "Preço negativo",
				req:         &domain.PriceReportRequest{FuelType: domain.FuelGNV, Price: "-1.50"},
				expectedErr: ErrInvalidPrice,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				service := NewService(mocks.NewMockStationRepository(ctrl), mocks.NewMockComplaintRepository(ctrl), nil)

				err := service.ReportPrice(context.Background(), "st-1", tt.req)

				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
			})
		}
	})

	t.Run("Posto inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stationRepo := mocks.NewMockStationRepository(ctrl)
		stationRepo.EXPECT().GetByID(gomock.Any(), "st-404").Return(nil, nil)

		service := NewService(stationRepo, mocks.NewMockComplaintRepository(ctrl), nil)

		err := service.ReportPrice(context.Background(), "st-404", &domain.PriceReportRequest{
			FuelType: domain.FuelGNV,
			Price:    "4.39",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStationNotFound))
	})
}
