package reviewing

import (
	"context"
	"strings"
	"testing"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository/mocks"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testRepos struct {
	review    *mocks.MockReviewRepository
	complaint *mocks.MockComplaintRepository
	station   *mocks.MockStationRepository
	user      *mocks.MockUserRepository
}

func newTestService(ctrl *gomock.Controller) (ReviewService, testRepos) {
	repos := testRepos{
		review:    mocks.NewMockReviewRepository(ctrl),
		complaint: mocks.NewMockComplaintRepository(ctrl),
		station:   mocks.NewMockStationRepository(ctrl),
		user:      mocks.NewMockUserRepository(ctrl),
	}
	return NewService(repos.review, repos.complaint, repos.station, repos.user, nil), repos
}

func TestSubmitReview(t *testing.T) {
	req := &domain.NewReviewRequest{StationID: "st-1", Rating: 4, Comment: "Bom atendimento"}

	t.Run("Avaliação válida recalcula a média e credita pontos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, repos := newTestService(ctrl)

		repos.station.EXPECT().GetByID(gomock.Any(), "st-1").Return(&domain.Station{ID: "st-1"}, nil)
		repos.review.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		repos.review.EXPECT().AggregateForStation(gomock.Any(), "st-1").Return(4.25, 8, nil)
		repos.station.EXPECT().UpdateRating(gomock.Any(), "st-1", 4.3, 8).Return(nil)
		repos.user.EXPECT().AddPoints(gomock.Any(), 42, domain.PointsReview).Return(nil)

		review, err := service.SubmitReview(context.Background(), 42, req)

		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		assert.Equal(t, 42, review.UserID)
	})

	t.Run("Falha ao recalcular a média não invalida a avaliação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, repos := newTestService(ctrl)

		repos.station.EXPECT().GetByID(gomock.Any(), "st-1").Return(&domain.Station{ID: "st-1"}, nil)
		repos.review.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		repos.review.EXPECT().AggregateForStation(gomock.Any(), "st-1").Return(0.0, 0, errors.New("timeout"))
		repos.user.EXPECT().AddPoints(gomock.Any(), 42, domain.PointsReview).Return(nil)

		review, err := service.SubmitReview(context.Background(), 42, req)

		require.NoError(t, err)
		assert.NotNil(t, review)
	})

	t.Run("Nota fora do intervalo de 1 a 5", func(t *testing.T) {
		tests := []struct {
			name   string
			rating int
		}{
			{name: "Nota zero", rating: 0},
			{name: "Nota negativa", rating: -1},
			{name: "Nota acima do máximo", rating: 6},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				service, _ := newTestService(ctrl)

				_, err := service.SubmitReview(context.Background(), 42, &domain.NewReviewRequest{StationID: "st-1", Rating: tt.rating})

				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRating))
			})
		}
	})

	t.Run("Posto inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, repos := newTestService(ctrl)

		repos.station.EXPECT().GetByID(gomock.Any(), "st-404").Return(nil, nil)

		_, err := service.SubmitReview(context.Background(), 42, &domain.NewReviewRequest{StationID: "st-404", Rating: 3})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStationNotFound))
	})
}

func TestSubmitComplaint(t *testing.T) {
	req := &domain.NewComplaintRequest{
		StationID:     "st-1",
		FuelType:      domain.FuelGasolinaComum,
		RefuelingDate: "2025-06-10",
		Description:   "Bomba adulterada",
	}

	t.Run("Denúncia nasce pendente e com protocolo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, repos := newTestService(ctrl)

		repos.station.EXPECT().GetByID(gomock.Any(), "st-1").Return(&domain.Station{ID: "st-1"}, nil)
		repos.complaint.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		complaint, err := service.SubmitComplaint(context.Background(), 42, req)

		require.NoError(t, err)
		assert.Equal(t, domain.ComplaintPending, complaint.Status)
		assert.Len(t, complaint.Protocol, 8)
		assert.Equal(t, 42, complaint.ReportedBy)
	})

	t.Run("Nenhum ponto é creditado no envio da denúncia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// O mock de usuário sem expectativas garante que AddPoints não é chamado
		service, repos := newTestService(ctrl)

		repos.station.EXPECT().GetByID(gomock.Any(), "st-1").Return(&domain.Station{ID: "st-1"}, nil)
		repos.complaint.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := service.SubmitComplaint(context.Background(), 42, req)

		assert.NoError(t, err)
	})

	t.Run("Validações de entrada", func(t *testing.T) {
		tests := []struct {
			name        string
			req         *domain.NewComplaintRequest
			expectedErr error
		}{
			{
				name:        "Combustível desconhecido",
				req:         &domain.NewComplaintRequest{StationID: "st-1", FuelType: "querosene", RefuelingDate: "2025-06-10"},
				expectedErr: ErrInvalidFuelType,
			},
			{
				name:        "Data de abastecimento obrigatória",
				req:         &domain.NewComplaintRequest{StationID: "st-1", FuelType: domain.FuelGNV, RefuelingDate: ""},
				expectedErr: ErrInvalidRefuelDate,
			},
			{
				name:        "Data em formato inválido",
				req:         &domain.NewComplaintRequest{StationID: "st-1", FuelType: domain.FuelGNV, RefuelingDate: "10/06/2025"},
				expectedErr: ErrInvalidRefuelDate,
			},
			{
				name: "Descrição acima do limite",
				req: &domain.NewComplaintRequest{
					StationID:     "st-1",
					FuelType:      domain.FuelGNV,
					RefuelingDate: "2025-06-10",
					Description:   strings.Repeat("x", maxComplaintDescription+1),
				},
				expectedErr: ErrDescriptionTooLong,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				service, _ := newTestService(ctrl)

				_, err := service.SubmitComplaint(context.Background(), 42, tt.req)

				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
			})
		}
	})
}

func TestListStationReviews(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, repos := newTestService(ctrl)

	reviews := []*domain.Review{
		{ID: 2, Rating: 5},
		{ID: 1, Rating: 3},
	}
	repos.review.EXPECT().ListByStation(gomock.Any(), "st-1").Return(reviews, nil)

	result, err := service.ListStationReviews(context.Background(), "st-1")

	require.NoError(t, err)
	assert.Len(t, result, 2)
}
