package gamification

import (
	"context"
	"testing"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository/mocks"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetLeaderboard(t *testing.T) {
	t.Run("Limite explícito é repassado ao repositório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		leaderboardRepo := mocks.NewMockLeaderboardRepository(ctrl)
		leaderboardRepo.EXPECT().GetLatest(gomock.Any(), 10).Return(&domain.LeaderboardResponse{
			Ranking: []domain.LeaderboardEntry{{UserID: 1, Position: 1}},
		}, nil)

		service := NewService(leaderboardRepo)

		response, err := service.GetLeaderboard(context.Background(), 10)

		require.NoError(t, err)
		assert.Len(t, response.Ranking, 1)
	})

	t.Run("Limite inválido cai no padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		leaderboardRepo := mocks.NewMockLeaderboardRepository(ctrl)
		leaderboardRepo.EXPECT().GetLatest(gomock.Any(), defaultLeaderboardLimit).Return(&domain.LeaderboardResponse{}, nil)

		service := NewService(leaderboardRepo)

		_, err := service.GetLeaderboard(context.Background(), 0)

		assert.NoError(t, err)
	})
}

func TestGetUserEntry(t *testing.T) {
	t.Run("Usuário fora do ranking retorna nil sem erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		leaderboardRepo := mocks.NewMockLeaderboardRepository(ctrl)
		leaderboardRepo.EXPECT().GetByUserID(gomock.Any(), 42).Return(nil, nil)

		service := NewService(leaderboardRepo)

		entry, err := service.GetUserEntry(context.Background(), 42)

		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("Usuário presente no snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		leaderboardRepo := mocks.NewMockLeaderboardRepository(ctrl)
		leaderboardRepo.EXPECT().GetByUserID(gomock.Any(), 42).Return(&domain.LeaderboardEntry{
			UserID:   42,
			Position: 7,
		}, nil)

		service := NewService(leaderboardRepo)

		entry, err := service.GetUserEntry(context.Background(), 42)

		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, 7, entry.Position)
	})
}
