// Package gamification expõe o ranking de contribuidores calculado pelo
// agendador e a posição individual de cada usuário
package gamification

import (
	"context"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/pkg/errors"
)

const defaultLeaderboardLimit = 50

// ErrDatabaseOperation indica falha de acesso ao snapshot do ranking
var ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) (*domain.LeaderboardResponse, error)
	GetUserEntry(ctx context.Context, userID int) (*domain.LeaderboardEntry, error)
}

type Service struct {
	leaderboardRepo repository.LeaderboardRepository
}

func NewService(leaderboardRepo repository.LeaderboardRepository) LeaderboardService {
	return &Service{
		leaderboardRepo: leaderboardRepo,
	}
}

// GetLeaderboard retorna o último snapshot do ranking de contribuidores
func (s *Service) GetLeaderboard(ctx context.Context, limit int) (*domain.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	response, err := s.leaderboardRepo.GetLatest(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, ErrDatabaseOperation.Error())
	}
	return response, nil
}

// GetUserEntry retorna a posição do usuário no último snapshot; nil quando
// o usuário ainda não entrou no ranking
func (s *Service) GetUserEntry(ctx context.Context, userID int) (*domain.LeaderboardEntry, error) {
	entry, err := s.leaderboardRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, ErrDatabaseOperation.Error())
	}
	return entry, nil
}
