package ranking

import (
	"context"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/pkg/metrics"
)

// RankingService expõe a listagem ranqueada de postos para a camada de API
type RankingService interface {
	RankStations(ctx context.Context, userID int, rankingCtx domain.RankingContext) (*domain.RankingResponse, error)
}

type StationRankingService struct {
	stationRepo  repository.StationRepository
	favoriteRepo repository.FavoriteRepository
	metrics      *metrics.Metrics
}

func NewStationRankingService(
	stationRepo repository.StationRepository,
	favoriteRepo repository.FavoriteRepository,
	m *metrics.Metrics,
) RankingService {
	return &StationRankingService{
		stationRepo:  stationRepo,
		favoriteRepo: favoriteRepo,
		metrics:      m,
	}
}

// RankStations busca a coleção completa de postos com os preços vigentes,
// tira um snapshot dos favoritos do usuário e delega ao pipeline puro.
// A ordenação final é sempre imposta pelo pipeline; a ordem vinda do banco
// não é garantida nem relevante.
func (s *StationRankingService) RankStations(ctx context.Context, userID int, rankingCtx domain.RankingContext) (*domain.RankingResponse, error) {
	stations, err := s.stationRepo.ListWithPrices(ctx)
	if err != nil {
		return nil, err
	}

	favorites := map[string]struct{}{}
	if userID != 0 {
		favorites, err = s.favoriteRepo.GetByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	ranked := Rank(stations, rankingCtx, favorites)

	if s.metrics != nil {
		s.metrics.RecordRankingRun(rankingCtx.FuelFilter, len(ranked))
	}

	return &domain.RankingResponse{
		Stations: ranked,
		Total:    len(ranked),
	}, nil
}
