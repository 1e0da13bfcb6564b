// Package favoriting implementa a lista de postos favoritos do usuário.
// O serviço abstrai o armazenamento para que o ranking consuma um snapshot
// imutável de favoritos em vez de consultar o banco a cada estágio.
package favoriting

import (
	"context"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/pkg/log"
	"github.com/pkg/errors"
)

// ErrDatabaseOperation indica falha de acesso ao armazenamento de favoritos
var ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")

// FavoriteStore expõe a leitura e a troca de favoritos de um usuário
type FavoriteStore interface {
	Get(ctx context.Context, userID int) (map[string]struct{}, error)
	Toggle(ctx context.Context, userID int, stationID string) (added bool, err error)
}

type Service struct {
	favoriteRepo repository.FavoriteRepository
}

func NewService(favoriteRepo repository.FavoriteRepository) FavoriteStore {
	return &Service{
		favoriteRepo: favoriteRepo,
	}
}

// Get retorna o conjunto de postos favoritados pelo usuário. O mapa
// retornado é um snapshot: mudanças posteriores não o afetam.
func (s *Service) Get(ctx context.Context, userID int) (map[string]struct{}, error) {
	favorites, err := s.favoriteRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, ErrDatabaseOperation.Error())
	}
	return favorites, nil
}

// Toggle alterna o favorito: adiciona se ausente, remove se presente.
// Retorna true quando o posto passou a ser favorito.
func (s *Service) Toggle(ctx context.Context, userID int, stationID string) (bool, error) {
	added, err := s.favoriteRepo.Toggle(ctx, userID, stationID)
	if err != nil {
		return false, errors.Wrap(err, ErrDatabaseOperation.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":    userID,
		"station_id": stationID,
		"added":      added,
	}).Debug("Favorito alternado")

	return added, nil
}
