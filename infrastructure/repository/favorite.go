package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/fuelrank/fuelrank-api/infrastructure/database/postgres"
)

const favoritesTable = "favorites"

// FavoriteRepository persiste o conjunto de postos favoritados por usuário.
// O pipeline de ranking só recebe snapshots; nunca toca neste repositório.
type FavoriteRepository interface {
	GetByUser(ctx context.Context, userID int) (map[string]struct{}, error)
	Toggle(ctx context.Context, userID int, stationID string) (added bool, err error)
}

type favoriteRepository struct {
	conn postgres.Queryer
}

func NewFavoriteRepository(conn postgres.Queryer) FavoriteRepository {
	return &favoriteRepository{
		conn: conn,
	}
}

// GetByUser retorna um snapshot consistente do conjunto de favoritos
func (r *favoriteRepository) GetByUser(ctx context.Context, userID int) (map[string]struct{}, error) {
	query, args, err := squirrel.
		Select("station_id").
		From(favoritesTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	favorites := make(map[string]struct{})
	for rows.Next() {
		var stationID string
		if err := rows.Scan(&stationID); err != nil {
			return nil, fmt.Errorf("erro ao escanear favorito: %w", err)
		}
		favorites[stationID] = struct{}{}
	}

	return favorites, rows.Err()
}

// Toggle favorita ou desfavorita o posto. Retorna true quando o posto
// passou a ser favorito.
func (r *favoriteRepository) Toggle(ctx context.Context, userID int, stationID string) (bool, error) {
	deleteQuery, args, err := squirrel.
		Delete(favoritesTable).
		Where(squirrel.Eq{"user_id": userID, "station_id": stationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, deleteQuery, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover favorito: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar remoção de favorito: %w", err)
	}

	// Já era favorito: o toggle removeu
	if affected > 0 {
		return false, nil
	}

	insertQuery, args, err := squirrel.
		Insert(favoritesTable).
		Columns("user_id", "station_id").
		Values(userID, stationID).
		Suffix("ON CONFLICT (user_id, station_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, insertQuery, args...); err != nil {
		return false, fmt.Errorf("erro ao inserir favorito: %w", err)
	}

	return true, nil
}
