package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/fuelrank/fuelrank-api/infrastructure/database/postgres"
	"github.com/fuelrank/fuelrank-api/internal/domain"
)

const leaderboardTable = "leaderboard_snapshots"

// LeaderboardRepository persiste os snapshots do ranking de contribuidores
// gerados pelo agendador
type LeaderboardRepository interface {
	GetLatest(ctx context.Context, limit int) (*domain.LeaderboardResponse, error)
	GetByUserID(ctx context.Context, userID int) (*domain.LeaderboardEntry, error)
	SaveSnapshot(ctx context.Context, entries []*domain.LeaderboardEntry) error
}

type leaderboardRepository struct {
	conn postgres.Queryer
}

func NewLeaderboardRepository(conn postgres.Queryer) LeaderboardRepository {
	return &leaderboardRepository{
		conn: conn,
	}
}

func (r *leaderboardRepository) GetLatest(ctx context.Context, limit int) (*domain.LeaderboardResponse, error) {
	builder := squirrel.
		Select(
			"ls.user_id",
			"ls.display_name",
			"ls.points",
			"ls.influence_level",
			"ls.total_refuels",
			"ls.position",
			"ls.position_change",
			"ls.snapshot_at",
		).
		From(leaderboardTable + " ls").
		OrderBy("ls.position ASC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ranking := make([]domain.LeaderboardEntry, 0)
	var lastUpdate time.Time

	for rows.Next() {
		entry := domain.LeaderboardEntry{}
		err := rows.Scan(
			&entry.UserID,
			&entry.DisplayName,
			&entry.Points,
			&entry.InfluenceLevel,
			&entry.TotalRefuels,
			&entry.Position,
			&entry.PositionChange,
			&entry.SnapshotAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		ranking = append(ranking, entry)

		if entry.SnapshotAt.After(lastUpdate) {
			lastUpdate = entry.SnapshotAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if lastUpdate.IsZero() {
		lastUpdate = time.Now()
	}

	return &domain.LeaderboardResponse{
		Ranking:    ranking,
		LastUpdate: lastUpdate,
	}, nil
}

func (r *leaderboardRepository) GetByUserID(ctx context.Context, userID int) (*domain.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select(
			"ls.user_id",
			"ls.display_name",
			"ls.points",
			"ls.influence_level",
			"ls.total_refuels",
			"ls.position",
			"ls.position_change",
			"ls.snapshot_at",
		).
		From(leaderboardTable + " ls").
		Where(squirrel.Eq{"ls.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry := &domain.LeaderboardEntry{}
	row := r.conn.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&entry.UserID,
		&entry.DisplayName,
		&entry.Points,
		&entry.InfluenceLevel,
		&entry.TotalRefuels,
		&entry.Position,
		&entry.PositionChange,
		&entry.SnapshotAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear posição do usuário: %w", err)
	}

	return entry, nil
}

// SaveSnapshot faz upsert do snapshot completo do ranking
func (r *leaderboardRepository) SaveSnapshot(ctx context.Context, entries []*domain.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert(leaderboardTable).
		Columns("user_id", "display_name", "points", "influence_level", "total_refuels", "position", "position_change").
		PlaceholderFormat(squirrel.Dollar)

	for _, entry := range entries {
		builder = builder.Values(
			entry.UserID,
			entry.DisplayName,
			entry.Points,
			entry.InfluenceLevel,
			entry.TotalRefuels,
			entry.Position,
			entry.PositionChange,
		)
	}

	builder = builder.Suffix(`
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			points = EXCLUDED.points,
			influence_level = EXCLUDED.influence_level,
			total_refuels = EXCLUDED.total_refuels,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			snapshot_at = CURRENT_TIMESTAMP
	`)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar snapshot do ranking: %w", err)
	}

	return nil
}
