package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/fuelrank/fuelrank-api/infrastructure/database/postgres"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/pkg/log"
	"github.com/shopspring/decimal"
)

const refuelsTable = "refuels"

type RefuelRepository interface {
	Insert(ctx context.Context, refuel *domain.Refuel) error
	ListByUser(ctx context.Context, userID int) ([]*domain.Refuel, error)
}

type refuelRepository struct {
	conn postgres.Queryer
}

func NewRefuelRepository(conn postgres.Queryer) RefuelRepository {
	return &refuelRepository{
		conn: conn,
	}
}

func (r *refuelRepository) Insert(ctx context.Context, refuel *domain.Refuel) error {
	query, args, err := squirrel.
		Insert(refuelsTable).
		Columns("user_id", "station_id", "fuel_type", "liters", "total_paid", "date").
		Values(
			refuel.UserID,
			refuel.StationID,
			string(refuel.FuelType),
			refuel.Liters.StringFixed(2),
			refuel.TotalPaid.StringFixed(2),
			refuel.Date,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&refuel.ID, &refuel.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir abastecimento: %w", err)
	}

	return nil
}

// ListByUser retorna os abastecimentos do usuário, mais recentes primeiro,
// com o nome do posto embutido
func (r *refuelRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Refuel, error) {
	query, args, err := squirrel.
		Select(
			"rf.id",
			"rf.user_id",
			"rf.station_id",
			"s.name",
			"rf.fuel_type",
			"rf.liters::text",
			"rf.total_paid::text",
			"rf.date",
			"rf.created_at",
		).
		From(refuelsTable + " rf").
		Join(stationsTable + " s ON s.id = rf.station_id").
		Where(squirrel.Eq{"rf.user_id": userID}).
		OrderBy("rf.date DESC").
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

	refuels := make([]*domain.Refuel, 0)
	for rows.Next() {
		refuel := &domain.Refuel{}
		var (
			fuelType  string
			rawLiters string
			rawTotal  string
			date      time.Time
		)

		err := rows.Scan(
			&refuel.ID,
			&refuel.UserID,
			&refuel.StationID,
			&refuel.StationName,
			&fuelType,
			&rawLiters,
			&rawTotal,
			&date,
			&refuel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear abastecimento: %w", err)
		}

		liters, err := decimal.NewFromString(rawLiters)
		if err != nil {
			log.L.WithField("refuel_id", refuel.ID).Warn("Litragem malformada descartada na ingestão")
			continue
		}

		total, err := decimal.NewFromString(rawTotal)
		if err != nil {
			log.L.WithField("refuel_id", refuel.ID).Warn("Valor pago malformado descartado na ingestão")
			continue
		}

		refuel.FuelType = domain.FuelType(fuelType)
		refuel.Liters = liters
		refuel.TotalPaid = total
		refuel.Date = date
		refuels = append(refuels, refuel)
	}

	return refuels, rows.Err()
}
