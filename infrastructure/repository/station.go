// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/fuelrank/fuelrank-api/infrastructure/database/postgres"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/pkg/log"
	"github.com/shopspring/decimal"
)

const (
	stationsTable   = "stations"
	fuelPricesTable = "fuel_prices"
)

type StationRepository interface {
	ListWithPrices(ctx context.Context) ([]*domain.Station, error)
	GetByID(ctx context.Context, id string) (*domain.Station, error)
	Create(ctx context.Context, station *domain.Station) error
	AddPrice(ctx context.Context, stationID string, entry domain.FuelPriceEntry) error
	UpdateSeal(ctx context.Context, id string, seal domain.Seal) error
	IncrementComplaints(ctx context.Context, id string) error
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error
}

type stationRepository struct {
	conn postgres.Queryer
}

func NewStationRepository(conn postgres.Queryer) StationRepository {
	return &stationRepository{
		conn: conn,
	}
}

// ListWithPrices retorna todos os postos com seus preços vigentes embutidos.
// A ordem da coleção não é garantida; quem impõe ordem é o pipeline de ranking.
func (r *stationRepository) ListWithPrices(ctx context.Context) ([]*domain.Station, error) {
	query, args, err := squirrel.
		Select(
			"s.id",
			"s.name",
			"s.brand",
			"s.address",
			"s.lat",
			"s.lng",
			"s.rating",
			"s.review_count",
			"s.complaints_count",
			"s.seal",
			"s.has_promotion",
			"s.promotion_text",
			"s.created_at",
			"s.updated_at",
		).
		From(stationsTable + " s").
		Where(squirrel.Eq{"s.deleted": false}).
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

	stations := make([]*domain.Station, 0)
	byID := make(map[string]*domain.Station)

	for rows.Next() {
		station, err := r.scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear posto: %w", err)
		}

		stations = append(stations, station)
		byID[station.ID] = station
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if err := r.attachCurrentPrices(ctx, byID); err != nil {
		return nil, err
	}

	return stations, nil
}

// attachCurrentPrices busca, para cada posto, no máximo uma linha vigente por
// combustível. O histórico de preços é append-only; aqui vale a linha mais
// recente por (posto, combustível).
func (r *stationRepository) attachCurrentPrices(ctx context.Context, byID map[string]*domain.Station) error {
	if len(byID) == 0 {
		return nil
	}

	query, args, err := squirrel.
		Select(
			"DISTINCT ON (fp.station_id, fp.fuel_type) fp.station_id",
			"fp.fuel_type",
			"fp.price::text",
			"fp.updated_at",
		).
		From(fuelPricesTable + " fp").
		OrderBy("fp.station_id", "fp.fuel_type", "fp.updated_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de preços: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao buscar preços vigentes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			stationID string
			fuelType  string
			rawPrice  string
			updatedAt time.Time
		)

		if err := rows.Scan(&stationID, &fuelType, &rawPrice, &updatedAt); err != nil {
			return fmt.Errorf("erro ao escanear preço: %w", err)
		}

		station, ok := byID[stationID]
		if !ok {
			continue
		}

		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			// Valor malformado é colocado em quarentena na fronteira de
			// ingestão: a linha não entra no pipeline
			log.L.WithFields(log.Fields{
				"station_id": stationID,
				"fuel_type":  fuelType,
				"raw_price":  rawPrice,
			}).Warn("Preço malformado descartado na ingestão")
			continue
		}

		station.Prices = append(station.Prices, domain.FuelPriceEntry{
			FuelType:  domain.FuelType(fuelType),
			Price:     price,
			UpdatedAt: updatedAt,
		})
	}

	return rows.Err()
}

func (r *stationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	query, args, err := squirrel.
		Select(
			"s.id",
			"s.name",
			"s.brand",
			"s.address",
			"s.lat",
			"s.lng",
			"s.rating",
			"s.review_count",
			"s.complaints_count",
			"s.seal",
			"s.has_promotion",
			"s.promotion_text",
			"s.created_at",
			"s.updated_at",
		).
		From(stationsTable + " s").
		Where(squirrel.Eq{"s.id": id, "s.deleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	station, err := r.scanStationRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear posto: %w", err)
	}

	byID := map[string]*domain.Station{station.ID: station}
	if err := r.attachCurrentPrices(ctx, byID); err != nil {
		return nil, err
	}

	return station, nil
}

func (r *stationRepository) Create(ctx context.Context, station *domain.Station) error {
	query, args, err := squirrel.
		Insert(stationsTable).
		Columns("id", "name", "brand", "address", "lat", "lng", "seal", "created_by").
		Values(
			station.ID,
			station.Name,
			station.Brand,
			station.Address,
			station.Lat,
			station.Lng,
			string(station.Seal),
			station.CreatedBy,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir posto: %w", err)
	}

	return nil
}

// AddPrice insere uma nova linha de preço. Linhas anteriores do mesmo
// combustível são preservadas como histórico; a leitura sempre colapsa para
// a mais recente.
func (r *stationRepository) AddPrice(ctx context.Context, stationID string, entry domain.FuelPriceEntry) error {
	query, args, err := squirrel.
		Insert(fuelPricesTable).
		Columns("station_id", "fuel_type", "price", "updated_at").
		Values(stationID, string(entry.FuelType), entry.Price.StringFixed(3), entry.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir preço: %w", err)
	}

	return nil
}

func (r *stationRepository) UpdateSeal(ctx context.Context, id string, seal domain.Seal) error {
	query, args, err := squirrel.
		Update(stationsTable).
		Set("seal", string(seal)).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar selo: %w", err)
	}

	return nil
}

func (r *stationRepository) IncrementComplaints(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Update(stationsTable).
		Set("complaints_count", squirrel.Expr("complaints_count + 1")).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao incrementar denúncias: %w", err)
	}

	return nil
}

func (r *stationRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	query, args, err := squirrel.
		Update(stationsTable).
		Set("rating", rating).
		Set("review_count", reviewCount).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar avaliação: %w", err)
	}

	return nil
}

func (r *stationRepository) scanStation(rows *sql.Rows) (*domain.Station, error) {
	station := &domain.Station{}
	var seal string

	err := rows.Scan(
		&station.ID,
		&station.Name,
		&station.Brand,
		&station.Address,
		&station.Lat,
		&station.Lng,
		&station.Rating,
		&station.ReviewCount,
		&station.ComplaintsCount,
		&seal,
		&station.HasPromotion,
		&station.PromotionText,
		&station.CreatedAt,
		&station.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	station.Seal = domain.Seal(seal)
	return station, nil
}

func (r *stationRepository) scanStationRow(row *sql.Row) (*domain.Station, error) {
	station := &domain.Station{}
	var seal string

	err := row.Scan(
		&station.ID,
		&station.Name,
		&station.Brand,
		&station.Address,
		&station.Lat,
		&station.Lng,
		&station.Rating,
		&station.ReviewCount,
		&station.ComplaintsCount,
		&seal,
		&station.HasPromotion,
		&station.PromotionText,
		&station.CreatedAt,
		&station.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	station.Seal = domain.Seal(seal)
	return station, nil
}
