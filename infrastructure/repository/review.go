package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/fuelrank/fuelrank-api/infrastructure/database/postgres"
	"github.com/fuelrank/fuelrank-api/internal/domain"
)

const reviewsTable = "reviews"

type ReviewRepository interface {
	Insert(ctx context.Context, review *domain.Review) error
	AggregateForStation(ctx context.Context, stationID string) (avg float64, count int, err error)
	ListByStation(ctx context.Context, stationID string) ([]*domain.Review, error)
}

type reviewRepository struct {
	conn postgres.Queryer
}

func NewReviewRepository(conn postgres.Queryer) ReviewRepository {
	return &reviewRepository{
		conn: conn,
	}
}

func (r *reviewRepository) Insert(ctx context.Context, review *domain.Review) error {
	query, args, err := squirrel.
		Insert(reviewsTable).
		Columns("station_id", "user_id", "rating", "comment", "proof_url", "is_verified").
		Values(review.StationID, review.UserID, review.Rating, review.Comment, review.ProofURL, review.IsVerified).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&review.ID, &review.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir avaliação: %w", err)
	}

	return nil
}

// AggregateForStation calcula a média de notas e o total de avaliações de
// um posto. Posto sem avaliações retorna média zero.
func (r *reviewRepository) AggregateForStation(ctx context.Context, stationID string) (float64, int, error) {
	query, args, err := squirrel.
		Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From(reviewsTable).
		Where(squirrel.Eq{"station_id": stationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var avg float64
	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("erro ao agregar avaliações: %w", err)
	}

	return avg, count, nil
}

func (r *reviewRepository) ListByStation(ctx context.Context, stationID string) ([]*domain.Review, error) {
	query, args, err := squirrel.
		Select("id", "station_id", "user_id", "rating", "comment", "proof_url", "is_verified", "created_at").
		From(reviewsTable).
		Where(squirrel.Eq{"station_id": stationID}).
		OrderBy("created_at DESC").
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

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review := &domain.Review{}
		err := rows.Scan(
			&review.ID,
			&review.StationID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.ProofURL,
			&review.IsVerified,
			&review.CreatedAt,
		)
		if err != nil {
			if err == sql.ErrNoRows {
				return reviews, nil
			}
			return nil, fmt.Errorf("erro ao escanear avaliação: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
