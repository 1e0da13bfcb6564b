package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/fuelrank/fuelrank-api/infrastructure/database/postgres"
	"github.com/fuelrank/fuelrank-api/internal/domain"
)

const complaintsTable = "complaints"

type ComplaintRepository interface {
	Insert(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id int) (*domain.Complaint, error)
	ListPending(ctx context.Context) ([]*domain.Complaint, error)
	ListApprovedByStation(ctx context.Context, stationID string) ([]*domain.Complaint, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type complaintRepository struct {
	conn postgres.Queryer
}

func NewComplaintRepository(conn postgres.Queryer) ComplaintRepository {
	return &complaintRepository{
		conn: conn,
	}
}

var complaintColumns = []string{
	"c.id",
	"c.protocol",
	"c.station_id",
	"c.reported_by",
	"c.fuel_type",
	"c.refueling_date",
	"c.description",
	"c.proof_url",
	"c.status",
	"c.reviewed_at",
	"c.created_at",
}

func (r *complaintRepository) Insert(ctx context.Context, complaint *domain.Complaint) error {
	query, args, err := squirrel.
		Insert(complaintsTable).
		Columns("protocol", "station_id", "reported_by", "fuel_type", "refueling_date", "description", "proof_url", "status").
		Values(
			complaint.Protocol,
			complaint.StationID,
			complaint.ReportedBy,
			string(complaint.FuelType),
			complaint.RefuelingDate,
			complaint.Description,
			complaint.ProofURL,
			complaint.Status,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&complaint.ID, &complaint.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir denúncia: %w", err)
	}

	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id int) (*domain.Complaint, error) {
	query, args, err := squirrel.
		Select(complaintColumns...).
		From(complaintsTable + " c").
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	complaint := &domain.Complaint{}
	var fuelType string

	row := r.conn.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&complaint.ID,
		&complaint.Protocol,
		&complaint.StationID,
		&complaint.ReportedBy,
		&fuelType,
		&complaint.RefuelingDate,
		&complaint.Description,
		&complaint.ProofURL,
		&complaint.Status,
		&complaint.ReviewedAt,
		&complaint.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear denúncia: %w", err)
	}

	complaint.FuelType = domain.FuelType(fuelType)
	return complaint, nil
}

// ListPending retorna as denúncias aguardando moderação, juntando o nome do
// posto e do denunciante para exibição no painel
func (r *complaintRepository) ListPending(ctx context.Context) ([]*domain.Complaint, error) {
	columns := append(append([]string{}, complaintColumns...), "s.name", "u.display_name")

	query, args, err := squirrel.
		Select(columns...).
		From(complaintsTable + " c").
		Join(stationsTable + " s ON s.id = c.station_id").
		Join(usersTable + " u ON u.id = c.reported_by").
		Where(squirrel.Eq{"c.status": domain.ComplaintPending}).
		OrderBy("c.created_at ASC").
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

	complaints := make([]*domain.Complaint, 0)
	for rows.Next() {
		complaint := &domain.Complaint{}
		var fuelType string

		err := rows.Scan(
			&complaint.ID,
			&complaint.Protocol,
			&complaint.StationID,
			&complaint.ReportedBy,
			&fuelType,
			&complaint.RefuelingDate,
			&complaint.Description,
			&complaint.ProofURL,
			&complaint.Status,
			&complaint.ReviewedAt,
			&complaint.CreatedAt,
			&complaint.StationName,
			&complaint.ReporterName,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear denúncia: %w", err)
		}

		complaint.FuelType = domain.FuelType(fuelType)
		complaints = append(complaints, complaint)
	}

	return complaints, rows.Err()
}

func (r *complaintRepository) ListApprovedByStation(ctx context.Context, stationID string) ([]*domain.Complaint, error) {
	query, args, err := squirrel.
		Select(complaintColumns...).
		From(complaintsTable + " c").
		Where(squirrel.Eq{"c.station_id": stationID, "c.status": domain.ComplaintApproved}).
		OrderBy("c.created_at DESC").
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

	complaints := make([]*domain.Complaint, 0)
	for rows.Next() {
		complaint := &domain.Complaint{}
		var fuelType string

		err := rows.Scan(
			&complaint.ID,
			&complaint.Protocol,
			&complaint.StationID,
			&complaint.ReportedBy,
			&fuelType,
			&complaint.RefuelingDate,
			&complaint.Description,
			&complaint.ProofURL,
			&complaint.Status,
			&complaint.ReviewedAt,
			&complaint.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear denúncia: %w", err)
		}

		complaint.FuelType = domain.FuelType(fuelType)
		complaints = append(complaints, complaint)
	}

	return complaints, rows.Err()
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query, args, err := squirrel.
		Update(complaintsTable).
		Set("status", status).
		Set("reviewed_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar status da denúncia: %w", err)
	}

	return nil
}
