package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/fuelrank/fuelrank-api/infrastructure/database/postgres"
	"github.com/fuelrank/fuelrank-api/internal/domain"
)

const usersTable = "users"

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByPoints(ctx context.Context, limit int) ([]*domain.User, error)
	AddPoints(ctx context.Context, id int, delta int) error
	IncrementRefuels(ctx context.Context, id int) error
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn postgres.Queryer) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

var userColumns = []string{
	"u.id",
	"u.display_name",
	"u.email",
	"u.password_hash",
	"u.active",
	"u.role_id",
	"u.avatar_url",
	"u.points",
	"u.influence_level",
	"u.total_refuels",
	"u.deleted",
	"u.deleted_at",
	"u.created_at",
	"u.updated_at",
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable + " u").
		Where(squirrel.Eq{"u.id": id, "u.deleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	user, err := r.scanUserRow(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable + " u").
		Where(squirrel.Eq{"u.email": email, "u.deleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	user, err := r.scanUserRow(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("display_name", "email", "password_hash", "active", "role_id", "influence_level").
		Values(user.DisplayName, user.Email, user.PasswordHash, user.Active, user.RoleID, user.InfluenceLevel).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		return nil, fmt.Errorf("erro ao inserir usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query, args, err := squirrel.
		Update(usersTable).
		Set("display_name", user.DisplayName).
		Set("email", user.Email).
		Set("active", user.Active).
		Set("role_id", user.RoleID).
		Set("avatar_url", user.AvatarURL).
		Set("deleted", user.Deleted).
		Set("deleted_at", user.DeletedAt).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": user.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	return nil
}

// ListByPoints retorna os usuários ativos ordenados por pontuação decrescente
func (r *userRepository) ListByPoints(ctx context.Context, limit int) ([]*domain.User, error) {
	builder := squirrel.
		Select(userColumns...).
		From(usersTable + " u").
		Where(squirrel.Eq{"u.deleted": false}).
		OrderBy("u.points DESC", "u.id ASC").
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

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// AddPoints soma delta à pontuação do usuário e recalcula o nível de
// influência na mesma instrução
func (r *userRepository) AddPoints(ctx context.Context, id int, delta int) error {
	query := `
		UPDATE users SET
			points = points + $1,
			influence_level = CASE
				WHEN points + $1 >= 1200 THEN 'Embaixador'
				WHEN points + $1 >= 800 THEN 'Especialista'
				WHEN points + $1 >= 500 THEN 'Influente'
				WHEN points + $1 >= 100 THEN 'Colaborador'
				ELSE 'Iniciante'
			END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`

	if _, err := r.conn.ExecContext(ctx, query, delta, id); err != nil {
		return fmt.Errorf("erro ao atualizar pontuação: %w", err)
	}

	return nil
}

func (r *userRepository) IncrementRefuels(ctx context.Context, id int) error {
	query, args, err := squirrel.
		Update(usersTable).
		Set("total_refuels", squirrel.Expr("total_refuels + 1")).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao incrementar abastecimentos: %w", err)
	}

	return nil
}

func (r *userRepository) scanUser(rows *sql.Rows) (*domain.User, error) {
	user := &domain.User{}
	err := rows.Scan(
		&user.ID,
		&user.DisplayName,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.AvatarURL,
		&user.Points,
		&user.InfluenceLevel,
		&user.TotalRefuels,
		&user.Deleted,
		&user.DeletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) scanUserRow(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.DisplayName,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.AvatarURL,
		&user.Points,
		&user.InfluenceLevel,
		&user.TotalRefuels,
		&user.Deleted,
		&user.DeletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
