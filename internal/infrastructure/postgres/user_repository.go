package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el repositorio.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, organization_id, email, password_hash, name, role, status, created_at, updated_at`

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.OrganizationID, &u.Email, &u.PasswordHash,
		&u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO users (id, organization_id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, q,
		user.ID, user.OrganizationID, user.Email, user.PasswordHash,
		user.Name, user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmailAndOrganization(ctx context.Context, email, organizationID string) (*entity.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND organization_id = $2`
	u, err := scanUser(r.pool.QueryRow(ctx, q, email, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email and org: %w", err)
	}
	return u, nil
}

// HasSalePointAccess indica si el usuario puede operar el punto de venta.
// Los admin tienen acceso implícito a todos los puntos de su organización;
// para el resto se consulta la relación user_sale_points.
func (r *UserRepo) HasSalePointAccess(ctx context.Context, userID, salePointID string) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1
			FROM users u
			JOIN sale_points sp ON sp.organization_id = u.organization_id
			WHERE u.id = $1 AND sp.id = $2 AND u.role = $3
		) OR EXISTS(
			SELECT 1 FROM user_sale_points
			WHERE user_id = $1 AND sale_point_id = $2
		)`
	var has bool
	if err := r.pool.QueryRow(ctx, q, userID, salePointID, entity.RoleAdmin).Scan(&has); err != nil {
		return false, fmt.Errorf("check sale point access: %w", err)
	}
	return has, nil
}

// GrantSalePointAccess registra el acceso (usado por el seed y administración).
func (r *UserRepo) GrantSalePointAccess(ctx context.Context, userID, salePointID string) error {
	const q = `
		INSERT INTO user_sale_points (user_id, sale_point_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, sale_point_id) DO NOTHING`
	if _, err := r.pool.Exec(ctx, q, userID, salePointID); err != nil {
		return fmt.Errorf("grant sale point access: %w", err)
	}
	return nil
}
