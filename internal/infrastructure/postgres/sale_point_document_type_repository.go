package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SalePointDocumentTypeRepository = (*SalePointDocumentTypeRepo)(nil)

// SalePointDocumentTypeRepo implementación del repositorio de contadores de
// correlativos (usable con pool o tx; GetForAllocation y CommitAdvance solo
// tienen sentido dentro de una tx).
type SalePointDocumentTypeRepo struct {
	q Querier
}

// NewSalePointDocumentTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalePointDocumentTypeRepository(q Querier) *SalePointDocumentTypeRepo {
	return &SalePointDocumentTypeRepo{q: q}
}

const counterColumns = `
	id, organization_id, sale_point_id, document_type_id,
	initial_number_authorized, final_number_authorized, latest_number_issued,
	COALESCE(serial, ''), COALESCE(print_custom_format_id, ''),
	created_at, updated_at`

func scanCounter(row pgxScanner) (*entity.SalePointDocumentType, error) {
	var c entity.SalePointDocumentType
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.SalePointID, &c.DocumentTypeID,
		&c.InitialNumberAuthorized, &c.FinalNumberAuthorized, &c.LatestNumberIssued,
		&c.Serial, &c.PrintCustomFormatID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una configuración de correlativo. Devuelve ErrDuplicate si ya
// existe una para la tripleta (punto de venta, tipo de documento, organización).
func (r *SalePointDocumentTypeRepo) Create(ctx context.Context, c *entity.SalePointDocumentType) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO sale_point_document_types (
			id, organization_id, sale_point_id, document_type_id,
			initial_number_authorized, final_number_authorized, latest_number_issued,
			serial, print_custom_format_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(ctx, q,
		c.ID, c.OrganizationID, c.SalePointID, c.DocumentTypeID,
		c.InitialNumberAuthorized, c.FinalNumberAuthorized, c.LatestNumberIssued,
		nullIfEmpty(c.Serial), nullIfEmpty(c.PrintCustomFormatID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale_point_document_type: %w", err)
	}
	return nil
}

func (r *SalePointDocumentTypeRepo) GetByID(ctx context.Context, id, organizationID string) (*entity.SalePointDocumentType, error) {
	q := `SELECT ` + counterColumns + ` FROM sale_point_document_types WHERE id = $1 AND organization_id = $2`
	c, err := scanCounter(r.q.QueryRow(ctx, q, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale_point_document_type: %w", err)
	}
	return c, nil
}

func (r *SalePointDocumentTypeRepo) GetBySalePointAndDocumentType(ctx context.Context, salePointID, documentTypeID, organizationID string) (*entity.SalePointDocumentType, error) {
	q := `SELECT ` + counterColumns + `
		FROM sale_point_document_types
		WHERE sale_point_id = $1 AND document_type_id = $2 AND organization_id = $3`
	c, err := scanCounter(r.q.QueryRow(ctx, q, salePointID, documentTypeID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale_point_document_type by pair: %w", err)
	}
	return c, nil
}

func (r *SalePointDocumentTypeRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.SalePointDocumentType, error) {
	return r.list(ctx, `organization_id = $1`, organizationID)
}

func (r *SalePointDocumentTypeRepo) ListBySalePoint(ctx context.Context, salePointID, organizationID string) ([]*entity.SalePointDocumentType, error) {
	return r.list(ctx, `sale_point_id = $1 AND organization_id = $2`, salePointID, organizationID)
}

func (r *SalePointDocumentTypeRepo) list(ctx context.Context, where string, args ...any) ([]*entity.SalePointDocumentType, error) {
	q := `SELECT ` + counterColumns + ` FROM sale_point_document_types WHERE ` + where + ` ORDER BY created_at`
	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sale_point_document_types: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalePointDocumentType
	for rows.Next() {
		c, err := scanCounter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale_point_document_type: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza el rango autorizado y los datos de impresión. El último
// número emitido no se toca por esta vía: solo avanza con CommitAdvance.
func (r *SalePointDocumentTypeRepo) Update(ctx context.Context, c *entity.SalePointDocumentType) error {
	const q = `
		UPDATE sale_point_document_types
		SET initial_number_authorized = $3, final_number_authorized = $4,
		    serial = $5, print_custom_format_id = $6, updated_at = now()
		WHERE id = $1 AND organization_id = $2`
	tag, err := r.q.Exec(ctx, q,
		c.ID, c.OrganizationID,
		c.InitialNumberAuthorized, c.FinalNumberAuthorized,
		nullIfEmpty(c.Serial), nullIfEmpty(c.PrintCustomFormatID),
	)
	if err != nil {
		return fmt.Errorf("update sale_point_document_type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForAllocation lee la fila del contador adquiriendo su bloqueo de fila.
// Serializa a los emisores concurrentes del mismo par (punto, tipo): el segundo
// queda esperando aquí hasta el commit o rollback del primero.
// Devuelve nil, nil si no hay configuración para la tripleta.
func (r *SalePointDocumentTypeRepo) GetForAllocation(ctx context.Context, salePointID, documentTypeID, organizationID string) (*entity.SalePointDocumentType, error) {
	q := `SELECT ` + counterColumns + `
		FROM sale_point_document_types
		WHERE sale_point_id = $1 AND document_type_id = $2 AND organization_id = $3
		FOR UPDATE`
	c, err := scanCounter(r.q.QueryRow(ctx, q, salePointID, documentTypeID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock sale_point_document_type: %w", err)
	}
	return c, nil
}

// CommitAdvance persiste el avance del contador con una actualización condicionada.
// Si otra asignación ganó la carrera (latest_number_issued ya no es el esperado),
// no afecta filas y devuelve ErrConcurrentModification.
func (r *SalePointDocumentTypeRepo) CommitAdvance(ctx context.Context, id string, expected, candidate int64) error {
	const q = `
		UPDATE sale_point_document_types
		SET latest_number_issued = $3, updated_at = now()
		WHERE id = $1 AND latest_number_issued = $2`
	tag, err := r.q.Exec(ctx, q, id, expected, candidate)
	if err != nil {
		return fmt.Errorf("advance sale_point_document_type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}
