package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SaleOrderRepository = (*SaleOrderRepo)(nil)

// SaleOrderRepo implementación de SaleOrderRepository (usable con pool o tx).
type SaleOrderRepo struct {
	q Querier
}

// NewSaleOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleOrderRepository(q Querier) *SaleOrderRepo {
	return &SaleOrderRepo{q: q}
}

// Create persiste la cabecera de la orden de venta.
func (r *SaleOrderRepo) Create(ctx context.Context, order *entity.SaleOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO sale_orders (
			id, document_number, emission_date, emission_time, registration_date,
			collection_date, reversal_date, status, remark,
			subject_amount_sum, exempt_amount_sum, not_subject_amount_sum,
			collected_tax_amount_sum, withheld_tax_amount_sum, sales_total,
			client_id, payment_term_id, payment_form_id, document_type_id,
			sale_point_id, sale_point_document_type_id, created_by, organization_id,
			operation_type, income_type,
			transmission_type, control_number, issue_generation_code, void_generation_code,
			is_dte_processing, electronic_signature, issue_received_stamp, void_received_stamp,
			electronic_invoice_url, electronic_invoice_json,
			electronic_invoice_issue_response, electronic_invoice_void_response,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
		        $29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39)`
	_, err := r.q.Exec(ctx, q,
		order.ID, order.DocumentNumber, order.EmissionDate, order.EmissionTime, order.RegistrationDate,
		order.CollectionDate, order.ReversalDate, order.Status, nullIfEmpty(order.Remark),
		order.SubjectAmountSum, order.ExemptAmountSum, order.NotSubjectAmountSum,
		order.CollectedTaxAmountSum, order.WithheldTaxAmountSum, order.SalesTotal,
		order.ClientID, order.PaymentTermID, nullIfEmpty(order.PaymentFormID), order.DocumentTypeID,
		order.SalePointID, order.SalePointDocumentTypeID, order.CreatedBy, order.OrganizationID,
		nullIfEmpty(order.OperationType), nullIfEmpty(order.IncomeType),
		nullIfEmpty(order.TransmissionType), nullIfEmpty(order.ControlNumber),
		nullIfEmpty(order.IssueGenerationCode), nullIfEmpty(order.VoidGenerationCode),
		order.IsDteProcessing, nullIfEmpty(order.ElectronicSignature),
		nullIfEmpty(order.IssueReceivedStamp), nullIfEmpty(order.VoidReceivedStamp),
		nullIfEmpty(order.ElectronicInvoiceURL), nullIfEmpty(order.ElectronicInvoiceJSON),
		nullIfEmpty(order.ElectronicInvoiceIssueResponse), nullIfEmpty(order.ElectronicInvoiceVoidResponse),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sale order number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert sale_order: %w", err)
	}
	return nil
}

// CreateDetails persiste todas las líneas de la orden.
func (r *SaleOrderRepo) CreateDetails(ctx context.Context, details []*entity.SaleOrderDetail) error {
	const q = `
		INSERT INTO sale_order_details (
			id, order_id, article_id, quantity, retail_price, price, price_with_vat, cost,
			subject_amount, subject_amount_with_vat, exempt_amount, not_subject_amount,
			alternative_name, order_related_document_id, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for _, d := range details {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, q,
			d.ID, d.OrderID, d.ArticleID, d.Quantity, d.RetailPrice, d.Price, d.PriceWithVat, d.Cost,
			d.SubjectAmount, d.SubjectAmountWithVat, d.ExemptAmount, d.NotSubjectAmount,
			nullIfEmpty(d.AlternativeName), nullIfEmpty(d.OrderRelatedDocumentID), d.OrganizationID,
		)
		if err != nil {
			return fmt.Errorf("insert sale_order_detail: %w", err)
		}
	}
	return nil
}

const saleOrderColumns = `
	id, document_number, emission_date, emission_time, registration_date,
	collection_date, reversal_date, status, COALESCE(remark, ''),
	subject_amount_sum, exempt_amount_sum, not_subject_amount_sum,
	collected_tax_amount_sum, withheld_tax_amount_sum, sales_total,
	client_id, payment_term_id, COALESCE(payment_form_id, ''), document_type_id,
	sale_point_id, sale_point_document_type_id, created_by, organization_id,
	COALESCE(operation_type, ''), COALESCE(income_type, ''),
	COALESCE(transmission_type, ''), COALESCE(control_number, ''),
	COALESCE(issue_generation_code, ''), COALESCE(void_generation_code, ''),
	is_dte_processing, COALESCE(electronic_signature, ''),
	COALESCE(issue_received_stamp, ''), COALESCE(void_received_stamp, ''),
	COALESCE(electronic_invoice_url, ''), COALESCE(electronic_invoice_json, ''),
	COALESCE(electronic_invoice_issue_response, ''), COALESCE(electronic_invoice_void_response, ''),
	created_at, updated_at`

func scanSaleOrder(row pgxScanner) (*entity.SaleOrder, error) {
	var o entity.SaleOrder
	err := row.Scan(
		&o.ID, &o.DocumentNumber, &o.EmissionDate, &o.EmissionTime, &o.RegistrationDate,
		&o.CollectionDate, &o.ReversalDate, &o.Status, &o.Remark,
		&o.SubjectAmountSum, &o.ExemptAmountSum, &o.NotSubjectAmountSum,
		&o.CollectedTaxAmountSum, &o.WithheldTaxAmountSum, &o.SalesTotal,
		&o.ClientID, &o.PaymentTermID, &o.PaymentFormID, &o.DocumentTypeID,
		&o.SalePointID, &o.SalePointDocumentTypeID, &o.CreatedBy, &o.OrganizationID,
		&o.OperationType, &o.IncomeType,
		&o.TransmissionType, &o.ControlNumber,
		&o.IssueGenerationCode, &o.VoidGenerationCode,
		&o.IsDteProcessing, &o.ElectronicSignature,
		&o.IssueReceivedStamp, &o.VoidReceivedStamp,
		&o.ElectronicInvoiceURL, &o.ElectronicInvoiceJSON,
		&o.ElectronicInvoiceIssueResponse, &o.ElectronicInvoiceVoidResponse,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene una orden por ID dentro de la organización.
func (r *SaleOrderRepo) GetByID(ctx context.Context, id, organizationID string) (*entity.SaleOrder, error) {
	q := `SELECT ` + saleOrderColumns + ` FROM sale_orders WHERE id = $1 AND organization_id = $2`
	order, err := scanSaleOrder(r.q.QueryRow(ctx, q, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale_order: %w", err)
	}
	return order, nil
}

// GetDetailsByOrderID obtiene todas las líneas de una orden.
func (r *SaleOrderRepo) GetDetailsByOrderID(ctx context.Context, orderID string) ([]*entity.SaleOrderDetail, error) {
	const q = `
		SELECT id, order_id, article_id, quantity, retail_price, price, price_with_vat, cost,
		       subject_amount, subject_amount_with_vat, exempt_amount, not_subject_amount,
		       COALESCE(alternative_name, ''), COALESCE(order_related_document_id, ''), organization_id
		FROM sale_order_details WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("list sale_order_details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleOrderDetail
	for rows.Next() {
		var d entity.SaleOrderDetail
		if err := rows.Scan(
			&d.ID, &d.OrderID, &d.ArticleID, &d.Quantity, &d.RetailPrice, &d.Price, &d.PriceWithVat, &d.Cost,
			&d.SubjectAmount, &d.SubjectAmountWithVat, &d.ExemptAmount, &d.NotSubjectAmount,
			&d.AlternativeName, &d.OrderRelatedDocumentID, &d.OrganizationID,
		); err != nil {
			return nil, fmt.Errorf("scan sale_order_detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *SaleOrderRepo) list(ctx context.Context, where string, args ...any) ([]*entity.SaleOrder, error) {
	q := `SELECT ` + saleOrderColumns + ` FROM sale_orders WHERE ` + where +
		` ORDER BY emission_date DESC, document_number DESC`
	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sale_orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleOrder
	for rows.Next() {
		order, err := scanSaleOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale_order: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

func (r *SaleOrderRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.SaleOrder, error) {
	return r.list(ctx, `organization_id = $1`, organizationID)
}

func (r *SaleOrderRepo) ListByClient(ctx context.Context, clientID, organizationID string) ([]*entity.SaleOrder, error) {
	return r.list(ctx, `client_id = $1 AND organization_id = $2`, clientID, organizationID)
}

func (r *SaleOrderRepo) ListBySalePoint(ctx context.Context, salePointID, organizationID string) ([]*entity.SaleOrder, error) {
	return r.list(ctx, `sale_point_id = $1 AND organization_id = $2`, salePointID, organizationID)
}

func (r *SaleOrderRepo) ListByCreator(ctx context.Context, createdBy, organizationID string) ([]*entity.SaleOrder, error) {
	return r.list(ctx, `created_by = $1 AND organization_id = $2`, createdBy, organizationID)
}

// MarkVoided persiste la anulación: estado A y fecha de anulación.
func (r *SaleOrderRepo) MarkVoided(ctx context.Context, id, organizationID string, reversalDate time.Time) error {
	const q = `
		UPDATE sale_orders
		SET status = $3, reversal_date = $4, updated_at = $4
		WHERE id = $1 AND organization_id = $2`
	tag, err := r.q.Exec(ctx, q, id, organizationID, entity.OrderStatusVoided, reversalDate)
	if err != nil {
		return fmt.Errorf("void sale_order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
