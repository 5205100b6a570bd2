package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/fiscal"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// CreateSaleOrderUseCase es el caso de uso de emisión: valida el request,
// autoriza al usuario, asigna el correlativo, calcula los montos fiscales y
// persiste orden + detalles + avance del contador como una sola unidad.
//
// Secuencia de estados de un request:
// Validating → Authorizing → Allocating → Calculating → Persisting → Committed.
// Cualquier fallo revierte todo: el contador nunca avanza sin orden persistida
// y la orden nunca existe sin su avance de contador confirmado.
type CreateSaleOrderUseCase struct {
	txRunner  SaleTxRunner
	validator *Validator
	allocator CorrelativeAllocator
	log       *logger.Logger
}

// NewCreateSaleOrderUseCase construye el caso de uso.
func NewCreateSaleOrderUseCase(txRunner SaleTxRunner, validator *Validator, log *logger.Logger) *CreateSaleOrderUseCase {
	return &CreateSaleOrderUseCase{txRunner: txRunner, validator: validator, log: log}
}

// Create emite una orden de venta. organizationID y userID vienen del token.
func (uc *CreateSaleOrderUseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateSaleOrderRequest) (*dto.SaleOrderResponse, error) {
	// 1) Validación de referencias y líneas (solo lectura, fuera de la tx).
	lines, err := uc.validator.ValidateRequest(ctx, organizationID, in)
	if err != nil {
		return nil, err
	}

	// 2) Autorización: el usuario debe poder operar el punto de venta.
	if err := uc.validator.Authorize(ctx, userID, in.SalePointID); err != nil {
		return nil, err
	}

	// 3) Fechas de emisión (request gana; por defecto, ahora).
	now := time.Now()
	emissionDate, emissionTime, err := resolveEmission(in, now)
	if err != nil {
		return nil, err
	}

	// 4) Cálculo fiscal por línea y agregados de la orden (puro, determinista).
	lineAmounts := make([]fiscal.LineAmounts, len(lines))
	for i, l := range lines {
		lineAmounts[i] = fiscal.ComputeLine(l.Quantity, l.PriceWithVat)
	}
	totals := fiscal.AggregateOrder(lineAmounts)

	// 5) Entidades: orden con defaulting explícito + detalles.
	order := entity.NewSaleOrder(in.ClientID, in.PaymentTermID, userID, organizationID, now)
	order.ID = uuid.New().String()
	order.SalePointID = in.SalePointID
	order.DocumentTypeID = in.DocumentTypeID
	order.PaymentFormID = in.PaymentFormID
	order.EmissionDate = emissionDate
	order.EmissionTime = emissionTime
	order.Remark = in.Remark
	order.OperationType = in.OperationType
	order.IncomeType = in.IncomeType
	if in.Status != "" {
		if in.Status != entity.OrderStatusIssued && in.Status != entity.OrderStatusVoided {
			return nil, domain.NewValidationError("status", "", "estado desconocido")
		}
		order.Status = in.Status
	}
	order.SubjectAmountSum = totals.SubjectAmountSum
	order.ExemptAmountSum = totals.ExemptAmountSum
	order.NotSubjectAmountSum = totals.NotSubjectAmountSum
	order.CollectedTaxAmountSum = totals.CollectedTaxAmountSum
	order.WithheldTaxAmountSum = totals.WithheldTaxAmountSum
	order.SalesTotal = totals.SalesTotal

	details := make([]*entity.SaleOrderDetail, len(lines))
	for i, l := range lines {
		a := lineAmounts[i]
		details[i] = &entity.SaleOrderDetail{
			ID:                     uuid.New().String(),
			OrderID:                order.ID,
			ArticleID:              l.Article.ID,
			Quantity:               l.Quantity,
			RetailPrice:            l.Article.RetailPrice,
			Price:                  a.Price,
			PriceWithVat:           a.PriceWithVat,
			Cost:                   l.Article.Cost,
			SubjectAmount:          a.SubjectAmount,
			SubjectAmountWithVat:   a.SubjectAmountWithVat,
			ExemptAmount:           a.ExemptAmount,
			NotSubjectAmount:       a.NotSubjectAmount,
			AlternativeName:        l.AlternativeName,
			OrderRelatedDocumentID: l.OrderRelatedDocumentID,
			OrganizationID:         organizationID,
		}
	}

	// 6) Transacción de emisión: asignar correlativo, escribir orden + detalles
	// y confirmar el avance. Un reintento interno si se pierde la carrera del
	// contador; el segundo fallo se devuelve al llamador.
	err = uc.runIssueTx(ctx, organizationID, in, order, details)
	if errors.Is(err, domain.ErrConcurrentModification) {
		uc.log.Warn().
			Str("sale_point_id", in.SalePointID).
			Str("document_type_id", in.DocumentTypeID).
			Msg("carrera por el correlativo perdida, reintentando emisión")
		err = uc.runIssueTx(ctx, organizationID, in, order, details)
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Int64("document_number", order.DocumentNumber).
		Str("sales_total", order.SalesTotal.String()).
		Msg("orden de venta emitida")

	return toOrderResponse(order, details), nil
}

// runIssueTx ejecuta una tentativa completa de emisión dentro de una transacción.
func (uc *CreateSaleOrderUseCase) runIssueTx(
	ctx context.Context,
	organizationID string,
	in dto.CreateSaleOrderRequest,
	order *entity.SaleOrder,
	details []*entity.SaleOrderDetail,
) error {
	return uc.txRunner.RunSale(ctx, func(
		orders repository.SaleOrderRepository,
		counters repository.SalePointDocumentTypeRepository,
	) error {
		counter, candidate, err := uc.allocator.Allocate(ctx, counters, in.SalePointID, in.DocumentTypeID, organizationID)
		if err != nil {
			return err
		}
		order.DocumentNumber = candidate
		order.SalePointDocumentTypeID = counter.ID

		if err := orders.Create(ctx, order); err != nil {
			return fmt.Errorf("persistir orden: %w", err)
		}
		if err := orders.CreateDetails(ctx, details); err != nil {
			return fmt.Errorf("persistir detalles: %w", err)
		}
		return uc.allocator.CommitAdvance(ctx, counters, counter, candidate)
	})
}

// resolveEmission resuelve fecha y hora de emisión desde el request.
func resolveEmission(in dto.CreateSaleOrderRequest, now time.Time) (time.Time, time.Time, error) {
	emissionDate, emissionTime := now, now
	if in.EmissionDate != "" {
		d, err := time.Parse("2006-01-02", in.EmissionDate)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("emissionDate", "", "formato esperado YYYY-MM-DD")
		}
		emissionDate = d
	}
	if in.EmissionTime != "" {
		t, err := time.Parse("15:04:05", in.EmissionTime)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("emissionTime", "", "formato esperado HH:MM:SS")
		}
		emissionTime = t
	}
	return emissionDate, emissionTime, nil
}

func toOrderResponse(order *entity.SaleOrder, details []*entity.SaleOrderDetail) *dto.SaleOrderResponse {
	resp := &dto.SaleOrderResponse{
		ID:                    order.ID,
		DocumentNumber:        order.DocumentNumber,
		Status:                order.Status,
		EmissionDate:          order.EmissionDate.Format("2006-01-02"),
		EmissionTime:          order.EmissionTime.Format("15:04:05"),
		ClientID:              order.ClientID,
		SalePointID:           order.SalePointID,
		DocumentTypeID:        order.DocumentTypeID,
		PaymentTermID:         order.PaymentTermID,
		PaymentFormID:         order.PaymentFormID,
		CreatedBy:             order.CreatedBy,
		OrganizationID:        order.OrganizationID,
		Remark:                order.Remark,
		SubjectAmountSum:      order.SubjectAmountSum,
		ExemptAmountSum:       order.ExemptAmountSum,
		NotSubjectAmountSum:   order.NotSubjectAmountSum,
		CollectedTaxAmountSum: order.CollectedTaxAmountSum,
		WithheldTaxAmountSum:  order.WithheldTaxAmountSum,
		SalesTotal:            order.SalesTotal,
	}
	if order.ReversalDate != nil {
		resp.ReversalDate = order.ReversalDate.Format("2006-01-02")
	}
	resp.Details = make([]dto.SaleOrderDetailResponse, 0, len(details))
	for _, d := range details {
		resp.Details = append(resp.Details, dto.SaleOrderDetailResponse{
			ID:                   d.ID,
			ArticleID:            d.ArticleID,
			Quantity:             d.Quantity,
			RetailPrice:          d.RetailPrice,
			Price:                d.Price,
			PriceWithVat:         d.PriceWithVat,
			SubjectAmount:        d.SubjectAmount,
			SubjectAmountWithVat: d.SubjectAmountWithVat,
			ExemptAmount:         d.ExemptAmount,
			NotSubjectAmount:     d.NotSubjectAmount,
			AlternativeName:      d.AlternativeName,
		})
	}
	return resp
}
