package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// CounterUseCase administra las configuraciones de correlativo
// (punto de venta × tipo de documento × organización).
type CounterUseCase struct {
	counters      repository.SalePointDocumentTypeRepository
	salePoints    repository.SalePointRepository
	documentTypes repository.DocumentTypeRepository
}

// NewCounterUseCase construye el caso de uso.
func NewCounterUseCase(
	counters repository.SalePointDocumentTypeRepository,
	salePoints repository.SalePointRepository,
	documentTypes repository.DocumentTypeRepository,
) *CounterUseCase {
	return &CounterUseCase{counters: counters, salePoints: salePoints, documentTypes: documentTypes}
}

// Create registra la configuración de numeración para una tripleta. Rechaza la
// segunda configuración para la misma tripleta con ErrDuplicate (constraint
// único en base de datos).
func (uc *CounterUseCase) Create(ctx context.Context, organizationID string, in dto.CreateCounterRequest) (*dto.CounterResponse, error) {
	sp, err := uc.salePoints.GetByID(ctx, in.SalePointID, organizationID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.NewValidationError("salePointId", in.SalePointID, "punto de venta no encontrado")
	}
	ok, err := uc.documentTypes.Exists(ctx, in.DocumentTypeID, organizationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewValidationError("documentTypeId", in.DocumentTypeID, "tipo de documento no encontrado")
	}

	now := time.Now()
	counter := &entity.SalePointDocumentType{
		ID:                      uuid.New().String(),
		OrganizationID:          organizationID,
		SalePointID:             in.SalePointID,
		DocumentTypeID:          in.DocumentTypeID,
		InitialNumberAuthorized: in.InitialNumberAuthorized,
		FinalNumberAuthorized:   in.FinalNumberAuthorized,
		// Nada emitido todavía: el primer correlativo será el inicial autorizado.
		LatestNumberIssued:  in.InitialNumberAuthorized - 1,
		Serial:              in.Serial,
		PrintCustomFormatID: in.PrintCustomFormatID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := counter.Validate(); err != nil {
		return nil, err
	}
	if err := uc.counters.Create(ctx, counter); err != nil {
		return nil, err
	}
	return toCounterResponse(counter), nil
}

// GetByID devuelve una configuración de correlativo.
func (uc *CounterUseCase) GetByID(ctx context.Context, id, organizationID string) (*dto.CounterResponse, error) {
	counter, err := uc.counters.GetByID(ctx, id, organizationID)
	if err != nil {
		return nil, err
	}
	if counter == nil {
		return nil, domain.ErrNotFound
	}
	return toCounterResponse(counter), nil
}

// ListByOrganization lista todas las configuraciones de la organización.
func (uc *CounterUseCase) ListByOrganization(ctx context.Context, organizationID string) ([]dto.CounterResponse, error) {
	counters, err := uc.counters.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return toCounterList(counters), nil
}

// ListBySalePoint lista los tipos de documento configurados para un punto de venta.
func (uc *CounterUseCase) ListBySalePoint(ctx context.Context, salePointID, organizationID string) ([]dto.CounterResponse, error) {
	counters, err := uc.counters.ListBySalePoint(ctx, salePointID, organizationID)
	if err != nil {
		return nil, err
	}
	return toCounterList(counters), nil
}

// Update modifica el rango autorizado o la serie. El último número emitido no
// se toca por esta vía: solo la emisión lo avanza.
func (uc *CounterUseCase) Update(ctx context.Context, id, organizationID string, in dto.UpdateCounterRequest) (*dto.CounterResponse, error) {
	counter, err := uc.counters.GetByID(ctx, id, organizationID)
	if err != nil {
		return nil, err
	}
	if counter == nil {
		return nil, domain.ErrNotFound
	}
	counter.InitialNumberAuthorized = in.InitialNumberAuthorized
	counter.FinalNumberAuthorized = in.FinalNumberAuthorized
	counter.Serial = in.Serial
	counter.PrintCustomFormatID = in.PrintCustomFormatID
	counter.UpdatedAt = time.Now()
	if err := counter.Validate(); err != nil {
		return nil, err
	}
	if err := uc.counters.Update(ctx, counter); err != nil {
		return nil, err
	}
	return toCounterResponse(counter), nil
}

func toCounterResponse(c *entity.SalePointDocumentType) *dto.CounterResponse {
	return &dto.CounterResponse{
		ID:                      c.ID,
		OrganizationID:          c.OrganizationID,
		SalePointID:             c.SalePointID,
		DocumentTypeID:          c.DocumentTypeID,
		InitialNumberAuthorized: c.InitialNumberAuthorized,
		FinalNumberAuthorized:   c.FinalNumberAuthorized,
		LatestNumberIssued:      c.LatestNumberIssued,
		Serial:                  c.Serial,
		PrintCustomFormatID:     c.PrintCustomFormatID,
	}
}

func toCounterList(counters []*entity.SalePointDocumentType) []dto.CounterResponse {
	out := make([]dto.CounterResponse, 0, len(counters))
	for _, c := range counters {
		out = append(out, *toCounterResponse(c))
	}
	return out
}
