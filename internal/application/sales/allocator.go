package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// CorrelativeAllocator posee el invariante "a lo sumo una orden de venta tiene
// una tripleta (punto de venta, tipo de documento, número de documento) dada".
//
// Allocate y CommitAdvance deben ejecutarse dentro de la misma transacción: el
// bloqueo de fila que adquiere GetForAllocation serializa a los contendientes
// del mismo contador y se libera al confirmar o revertir la tx. Contadores
// distintos no se bloquean entre sí.
type CorrelativeAllocator struct{}

// Allocate busca el contador de la tripleta, valida el rango restante y
// devuelve el candidato a correlativo sin persistir el avance todavía.
//
// Fallos: ErrCorrelativeConfigMissing si no hay fila de configuración,
// ErrRangeExhausted si el candidato excede el rango autorizado. Ambos son
// definitivos para el request: requieren acción administrativa, no reintento.
func (CorrelativeAllocator) Allocate(
	ctx context.Context,
	counters repository.SalePointDocumentTypeRepository,
	salePointID, documentTypeID, organizationID string,
) (*entity.SalePointDocumentType, int64, error) {
	counter, err := counters.GetForAllocation(ctx, salePointID, documentTypeID, organizationID)
	if err != nil {
		return nil, 0, fmt.Errorf("leer contador de correlativos: %w", err)
	}
	if counter == nil {
		return nil, 0, domain.ErrCorrelativeConfigMissing
	}
	candidate, err := counter.NextNumber()
	if err != nil {
		return nil, 0, err
	}
	return counter, candidate, nil
}

// CommitAdvance persiste el avance del contador una vez que la orden y sus
// detalles fueron escritos en la misma transacción. La actualización es
// condicionada al valor leído (compare-and-swap): si otra asignación ganó la
// carrera devuelve ErrConcurrentModification y el llamador reintenta la
// transacción completa una vez.
func (CorrelativeAllocator) CommitAdvance(
	ctx context.Context,
	counters repository.SalePointDocumentTypeRepository,
	counter *entity.SalePointDocumentType,
	candidate int64,
) error {
	if err := counters.CommitAdvance(ctx, counter.ID, counter.LatestNumberIssued, candidate); err != nil {
		return err
	}
	counter.Advance(candidate)
	return nil
}
