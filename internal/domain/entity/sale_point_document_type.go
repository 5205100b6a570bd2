package entity

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// SalePointDocumentType es la autoridad de numeración para un par
// (punto de venta, tipo de documento) dentro de una organización: el rango
// legalmente autorizado y el último correlativo emitido.
// Existe exactamente una fila por tripleta (punto, tipo, organización).
//
// Invariante: InitialNumberAuthorized-1 <= LatestNumberIssued <= FinalNumberAuthorized.
// LatestNumberIssued arranca en InitialNumberAuthorized-1 ("nada emitido todavía").
type SalePointDocumentType struct {
	ID             string
	OrganizationID string
	SalePointID    string
	DocumentTypeID string

	InitialNumberAuthorized int64
	FinalNumberAuthorized   int64 // límite superior inclusivo del rango autorizado
	LatestNumberIssued      int64

	Serial              string // serie/prefijo impreso junto al correlativo
	PrintCustomFormatID string // formato de impresión opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextNumber devuelve el candidato a siguiente correlativo sin avanzar el contador.
// Retorna ErrRangeExhausted si el candidato excede el rango autorizado.
func (c *SalePointDocumentType) NextNumber() (int64, error) {
	candidate := c.LatestNumberIssued + 1
	if candidate > c.FinalNumberAuthorized {
		return 0, domain.ErrRangeExhausted
	}
	return candidate, nil
}

// Advance fija el último número emitido al candidato. El llamador es responsable
// de haber persistido primero la orden que lo consume.
func (c *SalePointDocumentType) Advance(candidate int64) {
	c.LatestNumberIssued = candidate
}

// Validate verifica el invariante de rango de la configuración.
func (c *SalePointDocumentType) Validate() error {
	if c.InitialNumberAuthorized < 1 || c.FinalNumberAuthorized < c.InitialNumberAuthorized {
		return domain.NewValidationError("finalNumberAuthorized", "", "rango autorizado inválido")
	}
	if c.LatestNumberIssued < c.InitialNumberAuthorized-1 || c.LatestNumberIssued > c.FinalNumberAuthorized {
		return domain.NewValidationError("latestNumberIssued", "", "último emitido fuera del rango autorizado")
	}
	return nil
}
