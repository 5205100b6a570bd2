package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// Estados de una orden de venta.
const (
	OrderStatusIssued = "E" // Emitida
	OrderStatusVoided = "A" // Anulada
)

// SaleOrder representa un documento fiscal emitido (o anulado) en un punto de venta.
// Los campos DTE (número de control, códigos de generación, firma, sellos, payloads)
// son pass-through: los llena un integrador externo, nunca este núcleo.
type SaleOrder struct {
	ID string

	// Documento
	DocumentNumber   int64      // correlativo asignado por el asignador
	EmissionDate     time.Time  // fecha de emisión
	EmissionTime     time.Time  // hora de emisión
	RegistrationDate time.Time  // fecha de registro contable
	CollectionDate   *time.Time // fecha de cobro
	ReversalDate     *time.Time // fecha de anulación
	Status           string     // E: Emitida, A: Anulada
	Remark           string

	// Totales fiscales
	SubjectAmountSum      decimal.Decimal // suma de montos afectos (sin IVA)
	ExemptAmountSum       decimal.Decimal
	NotSubjectAmountSum   decimal.Decimal
	CollectedTaxAmountSum decimal.Decimal // IVA percibido
	WithheldTaxAmountSum  decimal.Decimal // retenciones
	SalesTotal            decimal.Decimal // total de la venta (IVA incluido)

	// Referencias
	ClientID                string
	PaymentTermID           string
	PaymentFormID           string // opcional
	DocumentTypeID          string
	SalePointID             string
	SalePointDocumentTypeID string // configuración de correlativo usada
	CreatedBy               string
	OrganizationID          string

	// Declaración de impuestos
	OperationType string // 1: Gravada, 2: No gravada/exenta, 3: Excluida, 4: Mixta, ...
	IncomeType    string

	// DTE (Documento Tributario Electrónico), opacos para este núcleo
	TransmissionType               string
	ControlNumber                  string
	IssueGenerationCode            string
	VoidGenerationCode             string
	IsDteProcessing                bool
	ElectronicSignature            string
	IssueReceivedStamp             string
	VoidReceivedStamp              string
	ElectronicInvoiceURL           string
	ElectronicInvoiceJSON          string
	ElectronicInvoiceIssueResponse string
	ElectronicInvoiceVoidResponse  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSaleOrder construye una orden con los valores por defecto explícitos:
// estado Emitida, fechas de emisión/registro al momento actual si no se indican,
// y montos en cero. El defaulting vive aquí y no en hooks de persistencia para
// que sea visible y testeable.
func NewSaleOrder(clientID, paymentTermID, createdBy, organizationID string, now time.Time) *SaleOrder {
	return &SaleOrder{
		ClientID:              clientID,
		PaymentTermID:         paymentTermID,
		CreatedBy:             createdBy,
		OrganizationID:        organizationID,
		Status:                OrderStatusIssued,
		EmissionDate:          now,
		EmissionTime:          now,
		RegistrationDate:      now,
		SubjectAmountSum:      decimal.Zero,
		ExemptAmountSum:       decimal.Zero,
		NotSubjectAmountSum:   decimal.Zero,
		CollectedTaxAmountSum: decimal.Zero,
		WithheldTaxAmountSum:  decimal.Zero,
		SalesTotal:            decimal.Zero,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Void marca la orden como anulada y fija la fecha de anulación.
// Los montos no se tocan: la anulación es un cambio de estado, no una reversión contable.
func (o *SaleOrder) Void(reversalDate time.Time) error {
	if o.Status != OrderStatusIssued {
		return domain.ErrConflict
	}
	o.Status = OrderStatusVoided
	o.ReversalDate = &reversalDate
	o.UpdatedAt = reversalDate
	return nil
}
