package entity

import "time"

// Entidades de catálogo referenciadas por la orden de venta. Su CRUD vive fuera
// de este núcleo; aquí solo se consultan como lecturas de solo-lectura.

// Organization agrupa todos los datos de una empresa emisora.
type Organization struct {
	ID        string
	Name      string
	TaxID     string // NIT / NRC del contribuyente
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Client es el receptor del documento fiscal.
type Client struct {
	ID             string
	OrganizationID string
	Name           string
	TaxID          string
	Email          string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SalePoint es un punto de venta físico o lógico de la organización.
type SalePoint struct {
	ID             string
	OrganizationID string
	Name           string
	Address        string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DocumentType clasifica el documento fiscal (factura consumidor final,
// crédito fiscal, nota de crédito, ...).
type DocumentType struct {
	ID             string
	OrganizationID string
	Code           string
	Name           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaymentTerm define la condición de pago de la venta (contado, crédito a N días).
type PaymentTerm struct {
	ID             string
	OrganizationID string
	Name           string
	Days           int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaymentForm define el medio de pago (efectivo, tarjeta, transferencia).
type PaymentForm struct {
	ID             string
	OrganizationID string
	Name           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
