// Package fiscal implementa la descomposición tributaria de montos de venta
// para El Salvador: los precios de catálogo incluyen el IVA del 13% y cada
// línea debe reportarse como base gravada + IVA percibido.
//
// Todas las funciones son puras y deterministas: mismos insumos, mismos bytes.
package fiscal

import "github.com/shopspring/decimal"

// Tasa de IVA vigente. Los precios de venta la incluyen.
var VatRate = decimal.RequireFromString("0.13")

// onePlusVat = 1 + tasa, divisor para extraer la base de un precio con IVA.
var onePlusVat = decimal.NewFromInt(1).Add(VatRate)

const (
	// BaseScale es la precisión legal de los montos base (redondeo half-up).
	BaseScale = 4
	// PriceScale es la precisión del precio unitario sin IVA.
	PriceScale = 6
)

// LineAmounts es la descomposición fiscal de una línea de venta.
type LineAmounts struct {
	LineTotal            decimal.Decimal // cantidad × precio con IVA
	Price                decimal.Decimal // precio unitario sin IVA
	PriceWithVat         decimal.Decimal // precio unitario con IVA (el de entrada)
	SubjectAmount        decimal.Decimal // base gravada de la línea (sin IVA)
	SubjectAmountWithVat decimal.Decimal // base gravada con IVA (= LineTotal bajo la política por defecto)
	ExemptAmount         decimal.Decimal
	NotSubjectAmount     decimal.Decimal
	VatAmount            decimal.Decimal // IVA percibido: LineTotal − SubjectAmount
}

// ComputeLine descompone una línea a partir de su cantidad y precio unitario con IVA.
//
//	LineTotal     = quantity × priceWithVat
//	SubjectAmount = LineTotal / 1.13, redondeado a 4 decimales half-up
//	VatAmount     = LineTotal − SubjectAmount
//
// Política por defecto: el 100% de la línea es gravado; exento y no sujeto quedan
// en cero. El precondición quantity > 0 y priceWithVat >= 0 la garantiza el
// validador; esta función no levanta errores de negocio.
func ComputeLine(quantity, priceWithVat decimal.Decimal) LineAmounts {
	lineTotal := quantity.Mul(priceWithVat)
	// DivRound redondea half-away-from-zero, que para montos no negativos
	// coincide con el half-up que exige la normativa.
	baseAmount := lineTotal.DivRound(onePlusVat, BaseScale)
	vatAmount := lineTotal.Sub(baseAmount)

	return LineAmounts{
		LineTotal:            lineTotal,
		Price:                priceWithVat.DivRound(onePlusVat, PriceScale),
		PriceWithVat:         priceWithVat,
		SubjectAmount:        baseAmount,
		SubjectAmountWithVat: lineTotal,
		ExemptAmount:         decimal.Zero,
		NotSubjectAmount:     decimal.Zero,
		VatAmount:            vatAmount,
	}
}

// OrderTotals son los agregados fiscales de una orden completa.
type OrderTotals struct {
	SubjectAmountSum      decimal.Decimal
	ExemptAmountSum       decimal.Decimal
	NotSubjectAmountSum   decimal.Decimal
	CollectedTaxAmountSum decimal.Decimal
	WithheldTaxAmountSum  decimal.Decimal
	SalesTotal            decimal.Decimal // suma de LineTotal (IVA incluido)
}

// AggregateOrder suma aritméticamente las descomposiciones de todas las líneas.
// Sin retenciones, SalesTotal = SubjectAmountSum + ExemptAmountSum +
// NotSubjectAmountSum + CollectedTaxAmountSum.
func AggregateOrder(lines []LineAmounts) OrderTotals {
	totals := OrderTotals{
		SubjectAmountSum:      decimal.Zero,
		ExemptAmountSum:       decimal.Zero,
		NotSubjectAmountSum:   decimal.Zero,
		CollectedTaxAmountSum: decimal.Zero,
		WithheldTaxAmountSum:  decimal.Zero,
		SalesTotal:            decimal.Zero,
	}
	for _, l := range lines {
		totals.SubjectAmountSum = totals.SubjectAmountSum.Add(l.SubjectAmount)
		totals.ExemptAmountSum = totals.ExemptAmountSum.Add(l.ExemptAmount)
		totals.NotSubjectAmountSum = totals.NotSubjectAmountSum.Add(l.NotSubjectAmount)
		totals.CollectedTaxAmountSum = totals.CollectedTaxAmountSum.Add(l.VatAmount)
		totals.SalesTotal = totals.SalesTotal.Add(l.LineTotal)
	}
	return totals
}
