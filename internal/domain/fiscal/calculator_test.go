package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestComputeLine_VectorExacto valida la descomposición contra un vector
// calculado a mano con la normativa salvadoreña (IVA 13% incluido en el precio):
//
//	cantidad 2 × $11.30 → LineTotal = $22.60
//	base = 22.60 / 1.13 = $20.00 (4 decimales, half-up)
//	IVA  = 22.60 − 20.00 = $2.60
//
// Si alguien toca la tasa, el divisor o el redondeo, este test falla de inmediato.
// ──────────────────────────────────────────────────────────────────────────────
func TestComputeLine_VectorExacto(t *testing.T) {
	qty := decimal.RequireFromString("2")
	price := decimal.RequireFromString("11.30")

	line := fiscal.ComputeLine(qty, price)

	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("22.60")), "LineTotal = %s", line.LineTotal)
	assert.True(t, line.SubjectAmount.Equal(decimal.RequireFromString("20.00")), "SubjectAmount = %s", line.SubjectAmount)
	assert.True(t, line.VatAmount.Equal(decimal.RequireFromString("2.60")), "VatAmount = %s", line.VatAmount)
	assert.True(t, line.SubjectAmountWithVat.Equal(line.LineTotal))
	assert.True(t, line.ExemptAmount.IsZero())
	assert.True(t, line.NotSubjectAmount.IsZero())
}

// TestComputeLine_BaseMasIvaEsTotal verifica la propiedad base + IVA == total
// para varios precios, incluidos los que no dividen exacto entre 1.13.
func TestComputeLine_BaseMasIvaEsTotal(t *testing.T) {
	cases := []struct {
		qty, price string
	}{
		{"1", "0.01"},
		{"1", "1.00"},
		{"3", "0.33"},
		{"2.5", "11.30"},
		{"7", "19.99"},
		{"100", "123.45"},
		{"1", "0"},
	}
	for _, c := range cases {
		line := fiscal.ComputeLine(decimal.RequireFromString(c.qty), decimal.RequireFromString(c.price))
		sum := line.SubjectAmount.Add(line.VatAmount)
		assert.True(t, sum.Equal(line.LineTotal),
			"qty=%s price=%s: base %s + iva %s != total %s", c.qty, c.price, line.SubjectAmount, line.VatAmount, line.LineTotal)
		assert.True(t, line.LineTotal.Equal(decimal.RequireFromString(c.qty).Mul(decimal.RequireFromString(c.price))))
	}
}

// TestComputeLine_RedondeoHalfUp fija el comportamiento del redondeo a 4 decimales.
// 1.00 / 1.13 = 0.884955... → 0.8850 (el quinto decimal 5 sube).
func TestComputeLine_RedondeoHalfUp(t *testing.T) {
	line := fiscal.ComputeLine(decimal.NewFromInt(1), decimal.RequireFromString("1.00"))
	require.True(t, line.SubjectAmount.Equal(decimal.RequireFromString("0.8850")),
		"base de $1.00 debe ser 0.8850, fue %s", line.SubjectAmount)
}

// TestComputeLine_Determinista comprueba que dos llamadas con el mismo insumo
// producen exactamente los mismos montos (sin estado oculto).
func TestComputeLine_Determinista(t *testing.T) {
	qty := decimal.RequireFromString("3.75")
	price := decimal.RequireFromString("42.99")

	a := fiscal.ComputeLine(qty, price)
	b := fiscal.ComputeLine(qty, price)

	assert.Equal(t, a.SubjectAmount.String(), b.SubjectAmount.String())
	assert.Equal(t, a.VatAmount.String(), b.VatAmount.String())
	assert.Equal(t, a.LineTotal.String(), b.LineTotal.String())
	assert.Equal(t, a.Price.String(), b.Price.String())
}

// TestAggregateOrder_SumaLineas verifica que los agregados de la orden son la
// suma aritmética de las líneas y que SalesTotal == Σ LineTotal.
func TestAggregateOrder_SumaLineas(t *testing.T) {
	lines := []fiscal.LineAmounts{
		fiscal.ComputeLine(decimal.RequireFromString("2"), decimal.RequireFromString("11.30")),
		fiscal.ComputeLine(decimal.RequireFromString("1"), decimal.RequireFromString("5.65")),
		fiscal.ComputeLine(decimal.RequireFromString("4"), decimal.RequireFromString("0.99")),
	}

	totals := fiscal.AggregateOrder(lines)

	var wantSales, wantSubject, wantVat decimal.Decimal
	for _, l := range lines {
		wantSales = wantSales.Add(l.LineTotal)
		wantSubject = wantSubject.Add(l.SubjectAmount)
		wantVat = wantVat.Add(l.VatAmount)
	}
	assert.True(t, totals.SalesTotal.Equal(wantSales))
	assert.True(t, totals.SubjectAmountSum.Equal(wantSubject))
	assert.True(t, totals.CollectedTaxAmountSum.Equal(wantVat))
	assert.True(t, totals.ExemptAmountSum.IsZero())
	assert.True(t, totals.NotSubjectAmountSum.IsZero())
	assert.True(t, totals.WithheldTaxAmountSum.IsZero())

	// Invariante del documento: sin retenciones,
	// salesTotal = afecto + exento + no sujeto + IVA.
	recomposed := totals.SubjectAmountSum.
		Add(totals.ExemptAmountSum).
		Add(totals.NotSubjectAmountSum).
		Add(totals.CollectedTaxAmountSum).
		Sub(totals.WithheldTaxAmountSum)
	assert.True(t, recomposed.Equal(totals.SalesTotal),
		"recomposición %s != salesTotal %s", recomposed, totals.SalesTotal)
}

// TestAggregateOrder_Vacia devuelve ceros para una orden sin líneas.
func TestAggregateOrder_Vacia(t *testing.T) {
	totals := fiscal.AggregateOrder(nil)
	assert.True(t, totals.SalesTotal.IsZero())
	assert.True(t, totals.SubjectAmountSum.IsZero())
	assert.True(t, totals.CollectedTaxAmountSum.IsZero())
}
