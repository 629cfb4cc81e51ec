package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Origen identifies the ledger a movement was pulled from.
// Immutable once a movement is created.
type Origen string

const (
	OrigenCobroFactura Origen = "cobro_factura"
	OrigenPagoFactura  Origen = "pago_factura"
	OrigenPagare       Origen = "pagare"
	OrigenRecurrente   Origen = "recurrente"
	OrigenSimulado     Origen = "simulado"
)

// Movimiento represents a single scheduled cash event. The amount is
// an ABSOLUTE VALUE (always positive) and the direction is carried
// separately in EsEntrada.
type Movimiento struct {
	ID           *uuid.UUID      // nil for purely simulated movements
	Fecha        time.Time       // day granularity; normalized to midnight UTC
	Importe      decimal.Decimal // absolute value, always positive
	EsEntrada    bool            // true = inflow, false = outflow
	Concepto     string          // display/alert causation only, never computation
	Origen       Origen
	Probabilidad *decimal.Decimal // collection confidence in [0, 1]; nil = certain
}

// Validar ensures the movement adheres to domain rules.
// A single malformed movement fails the whole request rather than
// producing a partially-correct projection, since it would violate the
// running-balance invariant for every subsequent day.
func (m *Movimiento) Validar() error {
	if m.Fecha.IsZero() {
		return fmt.Errorf("%w: fecha sin informar (concepto %q)", ErrMovimientoInvalido, m.Concepto)
	}

	if m.Importe.IsNegative() {
		return fmt.Errorf("%w: importe negativo %s (concepto %q)", ErrMovimientoInvalido, m.Importe, m.Concepto)
	}

	if m.Probabilidad != nil {
		if m.Probabilidad.IsNegative() || m.Probabilidad.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: probabilidad %s fuera de [0, 1] (concepto %q)", ErrMovimientoInvalido, m.Probabilidad, m.Concepto)
		}
	}

	return nil
}

// ImporteEfectivo returns the amount the movement contributes to the
// daily aggregation. With ponderar enabled an uncertain movement is
// weighted by its collection confidence; movements without a
// Probabilidad always count at full value.
func (m *Movimiento) ImporteEfectivo(ponderar bool) decimal.Decimal {
	if ponderar && m.Probabilidad != nil {
		return m.Importe.Mul(*m.Probabilidad)
	}
	return m.Importe
}

// TruncarDia normalizes a timestamp to its calendar day (midnight UTC).
// Time-of-day is not modeled anywhere in the projection.
func TruncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
