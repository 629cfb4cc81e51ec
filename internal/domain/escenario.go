package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovimientoSimulado is a hypothetical movement authored by the user
// for what-if analysis. It has no identifier because it never exists
// outside the simulation request.
type MovimientoSimulado struct {
	Fecha     time.Time
	Importe   decimal.Decimal
	EsEntrada bool
	Concepto  string
}

// EscenarioSimulacion is a named, user-authored, ephemeral set of
// hypothetical movements. It is a value passed by the caller on every
// simulation call and is never persisted server-side beyond the
// request lifecycle.
type EscenarioSimulacion struct {
	Nombre      string
	Movimientos []MovimientoSimulado
}

// Movimiento converts a simulated movement into a normal movement
// record tagged OrigenSimulado. Dates before hoy are clamped to hoy:
// the simulation always starts from the current real balance, so a
// past-dated hypothetical can only take effect today.
func (m MovimientoSimulado) Movimiento(hoy time.Time) Movimiento {
	fecha := TruncarDia(m.Fecha)
	if fecha.Before(hoy) {
		fecha = hoy
	}

	return Movimiento{
		Fecha:     fecha,
		Importe:   m.Importe,
		EsEntrada: m.EsEntrada,
		Concepto:  m.Concepto,
		Origen:    OrigenSimulado,
	}
}

// ResultadoSimulacion is the comparative result of merging a scenario
// into the baseline projection.
type ResultadoSimulacion struct {
	Prevision        []PrevisionDia
	SaldoFinal       decimal.Decimal
	SaldoMinimo      decimal.Decimal
	FechaSaldoMinimo time.Time // first date at which the minimum occurs
	DiasDescubierto  int       // days with SaldoAcumulado below the threshold
}
