package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrevisionDia is one day of the projected horizon. Projections are
// ordered by date ascending with no gaps: days with zero activity still
// produce a record.
//
// Balance invariants:
//   - SaldoDia = Entradas - Salidas
//   - SaldoAcumulado = previous day's SaldoAcumulado + SaldoDia
//     (day 0's previous value is the current real balance)
type PrevisionDia struct {
	Fecha             time.Time
	Entradas          decimal.Decimal
	Salidas           decimal.Decimal
	SaldoDia          decimal.Decimal
	SaldoAcumulado    decimal.Decimal
	Movimientos       []Movimiento // the day's contributing movements, order preserved
	AlertaDescubierto bool         // true iff SaldoAcumulado < alert threshold
}

// AlertaDescubierto is a derived overdraft alert, one per contiguous
// deficit run, keyed to the first day the threshold is breached.
// Suggestions are advisory text only and never alter the projection.
type AlertaDescubierto struct {
	Fecha                time.Time
	DiasHastaDescubierto int
	SaldoPrevisto        decimal.Decimal
	Deficit              decimal.Decimal // threshold - SaldoPrevisto, always >= 0
	MovimientosCausantes []Movimiento
	Sugerencias          []string
}

// Riesgo is the ordinal classification of how imminent the nearest
// deficit is.
type Riesgo string

const (
	RiesgoNinguno  Riesgo = "ninguno"  // no alerts in the horizon
	RiesgoBajo     Riesgo = "bajo"     // nearest alert more than 14 days out
	RiesgoModerado Riesgo = "moderado" // nearest alert 3-14 days out
	RiesgoCritico  Riesgo = "critico"  // alert within 2 days, or balance already below threshold
)

// SnapshotPrevision is a fixed-horizon snapshot of the projection.
type SnapshotPrevision struct {
	SaldoFinal decimal.Decimal
}

// ResumenEjecutivo condenses the full projection for the dashboard.
type ResumenEjecutivo struct {
	SaldoActual       decimal.Decimal
	Prevision7Dias    SnapshotPrevision
	Prevision30Dias   SnapshotPrevision
	AlertasProximas   []AlertaDescubierto
	RiesgoDescubierto Riesgo
}
