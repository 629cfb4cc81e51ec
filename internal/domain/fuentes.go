package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FuenteMovimientos defines the interface to the external ledgers the
// forecast is built from. Implementations pull pending invoice
// collections/payments, promissory notes and recurring entries for a
// date window and normalize each into a Movimiento.
//
// This is the only blocking point of a forecast request; everything
// downstream of the fetch is pure computation.
type FuenteMovimientos interface {
	// MovimientosPrevistos returns every scheduled movement with a date
	// in [desde, hasta). Results are read-only snapshots fetched fresh
	// per request; nothing is cached across calls.
	MovimientosPrevistos(ctx context.Context, desde, hasta time.Time) ([]Movimiento, error)
}

// CuentaTesoreria exposes the current real balance the projection
// starts from.
type CuentaTesoreria interface {
	// SaldoActual returns the consolidated balance of the treasury
	// accounts at request time.
	SaldoActual(ctx context.Context) (decimal.Decimal, error)
}
