package domain

import "errors"

// Caller-input errors are rejected before any computation begins; a
// source fetch failure aborts the whole request. There is no
// partial-success mode anywhere in the projection pipeline.
var (
	// ErrHorizonteInvalido is returned for a horizon of zero or fewer days.
	ErrHorizonteInvalido = errors.New("horizonte de previsión inválido")

	// ErrEscenarioVacio is returned when a simulation scenario carries no movements.
	ErrEscenarioVacio = errors.New("el escenario no contiene movimientos")

	// ErrMovimientoInvalido is returned for malformed movement amounts or dates.
	ErrMovimientoInvalido = errors.New("movimiento inválido")

	// ErrFuenteMovimientos wraps failures of the external movement source.
	ErrFuenteMovimientos = errors.New("fallo al obtener movimientos previstos")
)
