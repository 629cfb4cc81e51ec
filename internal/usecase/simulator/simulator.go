package simulator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/aggregator"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/projector"
)

// Simular grafts a hypothetical scenario onto the baseline movements
// and recomputes the projection from scratch.
// Logic:
//  1. Reject an empty scenario (running it is meaningless) and an
//     invalid horizon before touching anything
//  2. Merge the scenario's movements with the real pending movements,
//     tagged OrigenSimulado; scenario dates before hoy are clamped to
//     hoy since the simulation always starts from the current balance
//  3. Re-run the aggregation and projection passes
//  4. Derive the comparative figures: final balance, minimum balance
//     with its first date, and the count of days below the threshold
//
// Pure and re-entrant: identical scenario and horizon produce identical
// results, and nothing is ever written back to persisted alert state.
// Probability weighting is not applied in simulations; every movement
// counts at full value.
func Simular(reales []domain.Movimiento, escenario domain.EscenarioSimulacion, saldoActual, umbralAlerta decimal.Decimal, hoy time.Time, dias int) (*domain.ResultadoSimulacion, error) {
	if len(escenario.Movimientos) == 0 {
		return nil, domain.ErrEscenarioVacio
	}

	hoy = domain.TruncarDia(hoy)

	// Merge into a fresh slice; the caller's movement records stay untouched.
	combinados := make([]domain.Movimiento, 0, len(reales)+len(escenario.Movimientos))
	combinados = append(combinados, reales...)
	for _, simulado := range escenario.Movimientos {
		combinados = append(combinados, simulado.Movimiento(hoy))
	}

	agregado, err := aggregator.AgruparPorDia(combinados, hoy, dias, false)
	if err != nil {
		return nil, err
	}

	prevision := projector.Proyectar(agregado, saldoActual, umbralAlerta)

	resultado := &domain.ResultadoSimulacion{
		Prevision:   prevision,
		SaldoFinal:  prevision[len(prevision)-1].SaldoAcumulado,
		SaldoMinimo: prevision[0].SaldoAcumulado,
	}
	resultado.FechaSaldoMinimo = prevision[0].Fecha

	for _, dia := range prevision {
		// Strict comparison keeps the first date the minimum occurs.
		if dia.SaldoAcumulado.LessThan(resultado.SaldoMinimo) {
			resultado.SaldoMinimo = dia.SaldoAcumulado
			resultado.FechaSaldoMinimo = dia.Fecha
		}
		if dia.SaldoAcumulado.LessThan(umbralAlerta) {
			resultado.DiasDescubierto++
		}
	}

	return resultado, nil
}
