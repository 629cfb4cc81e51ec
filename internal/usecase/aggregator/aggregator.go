package aggregator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
)

// DiaAgregado holds one calendar day's movements bucketed by direction.
type DiaAgregado struct {
	Fecha       time.Time
	Entradas    decimal.Decimal
	Salidas     decimal.Decimal
	Movimientos []domain.Movimiento
}

// AgruparPorDia buckets movements by calendar day across the horizon
// [inicio, inicio+dias), ordered by date ascending.
// Logic:
//  1. Validate the horizon and every movement up front (no partial success)
//  2. Initialize one zero-total bucket per day, gap-free
//  3. Sum each movement into its day by direction; movements outside the
//     horizon are dropped
//
// With ponderarProbabilidad enabled, uncertain movements contribute
// their confidence-weighted amount to the totals; the movement record
// itself is kept untouched for display. Input records are never mutated.
// An empty movement list is not an error: it yields zero totals for
// every day.
func AgruparPorDia(movimientos []domain.Movimiento, inicio time.Time, dias int, ponderarProbabilidad bool) ([]DiaAgregado, error) {
	if dias <= 0 {
		return nil, fmt.Errorf("%w: %d días", domain.ErrHorizonteInvalido, dias)
	}

	for i := range movimientos {
		if err := movimientos[i].Validar(); err != nil {
			return nil, err
		}
	}

	inicio = domain.TruncarDia(inicio)

	agregado := make([]DiaAgregado, dias)
	for i := range agregado {
		agregado[i] = DiaAgregado{
			Fecha:    inicio.AddDate(0, 0, i),
			Entradas: decimal.Zero,
			Salidas:  decimal.Zero,
		}
	}

	for _, mov := range movimientos {
		indice := diasDesde(inicio, domain.TruncarDia(mov.Fecha))
		if indice < 0 || indice >= dias {
			continue
		}

		importe := mov.ImporteEfectivo(ponderarProbabilidad)
		dia := &agregado[indice]
		if mov.EsEntrada {
			dia.Entradas = dia.Entradas.Add(importe)
		} else {
			dia.Salidas = dia.Salidas.Add(importe)
		}

		// Within-day order is preserved as received for display; it does
		// not affect the totals.
		dia.Movimientos = append(dia.Movimientos, mov)
	}

	return agregado, nil
}

// diasDesde returns the whole-day offset between two midnight-UTC dates.
func diasDesde(inicio, fecha time.Time) int {
	return int(fecha.Sub(inicio).Hours() / 24)
}
