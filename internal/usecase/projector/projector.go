package projector

import (
	"github.com/shopspring/decimal"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/aggregator"
)

// Proyectar walks the day buckets in chronological order carrying an
// accumulated balance forward, producing one projection record per day.
// Logic:
//   - SaldoDia = Entradas - Salidas
//   - SaldoAcumulado[0] = saldoInicial + SaldoDia[0]
//   - SaldoAcumulado[i] = SaldoAcumulado[i-1] + SaldoDia[i]
//   - AlertaDescubierto iff SaldoAcumulado < umbralAlerta
//
// Pure function: deterministic given identical inputs, used both for
// real projections and for simulations. All arithmetic stays in decimal
// so cumulative sums never drift; any display rounding belongs to the
// formatting layer, never in here.
func Proyectar(dias []aggregator.DiaAgregado, saldoInicial, umbralAlerta decimal.Decimal) []domain.PrevisionDia {
	prevision := make([]domain.PrevisionDia, 0, len(dias))
	acumulado := saldoInicial

	for _, dia := range dias {
		saldoDia := dia.Entradas.Sub(dia.Salidas)
		acumulado = acumulado.Add(saldoDia)

		prevision = append(prevision, domain.PrevisionDia{
			Fecha:             dia.Fecha,
			Entradas:          dia.Entradas,
			Salidas:           dia.Salidas,
			SaldoDia:          saldoDia,
			SaldoAcumulado:    acumulado,
			Movimientos:       dia.Movimientos,
			AlertaDescubierto: acumulado.LessThan(umbralAlerta),
		})
	}

	return prevision
}
