package detector

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
)

// DetectarDescubiertos scans the day-ordered projection for threshold
// breaches and emits one alert per contiguous deficit run, keyed to the
// first day the threshold is crossed.
// Logic:
//  1. Each time SaldoAcumulado crosses from >= umbral to < umbral a new
//     alert opens with the breaching day's movements as causation
//  2. While the balance stays below the threshold no further alert is
//     emitted for that run
//  3. Once the balance recovers, a later breach starts a new alert
//
// Pure function over the projection; alert state is never persisted.
func DetectarDescubiertos(prevision []domain.PrevisionDia, umbralAlerta decimal.Decimal, hoy time.Time) []domain.AlertaDescubierto {
	var alertas []domain.AlertaDescubierto
	hoy = domain.TruncarDia(hoy)

	enDescubierto := false
	for _, dia := range prevision {
		if !dia.SaldoAcumulado.LessThan(umbralAlerta) {
			enDescubierto = false
			continue
		}

		if enDescubierto {
			continue
		}
		enDescubierto = true

		deficit := umbralAlerta.Sub(dia.SaldoAcumulado)
		alertas = append(alertas, domain.AlertaDescubierto{
			Fecha:                dia.Fecha,
			DiasHastaDescubierto: int(dia.Fecha.Sub(hoy).Hours() / 24),
			SaldoPrevisto:        dia.SaldoAcumulado,
			Deficit:              deficit,
			MovimientosCausantes: dia.Movimientos,
			Sugerencias:          generarSugerencias(dia, deficit),
		})
	}

	return alertas
}

// generarSugerencias builds advisory remediation hints for a breaching
// day. If a single large outflow dominates the day, suggest
// rescheduling it; otherwise fall back to generic liquidity actions.
// Failure to produce a suggestion is not an error: the list may be
// empty, and nothing here alters the projection.
func generarSugerencias(dia domain.PrevisionDia, deficit decimal.Decimal) []string {
	var sugerencias []string

	if pago := pagoDominante(dia); pago != nil {
		sugerencias = append(sugerencias, fmt.Sprintf(
			"Aplazar o renegociar el pago %q de %s € previsto para el %s",
			pago.Concepto, pago.Importe.StringFixed(2), dia.Fecha.Format("02/01/2006")))
	}

	sugerencias = append(sugerencias,
		fmt.Sprintf("Disponer de la línea de crédito para cubrir un déficit de %s €", deficit.StringFixed(2)),
		fmt.Sprintf("Adelantar cobros pendientes con vencimiento anterior al %s", dia.Fecha.Format("02/01/2006")))

	return sugerencias
}

// pagoDominante returns the day's largest outflow when it alone exceeds
// half of the day's total outflows, nil otherwise.
func pagoDominante(dia domain.PrevisionDia) *domain.Movimiento {
	if dia.Salidas.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	var mayor *domain.Movimiento
	for i := range dia.Movimientos {
		mov := &dia.Movimientos[i]
		if mov.EsEntrada {
			continue
		}
		if mayor == nil || mov.Importe.GreaterThan(mayor.Importe) {
			mayor = mov
		}
	}

	if mayor == nil {
		return nil
	}

	mitad := dia.Salidas.Div(decimal.NewFromInt(2))
	if mayor.Importe.GreaterThan(mitad) {
		return mayor
	}
	return nil
}
