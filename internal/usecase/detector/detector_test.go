package detector

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
)

var hoy = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func previsionPlana(saldos ...int64) []domain.PrevisionDia {
	prevision := make([]domain.PrevisionDia, len(saldos))
	for i, saldo := range saldos {
		prevision[i] = domain.PrevisionDia{
			Fecha:          hoy.AddDate(0, 0, i),
			Entradas:       decimal.Zero,
			Salidas:        decimal.Zero,
			SaldoAcumulado: decimal.NewFromInt(saldo),
		}
	}
	return prevision
}

func TestDetectarDescubiertos_SingleBreach(t *testing.T) {
	// 1000 for three days, then a 1200€ payment sinks the balance to
	// -200 for the rest of the horizon: exactly one alert, on day 3.
	prevision := previsionPlana(1000, 1000, 1000, -200, -200, -200, -200)
	pago := domain.Movimiento{Fecha: hoy.AddDate(0, 0, 3), Importe: decimal.NewFromInt(1200), Concepto: "Pago nóminas"}
	prevision[3].Salidas = pago.Importe
	prevision[3].Movimientos = []domain.Movimiento{pago}

	alertas := DetectarDescubiertos(prevision, decimal.Zero, hoy)

	require.Len(t, alertas, 1)
	alerta := alertas[0]
	assert.Equal(t, hoy.AddDate(0, 0, 3), alerta.Fecha, "alert is keyed to the first breaching day")
	assert.Equal(t, 3, alerta.DiasHastaDescubierto)
	assert.True(t, alerta.SaldoPrevisto.Equal(decimal.NewFromInt(-200)))
	assert.True(t, alerta.Deficit.Equal(decimal.NewFromInt(200)), "deficit should be threshold - balance = 200")
	require.Len(t, alerta.MovimientosCausantes, 1)
	assert.Equal(t, "Pago nóminas", alerta.MovimientosCausantes[0].Concepto)
}

func TestDetectarDescubiertos_NoReAlertWhileBelowThreshold(t *testing.T) {
	// One continuous deficit run reports once, no matter how long it is
	// or how much deeper it gets.
	prevision := previsionPlana(100, -50, -300, -800, -10)

	alertas := DetectarDescubiertos(prevision, decimal.Zero, hoy)

	require.Len(t, alertas, 1)
	assert.Equal(t, 1, alertas[0].DiasHastaDescubierto)
}

func TestDetectarDescubiertos_NewAlertAfterRecovery(t *testing.T) {
	// Recover above the threshold, then breach again: two alerts, each
	// keyed to its own first day.
	prevision := previsionPlana(100, -50, 200, 300, -400, -400)

	alertas := DetectarDescubiertos(prevision, decimal.Zero, hoy)

	require.Len(t, alertas, 2)
	assert.Equal(t, 1, alertas[0].DiasHastaDescubierto)
	assert.Equal(t, 4, alertas[1].DiasHastaDescubierto)
}

func TestDetectarDescubiertos_CustomThreshold(t *testing.T) {
	// With a 500€ safety threshold, 400 is already a deficit of 100.
	prevision := previsionPlana(900, 400)

	alertas := DetectarDescubiertos(prevision, decimal.NewFromInt(500), hoy)

	require.Len(t, alertas, 1)
	assert.True(t, alertas[0].Deficit.Equal(decimal.NewFromInt(100)))
}

func TestDetectarDescubiertos_NoAlertsAboveThreshold(t *testing.T) {
	prevision := previsionPlana(100, 0, 50, 1000)

	alertas := DetectarDescubiertos(prevision, decimal.Zero, hoy)

	assert.Empty(t, alertas, "a balance at or above the threshold never alerts")
}

func TestGenerarSugerencias_DominantOutflowSuggestsRescheduling(t *testing.T) {
	grande := domain.Movimiento{Fecha: hoy, Importe: decimal.NewFromInt(900), Concepto: "Pago maquinaria"}
	pequeno := domain.Movimiento{Fecha: hoy, Importe: decimal.NewFromInt(100), Concepto: "Pago suministros"}
	dia := domain.PrevisionDia{
		Fecha:       hoy,
		Salidas:     decimal.NewFromInt(1000),
		Movimientos: []domain.Movimiento{pequeno, grande},
	}

	sugerencias := generarSugerencias(dia, decimal.NewFromInt(500))

	require.NotEmpty(t, sugerencias)
	assert.Contains(t, sugerencias[0], "Pago maquinaria", "the dominant payment should be named")
	assert.Contains(t, sugerencias[0], "Aplazar")
}

func TestGenerarSugerencias_BalancedOutflowsFallBackToGenericHints(t *testing.T) {
	dia := domain.PrevisionDia{
		Fecha:   hoy,
		Salidas: decimal.NewFromInt(1000),
		Movimientos: []domain.Movimiento{
			{Fecha: hoy, Importe: decimal.NewFromInt(500), Concepto: "Pago A"},
			{Fecha: hoy, Importe: decimal.NewFromInt(500), Concepto: "Pago B"},
		},
	}

	sugerencias := generarSugerencias(dia, decimal.NewFromInt(200))

	// No single payment dominates, so only the generic liquidity hints
	// remain.
	require.Len(t, sugerencias, 2)
	assert.Contains(t, sugerencias[0], "línea de crédito")
	assert.Contains(t, sugerencias[1], "Adelantar cobros")
}

func TestGenerarSugerencias_InflowOnlyDayStillGetsGenericHints(t *testing.T) {
	// A breach caused purely by earlier days: the breaching day may have
	// no outflows at all.
	dia := domain.PrevisionDia{
		Fecha:   hoy,
		Salidas: decimal.Zero,
		Movimientos: []domain.Movimiento{
			{Fecha: hoy, Importe: decimal.NewFromInt(50), EsEntrada: true, Concepto: "Cobro menor"},
		},
	}

	sugerencias := generarSugerencias(dia, decimal.NewFromInt(300))

	require.Len(t, sugerencias, 2)
}
