package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
)

var hoy = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func previsionCreciente(dias int) []domain.PrevisionDia {
	prevision := make([]domain.PrevisionDia, dias)
	for i := range prevision {
		prevision[i] = domain.PrevisionDia{
			Fecha:          hoy.AddDate(0, 0, i),
			SaldoAcumulado: decimal.NewFromInt(int64(1000 + i)),
		}
	}
	return prevision
}

func alertaEnDias(dias int) domain.AlertaDescubierto {
	return domain.AlertaDescubierto{
		Fecha:                hoy.AddDate(0, 0, dias),
		DiasHastaDescubierto: dias,
		SaldoPrevisto:        decimal.NewFromInt(-100),
		Deficit:              decimal.NewFromInt(100),
	}
}

func TestConstruir_SnapshotsAtFixedOffsets(t *testing.T) {
	prevision := previsionCreciente(31)

	resumen := Construir(prevision, nil, decimal.NewFromInt(1000), decimal.Zero)

	assert.True(t, resumen.Prevision7Dias.SaldoFinal.Equal(decimal.NewFromInt(1007)))
	assert.True(t, resumen.Prevision30Dias.SaldoFinal.Equal(decimal.NewFromInt(1030)))
	assert.True(t, resumen.SaldoActual.Equal(decimal.NewFromInt(1000)))
}

func TestConstruir_SnapshotClampsToShortHorizon(t *testing.T) {
	// A 7-day projection cannot index day 30; both snapshots clamp to
	// the last available day instead of raising.
	prevision := previsionCreciente(7)

	resumen := Construir(prevision, nil, decimal.NewFromInt(1000), decimal.Zero)

	assert.True(t, resumen.Prevision30Dias.SaldoFinal.Equal(decimal.NewFromInt(1006)))
}

func TestConstruir_EmptyProjectionFallsBackToCurrentBalance(t *testing.T) {
	resumen := Construir(nil, nil, decimal.NewFromInt(500), decimal.Zero)

	assert.True(t, resumen.Prevision7Dias.SaldoFinal.Equal(decimal.NewFromInt(500)))
	assert.True(t, resumen.Prevision30Dias.SaldoFinal.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, domain.RiesgoNinguno, resumen.RiesgoDescubierto)
}

func TestClasificarRiesgo_Ninguno(t *testing.T) {
	resumen := Construir(previsionCreciente(30), nil, decimal.NewFromInt(1000), decimal.Zero)
	assert.Equal(t, domain.RiesgoNinguno, resumen.RiesgoDescubierto)
}

func TestClasificarRiesgo_Bajo(t *testing.T) {
	alertas := []domain.AlertaDescubierto{alertaEnDias(20)}
	resumen := Construir(previsionCreciente(30), alertas, decimal.NewFromInt(1000), decimal.Zero)
	assert.Equal(t, domain.RiesgoBajo, resumen.RiesgoDescubierto, "an alert more than 14 days out is low risk")
}

func TestClasificarRiesgo_Moderado(t *testing.T) {
	for _, dias := range []int{3, 7, 14} {
		alertas := []domain.AlertaDescubierto{alertaEnDias(dias)}
		resumen := Construir(previsionCreciente(30), alertas, decimal.NewFromInt(1000), decimal.Zero)
		assert.Equal(t, domain.RiesgoModerado, resumen.RiesgoDescubierto, "alert at %d days should be moderate", dias)
	}
}

func TestClasificarRiesgo_CriticoPorAlertaInminente(t *testing.T) {
	for _, dias := range []int{0, 1, 2} {
		alertas := []domain.AlertaDescubierto{alertaEnDias(dias)}
		resumen := Construir(previsionCreciente(30), alertas, decimal.NewFromInt(1000), decimal.Zero)
		assert.Equal(t, domain.RiesgoCritico, resumen.RiesgoDescubierto, "alert at %d days should be critical", dias)
	}
}

func TestClasificarRiesgo_CriticoPorSaldoActualBajoUmbral(t *testing.T) {
	// Already below the threshold today is critical even with no alerts
	// inside the horizon.
	resumen := Construir(previsionCreciente(30), nil, decimal.NewFromInt(-500), decimal.Zero)
	assert.Equal(t, domain.RiesgoCritico, resumen.RiesgoDescubierto)
}

func TestConstruir_NearTermAlertsOnly(t *testing.T) {
	alertas := []domain.AlertaDescubierto{
		alertaEnDias(5),
		alertaEnDias(25),
		alertaEnDias(45), // beyond the near-term window
	}

	resumen := Construir(previsionCreciente(60), alertas, decimal.NewFromInt(1000), decimal.Zero)

	require.Len(t, resumen.AlertasProximas, 2)
	assert.Equal(t, 5, resumen.AlertasProximas[0].DiasHastaDescubierto, "earliest alert first")
	assert.Equal(t, 25, resumen.AlertasProximas[1].DiasHastaDescubierto)
}
