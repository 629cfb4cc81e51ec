package summary

import (
	"github.com/shopspring/decimal"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
)

const (
	offsetSnapshot7  = 7
	offsetSnapshot30 = 30

	// Alerts further out than this are not considered "near term" for
	// the dashboard, regardless of the requested horizon.
	diasAlertaProxima = 30
)

// Construir derives the executive summary from a full-horizon
// projection and its detected alerts.
// Logic:
//  1. Snapshot the accumulated balance at day offsets 7 and 30, clamped
//     to the available horizon (never indexing past the end)
//  2. Keep the near-term alerts (within 30 days), earliest first
//  3. Classify risk from the nearest alert's distance in days
//
// The risk classification is a deterministic, total function of the
// nearest alert's DiasHastaDescubierto:
//   - ninguno:  no alerts in the horizon
//   - bajo:     nearest alert more than 14 days out
//   - moderado: nearest alert 3-14 days out
//   - critico:  nearest alert within 2 days, or the current balance is
//     already below the threshold
func Construir(prevision []domain.PrevisionDia, alertas []domain.AlertaDescubierto, saldoActual, umbralAlerta decimal.Decimal) domain.ResumenEjecutivo {
	return domain.ResumenEjecutivo{
		SaldoActual:       saldoActual,
		Prevision7Dias:    snapshot(prevision, offsetSnapshot7, saldoActual),
		Prevision30Dias:   snapshot(prevision, offsetSnapshot30, saldoActual),
		AlertasProximas:   alertasProximas(alertas),
		RiesgoDescubierto: clasificarRiesgo(alertas, saldoActual, umbralAlerta),
	}
}

// snapshot returns the accumulated balance at the given day offset,
// clamped to the last available day. An empty projection falls back to
// the current balance.
func snapshot(prevision []domain.PrevisionDia, offset int, saldoActual decimal.Decimal) domain.SnapshotPrevision {
	if len(prevision) == 0 {
		return domain.SnapshotPrevision{SaldoFinal: saldoActual}
	}

	if offset >= len(prevision) {
		offset = len(prevision) - 1
	}

	return domain.SnapshotPrevision{SaldoFinal: prevision[offset].SaldoAcumulado}
}

// alertasProximas filters the alerts down to those within the near-term
// window. Detection already emits them earliest first.
func alertasProximas(alertas []domain.AlertaDescubierto) []domain.AlertaDescubierto {
	var proximas []domain.AlertaDescubierto
	for _, alerta := range alertas {
		if alerta.DiasHastaDescubierto <= diasAlertaProxima {
			proximas = append(proximas, alerta)
		}
	}
	return proximas
}

func clasificarRiesgo(alertas []domain.AlertaDescubierto, saldoActual, umbralAlerta decimal.Decimal) domain.Riesgo {
	if saldoActual.LessThan(umbralAlerta) {
		return domain.RiesgoCritico
	}

	if len(alertas) == 0 {
		return domain.RiesgoNinguno
	}

	switch dias := alertas[0].DiasHastaDescubierto; {
	case dias <= 2:
		return domain.RiesgoCritico
	case dias <= 14:
		return domain.RiesgoModerado
	default:
		return domain.RiesgoBajo
	}
}
