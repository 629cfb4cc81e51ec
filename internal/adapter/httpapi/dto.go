package httpapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/treasury"
)

// Dates travel as "2006-01-02": the projection has day granularity and
// the UI never needs a time component. Amounts travel as decimal
// strings to keep exact cents across the wire.
const formatoFecha = "2006-01-02"

type movimientoDTO struct {
	ID           string `json:"id,omitempty"`
	Fecha        string `json:"fecha"`
	Importe      string `json:"importe"`
	EsEntrada    bool   `json:"esEntrada"`
	Concepto     string `json:"concepto"`
	Origen       string `json:"origen"`
	Probabilidad string `json:"probabilidad,omitempty"`
}

type previsionDiaDTO struct {
	Fecha             string          `json:"fecha"`
	Entradas          string          `json:"entradas"`
	Salidas           string          `json:"salidas"`
	SaldoDia          string          `json:"saldoDia"`
	SaldoAcumulado    string          `json:"saldoAcumulado"`
	Movimientos       []movimientoDTO `json:"movimientos"`
	AlertaDescubierto bool            `json:"alertaDescubierto"`
}

type alertaDTO struct {
	Fecha                string          `json:"fecha"`
	DiasHastaDescubierto int             `json:"diasHastaDescubierto"`
	SaldoPrevisto        string          `json:"saldoPrevisto"`
	Deficit              string          `json:"deficit"`
	MovimientosCausantes []movimientoDTO `json:"movimientosCausantes"`
	Sugerencias          []string        `json:"sugerencias"`
}

type resumenPrevisionDTO struct {
	TotalEntradas   string `json:"totalEntradas"`
	TotalSalidas    string `json:"totalSalidas"`
	SaldoFinal      string `json:"saldoFinal"`
	SaldoMinimo     string `json:"saldoMinimo"`
	DiasDescubierto int    `json:"diasDescubierto"`
}

type previsionCompletaDTO struct {
	PrevisionDiaria    []previsionDiaDTO   `json:"previsionDiaria"`
	AlertasDescubierto []alertaDTO         `json:"alertasDescubierto"`
	Resumen            resumenPrevisionDTO `json:"resumen"`
}

type snapshotDTO struct {
	SaldoFinal string `json:"saldoFinal"`
}

type resumenEjecutivoDTO struct {
	SaldoActual       string      `json:"saldoActual"`
	Prevision7Dias    snapshotDTO `json:"prevision7Dias"`
	Prevision30Dias   snapshotDTO `json:"prevision30Dias"`
	AlertasProximas   []alertaDTO `json:"alertasProximas"`
	RiesgoDescubierto string      `json:"riesgoDescubierto"`
}

type resultadoSimulacionDTO struct {
	Prevision        []previsionDiaDTO `json:"prevision"`
	SaldoFinal       string            `json:"saldoFinal"`
	SaldoMinimo      string            `json:"saldoMinimo"`
	FechaSaldoMinimo string            `json:"fechaSaldoMinimo"`
	DiasDescubierto  int               `json:"diasDescubierto"`
}

type movimientoSimuladoRequest struct {
	Fecha     string `json:"fecha"`
	Importe   string `json:"importe"`
	EsEntrada bool   `json:"esEntrada"`
	Concepto  string `json:"concepto"`
}

type escenarioRequest struct {
	Nombre      string                      `json:"nombre"`
	Movimientos []movimientoSimuladoRequest `json:"movimientos"`
}

type simulacionRequest struct {
	Escenario escenarioRequest `json:"escenario"`
	Dias      int              `json:"dias"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toMovimientoDTO(m domain.Movimiento) movimientoDTO {
	dto := movimientoDTO{
		Fecha:     m.Fecha.Format(formatoFecha),
		Importe:   m.Importe.String(),
		EsEntrada: m.EsEntrada,
		Concepto:  m.Concepto,
		Origen:    string(m.Origen),
	}
	if m.ID != nil {
		dto.ID = m.ID.String()
	}
	if m.Probabilidad != nil {
		dto.Probabilidad = m.Probabilidad.String()
	}
	return dto
}

func toMovimientosDTO(movs []domain.Movimiento) []movimientoDTO {
	dtos := make([]movimientoDTO, 0, len(movs))
	for _, m := range movs {
		dtos = append(dtos, toMovimientoDTO(m))
	}
	return dtos
}

func toPrevisionDTO(prevision []domain.PrevisionDia) []previsionDiaDTO {
	dtos := make([]previsionDiaDTO, 0, len(prevision))
	for _, dia := range prevision {
		dtos = append(dtos, previsionDiaDTO{
			Fecha:             dia.Fecha.Format(formatoFecha),
			Entradas:          dia.Entradas.String(),
			Salidas:           dia.Salidas.String(),
			SaldoDia:          dia.SaldoDia.String(),
			SaldoAcumulado:    dia.SaldoAcumulado.String(),
			Movimientos:       toMovimientosDTO(dia.Movimientos),
			AlertaDescubierto: dia.AlertaDescubierto,
		})
	}
	return dtos
}

func toAlertasDTO(alertas []domain.AlertaDescubierto) []alertaDTO {
	dtos := make([]alertaDTO, 0, len(alertas))
	for _, alerta := range alertas {
		dtos = append(dtos, alertaDTO{
			Fecha:                alerta.Fecha.Format(formatoFecha),
			DiasHastaDescubierto: alerta.DiasHastaDescubierto,
			SaldoPrevisto:        alerta.SaldoPrevisto.String(),
			Deficit:              alerta.Deficit.String(),
			MovimientosCausantes: toMovimientosDTO(alerta.MovimientosCausantes),
			Sugerencias:          alerta.Sugerencias,
		})
	}
	return dtos
}

func toPrevisionCompletaDTO(p *treasury.PrevisionCompleta) previsionCompletaDTO {
	return previsionCompletaDTO{
		PrevisionDiaria:    toPrevisionDTO(p.PrevisionDiaria),
		AlertasDescubierto: toAlertasDTO(p.AlertasDescubierto),
		Resumen: resumenPrevisionDTO{
			TotalEntradas:   p.Resumen.TotalEntradas.String(),
			TotalSalidas:    p.Resumen.TotalSalidas.String(),
			SaldoFinal:      p.Resumen.SaldoFinal.String(),
			SaldoMinimo:     p.Resumen.SaldoMinimo.String(),
			DiasDescubierto: p.Resumen.DiasDescubierto,
		},
	}
}

func toResumenEjecutivoDTO(r *domain.ResumenEjecutivo) resumenEjecutivoDTO {
	return resumenEjecutivoDTO{
		SaldoActual:       r.SaldoActual.String(),
		Prevision7Dias:    snapshotDTO{SaldoFinal: r.Prevision7Dias.SaldoFinal.String()},
		Prevision30Dias:   snapshotDTO{SaldoFinal: r.Prevision30Dias.SaldoFinal.String()},
		AlertasProximas:   toAlertasDTO(r.AlertasProximas),
		RiesgoDescubierto: string(r.RiesgoDescubierto),
	}
}

func toResultadoSimulacionDTO(r *domain.ResultadoSimulacion) resultadoSimulacionDTO {
	return resultadoSimulacionDTO{
		Prevision:        toPrevisionDTO(r.Prevision),
		SaldoFinal:       r.SaldoFinal.String(),
		SaldoMinimo:      r.SaldoMinimo.String(),
		FechaSaldoMinimo: r.FechaSaldoMinimo.Format(formatoFecha),
		DiasDescubierto:  r.DiasDescubierto,
	}
}

func (req simulacionRequest) escenario() (domain.EscenarioSimulacion, error) {
	escenario := domain.EscenarioSimulacion{
		Nombre:      req.Escenario.Nombre,
		Movimientos: make([]domain.MovimientoSimulado, 0, len(req.Escenario.Movimientos)),
	}

	for _, mov := range req.Escenario.Movimientos {
		fecha, err := time.Parse(formatoFecha, mov.Fecha)
		if err != nil {
			return domain.EscenarioSimulacion{}, fmt.Errorf("fecha %q: %w", mov.Fecha, err)
		}

		importe, err := decimal.NewFromString(mov.Importe)
		if err != nil {
			return domain.EscenarioSimulacion{}, fmt.Errorf("importe %q: %w", mov.Importe, err)
		}

		escenario.Movimientos = append(escenario.Movimientos, domain.MovimientoSimulado{
			Fecha:     fecha,
			Importe:   importe,
			EsEntrada: mov.EsEntrada,
			Concepto:  mov.Concepto,
		})
	}

	return escenario, nil
}
