package treasury

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/aggregator"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/detector"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/projector"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/simulator"
	"github.com/gesthostel/tesoreria-backend/internal/usecase/summary"
)

// DiasPrevisionDefecto is the horizon used when the caller does not
// request one. The UI offers 7/15/30/60/90.
const DiasPrevisionDefecto = 30

// ParametrosPrevision carries the caller-configurable knobs of a
// forecast request.
type ParametrosPrevision struct {
	Dias                  int
	IncluirProbabilidades bool
	UmbralAlerta          decimal.Decimal // default 0: any negative balance is a deficit
}

// ResumenPrevision aggregates the full horizon into headline figures.
type ResumenPrevision struct {
	TotalEntradas   decimal.Decimal
	TotalSalidas    decimal.Decimal
	SaldoFinal      decimal.Decimal
	SaldoMinimo     decimal.Decimal
	DiasDescubierto int
}

// PrevisionCompleta is the full payload of a forecast request.
type PrevisionCompleta struct {
	PrevisionDiaria    []domain.PrevisionDia
	AlertasDescubierto []domain.AlertaDescubierto
	Resumen            ResumenPrevision
}

// Service orchestrates the forecasting pipeline: it fetches the current
// balance and the scheduled movements, then hands everything to the
// pure aggregation/projection/detection passes. All derived data is
// request-scoped, computed and discarded; the service holds no state
// between calls and is safe for concurrent use.
type Service struct {
	Fuente domain.FuenteMovimientos
	Cuenta domain.CuentaTesoreria

	log *logrus.Logger
}

// NewService creates a new treasury Service instance.
func NewService(fuente domain.FuenteMovimientos, cuenta domain.CuentaTesoreria, log *logrus.Logger) *Service {
	return &Service{
		Fuente: fuente,
		Cuenta: cuenta,
		log:    log,
	}
}

// GetPrevision computes the daily projection, its overdraft alerts and
// the headline totals over the requested horizon.
// "Today" is snapshotted once at the start of the request so that alert
// dating stays consistent across day boundaries.
func (s *Service) GetPrevision(ctx context.Context, params ParametrosPrevision) (*PrevisionCompleta, error) {
	if params.Dias <= 0 {
		return nil, fmt.Errorf("%w: %d días", domain.ErrHorizonteInvalido, params.Dias)
	}

	hoy := domain.TruncarDia(time.Now())

	saldo, movimientos, err := s.cargarDatos(ctx, hoy, params.Dias)
	if err != nil {
		return nil, err
	}

	agregado, err := aggregator.AgruparPorDia(movimientos, hoy, params.Dias, params.IncluirProbabilidades)
	if err != nil {
		return nil, err
	}

	prevision := projector.Proyectar(agregado, saldo, params.UmbralAlerta)
	alertas := detector.DetectarDescubiertos(prevision, params.UmbralAlerta, hoy)

	s.log.WithFields(logrus.Fields{
		"dias":     params.Dias,
		"alertas":  len(alertas),
		"saldo":    saldo.String(),
		"entradas": len(movimientos),
	}).Debug("previsión de tesorería calculada")

	return &PrevisionCompleta{
		PrevisionDiaria:    prevision,
		AlertasDescubierto: alertas,
		Resumen:            resumirPrevision(prevision, params.UmbralAlerta),
	}, nil
}

// GetResumenEjecutivo derives the dashboard snapshot from a standard
// 30-day projection with the default threshold (zero).
func (s *Service) GetResumenEjecutivo(ctx context.Context) (*domain.ResumenEjecutivo, error) {
	hoy := domain.TruncarDia(time.Now())
	umbral := decimal.Zero

	saldo, movimientos, err := s.cargarDatos(ctx, hoy, DiasPrevisionDefecto)
	if err != nil {
		return nil, err
	}

	agregado, err := aggregator.AgruparPorDia(movimientos, hoy, DiasPrevisionDefecto, false)
	if err != nil {
		return nil, err
	}

	prevision := projector.Proyectar(agregado, saldo, umbral)
	alertas := detector.DetectarDescubiertos(prevision, umbral, hoy)

	resumen := summary.Construir(prevision, alertas, saldo, umbral)
	return &resumen, nil
}

// Simular merges a user-authored scenario into the real pending
// movements and returns the comparative result. Strictly advisory:
// nothing is persisted and alert state is never touched.
func (s *Service) Simular(ctx context.Context, escenario domain.EscenarioSimulacion, dias int) (*domain.ResultadoSimulacion, error) {
	if len(escenario.Movimientos) == 0 {
		return nil, domain.ErrEscenarioVacio
	}
	if dias <= 0 {
		return nil, fmt.Errorf("%w: %d días", domain.ErrHorizonteInvalido, dias)
	}

	hoy := domain.TruncarDia(time.Now())

	saldo, movimientos, err := s.cargarDatos(ctx, hoy, dias)
	if err != nil {
		return nil, err
	}

	resultado, err := simulator.Simular(movimientos, escenario, saldo, decimal.Zero, hoy, dias)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"escenario":       escenario.Nombre,
		"dias":            dias,
		"diasDescubierto": resultado.DiasDescubierto,
		"saldoFinal":      resultado.SaldoFinal.String(),
	}).Debug("simulación de escenario calculada")

	return resultado, nil
}

// cargarDatos fetches the current balance and the pending movements for
// the horizon. This is the only blocking point of a request; a fetch
// failure aborts the whole request rather than projecting partial data.
func (s *Service) cargarDatos(ctx context.Context, hoy time.Time, dias int) (decimal.Decimal, []domain.Movimiento, error) {
	saldo, err := s.Cuenta.SaldoActual(ctx)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("saldo actual: %w", err)
	}

	hasta := hoy.AddDate(0, 0, dias)
	movimientos, err := s.Fuente.MovimientosPrevistos(ctx, hoy, hasta)
	if err != nil {
		return decimal.Zero, nil, err
	}

	return saldo, movimientos, nil
}

func resumirPrevision(prevision []domain.PrevisionDia, umbralAlerta decimal.Decimal) ResumenPrevision {
	resumen := ResumenPrevision{
		TotalEntradas: decimal.Zero,
		TotalSalidas:  decimal.Zero,
	}
	if len(prevision) == 0 {
		return resumen
	}

	resumen.SaldoFinal = prevision[len(prevision)-1].SaldoAcumulado
	resumen.SaldoMinimo = prevision[0].SaldoAcumulado

	for _, dia := range prevision {
		resumen.TotalEntradas = resumen.TotalEntradas.Add(dia.Entradas)
		resumen.TotalSalidas = resumen.TotalSalidas.Add(dia.Salidas)
		if dia.SaldoAcumulado.LessThan(resumen.SaldoMinimo) {
			resumen.SaldoMinimo = dia.SaldoAcumulado
		}
		if dia.AlertaDescubierto {
			resumen.DiasDescubierto++
		}
	}

	return resumen
}
