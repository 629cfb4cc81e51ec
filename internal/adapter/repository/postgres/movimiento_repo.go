package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
)

// movimientoRepository implements domain.FuenteMovimientos over the
// back-office ledgers: pending invoices, promissory notes and recurring
// entries. Each fetch is a fresh snapshot; nothing is cached.
type movimientoRepository struct {
	db *DB
}

// NewMovimientoRepository creates a new movement source over the ledgers
func NewMovimientoRepository(db *DB) domain.FuenteMovimientos {
	return &movimientoRepository{db: db}
}

// MovimientosPrevistos pulls every scheduled movement with a due date in
// [desde, hasta). The three ledgers are independent tables, so they are
// queried concurrently; any single failure aborts the whole fetch.
func (r *movimientoRepository) MovimientosPrevistos(ctx context.Context, desde, hasta time.Time) ([]domain.Movimiento, error) {
	var (
		mu          sync.Mutex
		movimientos []domain.Movimiento
	)

	recoger := func(movs []domain.Movimiento) {
		mu.Lock()
		defer mu.Unlock()
		movimientos = append(movimientos, movs...)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		movs, err := r.facturasPendientes(gctx, desde, hasta)
		if err != nil {
			return fmt.Errorf("facturas: %w", err)
		}
		recoger(movs)
		return nil
	})

	g.Go(func() error {
		movs, err := r.pagaresPendientes(gctx, desde, hasta)
		if err != nil {
			return fmt.Errorf("pagarés: %w", err)
		}
		recoger(movs)
		return nil
	})

	g.Go(func() error {
		movs, err := r.movimientosRecurrentes(gctx, desde, hasta)
		if err != nil {
			return fmt.Errorf("recurrentes: %w", err)
		}
		recoger(movs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFuenteMovimientos, err)
	}

	return movimientos, nil
}

// facturasPendientes returns pending invoice collections (sales) and
// payments (purchases). The optional collection-confidence column maps
// onto the movement's Probabilidad.
func (r *movimientoRepository) facturasPendientes(ctx context.Context, desde, hasta time.Time) ([]domain.Movimiento, error) {
	query := `
		SELECT id, fecha_vencimiento, importe_pendiente, tipo, descripcion, probabilidad_cobro
		FROM facturas
		WHERE estado = 'pendiente'
		  AND fecha_vencimiento >= $1
		  AND fecha_vencimiento < $2
		ORDER BY fecha_vencimiento
	`

	rows, err := r.db.QueryContext(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending invoices: %w", err)
	}
	defer rows.Close()

	var movimientos []domain.Movimiento
	for rows.Next() {
		var (
			id           uuid.UUID
			fecha        time.Time
			importe      string
			tipo         string
			descripcion  string
			probabilidad *string
		)
		if err := rows.Scan(&id, &fecha, &importe, &tipo, &descripcion, &probabilidad); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}

		mov, err := nuevoMovimiento(id, fecha, importe, descripcion)
		if err != nil {
			return nil, err
		}

		// Sales invoices are collections (inflows), purchase invoices
		// are payments (outflows).
		if tipo == "venta" {
			mov.EsEntrada = true
			mov.Origen = domain.OrigenCobroFactura
		} else {
			mov.Origen = domain.OrigenPagoFactura
		}

		if probabilidad != nil {
			p, err := decimal.NewFromString(*probabilidad)
			if err != nil {
				return nil, fmt.Errorf("failed to parse probabilidad_cobro %q: %w", *probabilidad, err)
			}
			mov.Probabilidad = &p
		}

		movimientos = append(movimientos, mov)
	}

	return movimientos, rows.Err()
}

// pagaresPendientes returns promissory notes maturing inside the window.
func (r *movimientoRepository) pagaresPendientes(ctx context.Context, desde, hasta time.Time) ([]domain.Movimiento, error) {
	query := `
		SELECT id, fecha_vencimiento, importe, es_cobro, concepto
		FROM pagares
		WHERE estado = 'pendiente'
		  AND fecha_vencimiento >= $1
		  AND fecha_vencimiento < $2
		ORDER BY fecha_vencimiento
	`

	rows, err := r.db.QueryContext(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("failed to query promissory notes: %w", err)
	}
	defer rows.Close()

	var movimientos []domain.Movimiento
	for rows.Next() {
		var (
			id       uuid.UUID
			fecha    time.Time
			importe  string
			esCobro  bool
			concepto string
		)
		if err := rows.Scan(&id, &fecha, &importe, &esCobro, &concepto); err != nil {
			return nil, fmt.Errorf("failed to scan promissory note row: %w", err)
		}

		mov, err := nuevoMovimiento(id, fecha, importe, concepto)
		if err != nil {
			return nil, err
		}
		mov.EsEntrada = esCobro
		mov.Origen = domain.OrigenPagare

		movimientos = append(movimientos, mov)
	}

	return movimientos, rows.Err()
}

// movimientosRecurrentes expands the active recurring entries (rent,
// payroll, subscriptions) into one concrete movement per occurrence
// inside the window. Only monthly day-of-month recurrence is modeled;
// a due day past the end of a short month falls on its last day.
func (r *movimientoRepository) movimientosRecurrentes(ctx context.Context, desde, hasta time.Time) ([]domain.Movimiento, error) {
	query := `
		SELECT id, dia_del_mes, importe, es_entrada, concepto
		FROM movimientos_recurrentes
		WHERE activo = TRUE
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring entries: %w", err)
	}
	defer rows.Close()

	var movimientos []domain.Movimiento
	for rows.Next() {
		var (
			id        uuid.UUID
			diaDelMes int
			importe   string
			esEntrada bool
			concepto  string
		)
		if err := rows.Scan(&id, &diaDelMes, &importe, &esEntrada, &concepto); err != nil {
			return nil, fmt.Errorf("failed to scan recurring entry row: %w", err)
		}

		for _, fecha := range vencimientosEnVentana(diaDelMes, desde, hasta) {
			mov, err := nuevoMovimiento(id, fecha, importe, concepto)
			if err != nil {
				return nil, err
			}
			mov.EsEntrada = esEntrada
			mov.Origen = domain.OrigenRecurrente
			movimientos = append(movimientos, mov)
		}
	}

	return movimientos, rows.Err()
}

// nuevoMovimiento builds the common movement fields shared by every ledger.
func nuevoMovimiento(id uuid.UUID, fecha time.Time, importe, concepto string) (domain.Movimiento, error) {
	cantidad, err := decimal.NewFromString(importe)
	if err != nil {
		return domain.Movimiento{}, fmt.Errorf("failed to parse importe %q: %w", importe, err)
	}

	movID := id
	return domain.Movimiento{
		ID:       &movID,
		Fecha:    domain.TruncarDia(fecha),
		Importe:  cantidad,
		Concepto: concepto,
	}, nil
}

// vencimientosEnVentana lists the monthly due dates for a day-of-month
// recurrence inside [desde, hasta).
func vencimientosEnVentana(diaDelMes int, desde, hasta time.Time) []time.Time {
	var fechas []time.Time

	cursor := time.Date(desde.Year(), desde.Month(), 1, 0, 0, 0, 0, time.UTC)
	for cursor.Before(hasta) {
		dia := diaDelMes
		if ultimo := ultimoDiaDelMes(cursor); dia > ultimo {
			dia = ultimo
		}

		vencimiento := time.Date(cursor.Year(), cursor.Month(), dia, 0, 0, 0, 0, time.UTC)
		if !vencimiento.Before(desde) && vencimiento.Before(hasta) {
			fechas = append(fechas, vencimiento)
		}

		cursor = cursor.AddDate(0, 1, 0)
	}

	return fechas
}

func ultimoDiaDelMes(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
