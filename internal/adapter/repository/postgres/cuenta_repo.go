package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gesthostel/tesoreria-backend/internal/domain"
)

// cuentaRepository implements domain.CuentaTesoreria
type cuentaRepository struct {
	db *DB
}

// NewCuentaRepository creates a new treasury account repository
func NewCuentaRepository(db *DB) domain.CuentaTesoreria {
	return &cuentaRepository{db: db}
}

// SaldoActual returns the consolidated balance across the active
// treasury accounts (banks plus cash registers). Amounts come back as
// text so decimal parsing keeps exact cents.
func (r *cuentaRepository) SaldoActual(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(saldo), 0)::text
		FROM cuentas_tesoreria
		WHERE activa = TRUE
	`

	var saldo string
	if err := r.db.QueryRowContext(ctx, query).Scan(&saldo); err != nil {
		return decimal.Zero, fmt.Errorf("%w: saldo actual: %v", domain.ErrFuenteMovimientos, err)
	}

	total, err := decimal.NewFromString(saldo)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse saldo %q: %w", saldo, err)
	}

	return total, nil
}
