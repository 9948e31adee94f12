package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

var _ repository.VatRateRepository = (*VatRateRepo)(nil)

// VatRateRepo implementación del puerto VatRateRepository sobre PostgreSQL.
type VatRateRepo struct {
	q Querier
}

// NewVatRateRepository construye el adaptador de persistencia para tarifas de IVA.
func NewVatRateRepository(q Querier) *VatRateRepo {
	return &VatRateRepo{q: q}
}

// Create persiste una nueva tarifa. Si llega como default, destrona a la anterior.
func (r *VatRateRepo) Create(rate *entity.VatRate) error {
	ctx := context.Background()
	if rate.IsDefault {
		if _, err := r.q.Exec(ctx, `UPDATE vat_rates SET is_default = false WHERE is_default`); err != nil {
			return fmt.Errorf("clear default vat rate: %w", err)
		}
	}
	query := `INSERT INTO vat_rates (id, name, rate, is_default, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, rate.ID, rate.Name, rate.Rate, rate.IsDefault, rate.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vat rate: %w", err)
	}
	return nil
}

// GetByID obtiene una tarifa por ID.
func (r *VatRateRepo) GetByID(id string) (*entity.VatRate, error) {
	query := `SELECT id, name, rate, is_default, created_at FROM vat_rates WHERE id = $1`
	var v entity.VatRate
	err := r.q.QueryRow(context.Background(), query, id).Scan(&v.ID, &v.Name, &v.Rate, &v.IsDefault, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat rate: %w", err)
	}
	return &v, nil
}

// List lista las tarifas de mayor a menor porcentaje.
func (r *VatRateRepo) List() ([]*entity.VatRate, error) {
	query := `SELECT id, name, rate, is_default, created_at FROM vat_rates ORDER BY rate DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list vat rates: %w", err)
	}
	defer rows.Close()

	var rates []*entity.VatRate
	for rows.Next() {
		var v entity.VatRate
		if err := rows.Scan(&v.ID, &v.Name, &v.Rate, &v.IsDefault, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vat rate: %w", err)
		}
		rates = append(rates, &v)
	}
	return rates, rows.Err()
}

// GetDefault devuelve la tarifa marcada como default (nil si no hay).
func (r *VatRateRepo) GetDefault() (*entity.VatRate, error) {
	query := `SELECT id, name, rate, is_default, created_at FROM vat_rates WHERE is_default LIMIT 1`
	var v entity.VatRate
	err := r.q.QueryRow(context.Background(), query).Scan(&v.ID, &v.Name, &v.Rate, &v.IsDefault, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default vat rate: %w", err)
	}
	return &v, nil
}
