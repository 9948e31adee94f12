package repository

import "github.com/stockkeeper/retail-api/internal/domain/entity"

// VatRateRepository puerto de persistencia para tarifas de IVA.
type VatRateRepository interface {
	Create(rate *entity.VatRate) error
	GetByID(id string) (*entity.VatRate, error)
	List() ([]*entity.VatRate, error)
	// GetDefault devuelve la tarifa marcada is_default (nil si no hay).
	GetDefault() (*entity.VatRate, error)
}
