package repository

import "github.com/stockkeeper/retail-api/internal/domain/entity"

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
}
