package repository

import "github.com/stockkeeper/retail-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	// MaxSKUPrefix devuelve el mayor prefijo asignado (0 si no hay categorías).
	// La asignación primer-llegado es max+1 y nunca se reutiliza.
	MaxSKUPrefix() (int, error)
}
