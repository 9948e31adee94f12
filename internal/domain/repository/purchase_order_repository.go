package repository

import (
	"time"

	"github.com/stockkeeper/retail-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create persiste cabecera y líneas.
	Create(order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas (nil si no existe).
	GetByID(id string) (*entity.PurchaseOrder, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para que la
	// transición de estado lea el estado persistido sin carreras.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id, status string) error
	// UpdateBooked marca la orden como contabilizada (costos y stock ya
	// transferidos). Se escribe una sola vez, en la primera recepción.
	UpdateBooked(id string, booked bool) error
	// UpdateReceived sella la fecha de recepción. Se escribe una sola
	// vez, al entrar a RECEIVED.
	UpdateReceived(id string, receivedAt time.Time) error
}
