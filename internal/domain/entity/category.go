package entity

import "time"

// Category agrupa productos y es dueña del prefijo numérico de SKU.
// El prefijo se asigna una sola vez (max existente + 1) y nunca se reutiliza,
// incluso si la categoría queda sin productos.
type Category struct {
	ID        string
	Name      string
	SKUPrefix int // prefijo permanente para generación de SKU (1, 2, 3...)
	CreatedAt time.Time
}
