package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stockkeeper/retail-api/internal/application/catalog"
	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain"
)

// InventoryHandler maneja correcciones de stock y el historial de
// movimientos. Toda escritura administrativa de stock pasa por aquí: no
// hay edición directa de la cantidad.
type InventoryHandler struct {
	stock    *ledger.UseCase
	products *catalog.ProductUseCase
}

func NewInventoryHandler(stock *ledger.UseCase, products *catalog.ProductUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, products: products}
}

// Correct godoc
// @Summary      Corrección de inventario por conteo físico
// @Description  Sintetiza un movimiento CORRECTION por la diferencia entre el conteo y el stock actual. Diferencia cero o producto sin seguimiento: no-op con applied=false.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CorrectionRequest  true  "Producto, cantidad contada y motivo"
// @Success      200   {object}  dto.CorrectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/corrections [post]
func (h *InventoryHandler) Correct(c *fiber.Ctx) error {
	var in dto.CorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	res, name, err := h.stock.Correct(c.Context(), in.ProductID, in.CountedQty, actorFrom(c), in.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.CorrectionResponse{
		ProductID:   res.ProductID,
		ProductName: name,
		OldStock:    res.StockAfter - res.Delta,
		NewStock:    res.StockAfter,
		Diff:        res.Delta,
		Applied:     res.Applied,
	})
}

// Movements godoc
// @Summary      Historial de movimientos de un producto (más reciente primero)
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200         {object}  dto.MovementListResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.products.Movements(productID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
