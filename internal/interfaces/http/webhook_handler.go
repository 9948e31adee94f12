package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/webhook"
	"github.com/stockkeeper/retail-api/internal/domain"
)

// HeaderWebhookSignature cabecera con la firma HMAC-SHA256 en base64 del
// cuerpo crudo.
const HeaderWebhookSignature = "X-Webhook-Hmac-Sha256"

// WebhookHandler recibe notificaciones de la plataforma de comercio.
type WebhookHandler struct {
	uc *webhook.UseCase
}

func NewWebhookHandler(uc *webhook.UseCase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

// OrdersPaid godoc
// @Summary      Notificación orders-paid de la tienda online
// @Description  Verifica la firma HMAC-SHA256 sobre el cuerpo crudo y registra la venta web. Idempotente por id de pedido: entregas repetidas devuelven duplicate=true con la venta original.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Hmac-Sha256  header  string  true  "Firma base64 del cuerpo"
// @Param        body  body  dto.OrderPaidPayload  true  "Pedido pagado"
// @Success      200   {object}  dto.WebhookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /webhooks/shop/orders-paid [post]
func (h *WebhookHandler) OrdersPaid(c *fiber.Ctx) error {
	// la firma se calcula sobre los bytes crudos, nunca sobre el JSON
	// re-serializado
	out, err := h.uc.ProcessOrderPaid(c.Context(), c.Body(), c.Get(HeaderWebhookSignature))
	if err != nil {
		if errors.Is(err, domain.ErrSignatureMismatch) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SIGNATURE_MISMATCH", Message: "firma inválida"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "payload inválido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado por SKU ni EAN"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
