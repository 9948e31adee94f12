package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/reporting"
	"github.com/stockkeeper/retail-api/internal/domain"
)

// ReportHandler maneja la declaración de IVA y el dashboard.
type ReportHandler struct {
	uc *reporting.UseCase
}

func NewReportHandler(uc *reporting.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// las fechas de período llegan como YYYY-MM-DD; el fin es exclusivo.
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// VATReturn godoc
// @Summary      Declaración de IVA del período
// @Description  Impuesto repercutido por banda (desglose de brutos con redondeo a 4 decimales), impuesto soportado deducible de compras recibidas y saldo a pagar.
// @Tags         reports
// @Produce      json
// @Param        from  query  string  true  "Inicio del período (YYYY-MM-DD, inclusivo)"
// @Param        to    query  string  true  "Fin del período (YYYY-MM-DD, exclusivo)"
// @Success      200   {object}  dto.VATReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/vat [get]
func (h *ReportHandler) VATReturn(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben ser fechas YYYY-MM-DD"})
	}
	out, err := h.uc.VATReturn(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser anterior a to"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// VATReturnPDF godoc
// @Summary      Declaración de IVA del período en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        from  query  string  true  "Inicio del período (YYYY-MM-DD, inclusivo)"
// @Param        to    query  string  true  "Fin del período (YYYY-MM-DD, exclusivo)"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/vat.pdf [get]
func (h *ReportHandler) VATReturnPDF(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben ser fechas YYYY-MM-DD"})
	}
	pdf, err := h.uc.VATReturnPDF(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser anterior a to"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="iva-%s-%s.pdf"`, from.Format("2006-01-02"), to.Format("2006-01-02")))
	return c.Send(pdf)
}

// Dashboard godoc
// @Summary      KPIs del dashboard
// @Description  Ingresos mensuales de los últimos 12 meses, productos por categoría, conteo de stock bajo y órdenes de compra pendientes.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
