package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/application/report"
)

// ReportHandler expone los reportes agregados (supervisor o admin).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func reportErr(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// Valuation godoc
// @Summary      Valuación del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	rep, err := h.uc.Valuation(c.Context())
	if err != nil {
		return reportErr(c)
	}
	return c.JSON(rep)
}

// LowStock godoc
// @Summary      Alertas de stock bajo (stock ≤ mínimo)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlert
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	alerts, err := h.uc.LowStock(c.Context())
	if err != nil {
		return reportErr(c)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

// Planning godoc
// @Summary      Vista de planeación de compras
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PlanningLine
// @Router       /api/reports/planning [get]
func (h *ReportHandler) Planning(c *fiber.Ctx) error {
	lines, err := h.uc.Planning(c.Context())
	if err != nil {
		return reportErr(c)
	}
	return c.JSON(fiber.Map{"total": len(lines), "lines": lines})
}
