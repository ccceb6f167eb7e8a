package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/application/purchase"
	"github.com/almacen-pro/almacen-api/internal/domain"
)

// PurchaseHandler maneja el flujo completo de compras: solicitudes,
// borradores, aprobación/rechazo y catálogo de proveedores.
type PurchaseHandler struct {
	uc *purchase.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

func mapPurchaseErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "solicitud inválida"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no encontrado o ya resuelto"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// CreateRequest godoc
// @Summary      Crear solicitud de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "product_name y estimated_qty obligatorios"
// @Success      201   {object}  entity.PurchaseRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases/requests [post]
func (h *PurchaseHandler) CreateRequest(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.CreateRequest(c.Context(), in, GetEmail(c))
	if err != nil {
		return mapPurchaseErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// ListRequests godoc
// @Summary      Listar solicitudes de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.PurchaseRequest
// @Router       /api/purchases/requests [get]
func (h *PurchaseHandler) ListRequests(c *fiber.Ctx) error {
	requests, err := h.uc.ListRequests(c.Context())
	if err != nil {
		return mapPurchaseErr(c, err)
	}
	return c.JSON(fiber.Map{"total": len(requests), "requests": requests})
}

// ListProviders godoc
// @Summary      Catálogo de proveedores
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Provider
// @Router       /api/purchases/providers [get]
func (h *PurchaseHandler) ListProviders(c *fiber.Ctx) error {
	providers, err := h.uc.ListProviders(c.Context())
	if err != nil {
		return mapPurchaseErr(c, err)
	}
	return c.JSON(fiber.Map{"total": len(providers), "providers": providers})
}

// SubmitOrder godoc
// @Summary      Enviar orden a aprobación
// @Description  Guarda el borrador Pendiente y notifica al aprobador con el
//
//	enlace de revisión. El correo es parte de la operación: si no
//	sale, la petición falla.
//
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitOrderRequest  true  "orden completa"
// @Success      201   {object}  dto.SubmitOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases/orders/submit [post]
func (h *PurchaseHandler) SubmitOrder(c *fiber.Ctx) error {
	var in dto.SubmitOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draftID, err := h.uc.SubmitForApproval(c.Context(), in.Order, GetEmail(c))
	if err != nil {
		return mapPurchaseErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitOrderResponse{DraftID: draftID})
}

// GetDraft godoc
// @Summary      Consultar borrador pendiente
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/drafts/{id} [get]
func (h *PurchaseHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.uc.FetchDraft(c.Context(), c.Params("id"))
	if err != nil {
		return mapPurchaseErr(c, err)
	}
	return c.JSON(draft)
}

// ApproveDraft godoc
// @Summary      Aprobar borrador y emitir orden
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del borrador"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/drafts/{id}/approve [post]
func (h *PurchaseHandler) ApproveDraft(c *fiber.Ctx) error {
	if err := h.uc.ApproveAndIssueOrder(c.Context(), c.Params("id"), GetEmail(c)); err != nil {
		return mapPurchaseErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "orden aprobada y emitida"})
}

// RejectDraft godoc
// @Summary      Rechazar borrador
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del borrador"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/drafts/{id}/reject [post]
func (h *PurchaseHandler) RejectDraft(c *fiber.Ctx) error {
	if err := h.uc.Reject(c.Context(), c.Params("id")); err != nil {
		return mapPurchaseErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "orden rechazada"})
}

// DecideRequest godoc
// @Summary      Decidir solicitud unitaria (aprobar|rechazar)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la solicitud"
// @Param        body  body  dto.DecisionRequest  true  "action: aprobar|rechazar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/requests/{id}/decision [post]
func (h *PurchaseHandler) DecideRequest(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.DecideLegacyRequest(c.Context(), c.Params("id"), in.Action, GetEmail(c)); err != nil {
		return mapPurchaseErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "solicitud decidida"})
}
