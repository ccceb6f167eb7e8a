package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/almacen-api/internal/application/auth"
	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/domain"
)

// AuthHandler maneja solicitud y validación de magic links.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// genericLinkMessage respuesta única del endpoint de emisión: no distingue
// emails registrados de no registrados.
const genericLinkMessage = "Si el correo está registrado, recibirás un enlace de acceso en unos minutos."

// RequestLink godoc
// @Summary      Solicitar enlace de acceso
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RequestLinkRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/request-link [post]
func (h *AuthHandler) RequestLink(c *fiber.Ctx) error {
	var in dto.RequestLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	if err := h.uc.Issue(c.Context(), in.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo procesar la solicitud"})
	}
	return c.JSON(dto.MessageResponse{Message: genericLinkMessage})
}

// Validate godoc
// @Summary      Validar token de un solo uso
// @Tags         auth
// @Produce      json
// @Param        token  query  string  true  "token del enlace"
// @Success      200    {object}  dto.SessionResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	session, err := h.uc.Validate(c.Context(), c.Query("token"))
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "enlace inválido o expirado"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la cuenta ya no tiene acceso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo validar el enlace"})
	}
	return c.JSON(session)
}
