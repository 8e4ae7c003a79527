package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stockfacil/kiosco-pos/internal/application/dto"
	"github.com/stockfacil/kiosco-pos/internal/application/registration"
)

// RegistrationHandler maneja el alta de dueños, la verificación de email y
// los permisos de empleados.
type RegistrationHandler struct {
	uc *registration.RegistrationUseCase
}

// NewRegistrationHandler construye el handler.
func NewRegistrationHandler(uc *registration.RegistrationUseCase) *RegistrationHandler {
	return &RegistrationHandler{uc: uc}
}

// RegisterEmployer godoc
// @Summary      Alta de dueño con su kiosco
// @Tags         registration
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEmployerRequest  true  "Datos del alta"
// @Success      201   {object}  dto.RegisterEmployerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/registration/employer [post]
func (h *RegistrationHandler) RegisterEmployer(c *fiber.Ctx) error {
	var in dto.RegisterEmployerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterEmployer(c.UserContext(), c.Get("Authorization"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkEmailVerified godoc
// @Summary      Confirmar email de un usuario
// @Tags         registration
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarkEmailVerifiedRequest  true  "Usuario y token"
// @Success      200   {object}  dto.StatusResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/registration/email-verified [post]
func (h *RegistrationHandler) MarkEmailVerified(c *fiber.Ctx) error {
	var in dto.MarkEmailVerifiedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "userId es requerido"})
	}
	if err := h.uc.MarkEmailVerified(c.UserContext(), c.Get("Authorization"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok"})
}

// UpdatePermission godoc
// @Summary      Cambiar permiso de alta de productos de un empleado (solo dueño)
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del empleado"
// @Param        body  body  dto.UpdatePermissionRequest  true  "Permiso"
// @Success      200   {object}  dto.StatusResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/permission [post]
func (h *RegistrationHandler) UpdatePermission(c *fiber.Ctx) error {
	var in dto.UpdatePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateEmployeePermission(c.UserContext(), GetIdentity(c), c.Params("id"), in.CanCreateProducts); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok"})
}
