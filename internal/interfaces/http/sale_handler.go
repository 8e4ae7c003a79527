package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stockfacil/kiosco-pos/internal/application/dto"
	"github.com/stockfacil/kiosco-pos/internal/application/sales"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/interfaces/metrics"
)

// SaleHandler maneja el compromiso de ventas (protegido).
type SaleHandler struct {
	uc *sales.CommitSaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.CommitSaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Commit godoc
// @Summary      Confirmar venta (carrito completo, todo o nada)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitSaleRequest  true  "Líneas del carrito"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	lines := make([]sales.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, sales.LineInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	sale, items, err := h.uc.Commit(c.UserContext(), GetIdentity(c), lines)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.SalesRejectedTotal.WithLabelValues("insufficient_stock").Inc()
		case errors.Is(err, domain.ErrEmptyCart):
			metrics.SalesRejectedTotal.WithLabelValues("empty_cart").Inc()
		}
		return respondError(c, err)
	}
	metrics.SalesCommittedTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale, items))
}
