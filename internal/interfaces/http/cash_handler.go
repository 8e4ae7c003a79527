package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stockfacil/kiosco-pos/internal/application/cash"
	"github.com/stockfacil/kiosco-pos/internal/application/dto"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/interfaces/metrics"
)

// CashHandler maneja la caja diaria (protegido).
type CashHandler struct {
	uc *cash.CashUseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cash.CashUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Today godoc
// @Summary      Estado de caja del día en curso
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashSnapshotResponse
// @Router       /api/cash/today [get]
func (h *CashHandler) Today(c *fiber.Ctx) error {
	snap, err := h.uc.SnapshotForToday(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}

	out := dto.CashSnapshotResponse{
		Summary:        dto.ToCashSummaryResponse(snap.DateKey, snap.Summary),
		Sales:          make([]dto.SaleResponse, 0, len(snap.Sales)),
		RecentClosures: make([]dto.ClosureResponse, 0, len(snap.RecentClosures)),
	}
	for _, s := range snap.Sales {
		out.Sales = append(out.Sales, dto.ToSaleResponse(s, nil))
	}
	if snap.TodayClosure != nil {
		cl := dto.ToClosureResponse(snap.TodayClosure)
		out.TodayClosure = &cl
	}
	for _, cl := range snap.RecentClosures {
		out.RecentClosures = append(out.RecentClosures, dto.ToClosureResponse(cl))
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar la caja del día (a lo sumo uno por fecha)
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ClosureResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash/close [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	closure, err := h.uc.CloseToday(c.UserContext(), GetIdentity(c))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyClosed) {
			metrics.ClosuresTotal.WithLabelValues("already_closed").Inc()
		}
		return respondError(c, err)
	}
	metrics.ClosuresTotal.WithLabelValues("ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.ToClosureResponse(closure))
}

// Report godoc
// @Summary      Comprobante PDF de un cierre
// @Tags         cash
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del cierre"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash/closures/{id}/report [get]
func (h *CashHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ClosureReportPDF(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cierre.pdf"`)
	return c.Send(pdfBytes)
}
