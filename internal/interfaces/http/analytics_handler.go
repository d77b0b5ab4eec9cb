package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sonu0702/cozy-api/internal/application/usecase"
)

// AnalyticsHandler per-shop dashboard endpoint.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dashboard returns sales aggregates and the catalog size.
// GET /api/shops/:id/analytics
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
