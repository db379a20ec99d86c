package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tradetrack-api/internal/application/analytics"
	"github.com/jhoicas/tradetrack-api/internal/application/dto"
	"github.com/jhoicas/tradetrack-api/internal/domain"
	"github.com/jhoicas/tradetrack-api/pkg/validate"
)

// AnalyticsHandler sirve el resumen de ganancias.
type AnalyticsHandler struct {
	uc *analytics.SummaryUseCase
}

// NewAnalyticsHandler construye el handler de analytics.
func NewAnalyticsHandler(uc *analytics.SummaryUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ganancias del dueño
// @Description  Totales de ventas y ganancia, ganancia por artículo (top N) y ganancia por día. Fechas YYYY-MM-DD; la final es inclusiva.
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "hasta inclusive (YYYY-MM-DD)"
// @Param        top_n       query  int     false  "artículos en el top (default 20, max 200)"
// @Success      200  {object}  dto.ProfitSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	var req dto.ProfitSummaryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.GetProfitSummary(c.UserContext(), GetUserID(c), req)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido: fechas YYYY-MM-DD y start_date <= end_date"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
