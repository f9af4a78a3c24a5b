package handlers

import (
	"net/http"

	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// ReportingHandler handles aggregate read queries.
type ReportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(rs portssvc.ReportingSvcFacade) *ReportingHandler {
	return &ReportingHandler{reportingService: rs}
}

// registerReportingRoutes sets up the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := NewReportingHandler(reportingService)
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.GetDashboardSummary)
	}
}

// GetDashboardSummary godoc
// @Summary Dashboard summary for a period
// @Description Aggregates booked expenses and income over [from, to), overall and per category. Pending transactions and transfers are excluded.
// @Tags reports
// @Produce json
// @Param from query string true "RFC3339 period start (inclusive)"
// @Param to query string true "RFC3339 period end (exclusive)"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *ReportingHandler) GetDashboardSummary(c *gin.Context) {
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}
	var params dto.DashboardSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	summary, err := h.reportingService.GetDashboardSummary(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
