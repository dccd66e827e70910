package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/taxi-dashboard/internal/export"
	"github.com/jengzang/taxi-dashboard/internal/models"
	"github.com/jengzang/taxi-dashboard/internal/render"
	"github.com/jengzang/taxi-dashboard/internal/service"
	"github.com/jengzang/taxi-dashboard/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler handles HTTP requests for the dashboard
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// dashboardView is the full dashboard plus its formatted metric cards
type dashboardView struct {
	*models.Dashboard
	Cards []export.Card `json:"cards"`
}

// selection binds the filter parameters. On failure the response is written
// and ok is false.
func (h *DashboardHandler) selection(c *gin.Context) (sel models.FilterSelection, ok bool) {
	var q models.SelectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid filter parameters: "+err.Error())
		return sel, false
	}

	sel, err := q.Selection()
	if err != nil {
		response.FromError(c, err)
		return sel, false
	}
	return sel, true
}

// GetBounds handles GET /api/v1/dashboard/bounds
func (h *DashboardHandler) GetBounds(c *gin.Context) {
	bounds, err := h.dashboardService.Bounds(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get date bounds", err)
		return
	}

	response.Success(c, bounds)
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	sel, ok := h.selection(c)
	if !ok {
		return
	}

	dash, err := h.dashboardService.Recompute(c.Request.Context(), sel)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, dashboardView{Dashboard: dash, Cards: export.Cards(dash.Summary)})
}

// GetAggregation returns the handler for GET /api/v1/dashboard/<name>
func (h *DashboardHandler) GetAggregation(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sel, ok := h.selection(c)
		if !ok {
			return
		}

		result, err := h.dashboardService.Aggregate(c.Request.Context(), name, sel)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.Success(c, result)
	}
}

// GetChart handles GET /api/v1/dashboard/charts/:name
func (h *DashboardHandler) GetChart(c *gin.Context) {
	name := c.Param("name")
	if !slices.Contains(render.Charted, name) {
		response.NotFound(c, fmt.Sprintf("No chart named %q", name))
		return
	}

	sel, ok := h.selection(c)
	if !ok {
		return
	}

	result, err := h.dashboardService.Aggregate(c.Request.Context(), name, sel)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Chart(&buf, name, result); err != nil {
		response.InternalError(c, "Failed to render chart", err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// Export handles GET /api/v1/dashboard/export
func (h *DashboardHandler) Export(c *gin.Context) {
	sel, ok := h.selection(c)
	if !ok {
		return
	}

	dash, err := h.dashboardService.Recompute(c.Request.Context(), sel)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, dash); err != nil {
		response.InternalError(c, "Failed to export dashboard", err)
		return
	}

	filename := fmt.Sprintf("taxi-dashboard_%s_%s.xlsx", sel.StartDay(), sel.EndDay())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
