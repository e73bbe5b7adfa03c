package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-system/internal/core/ports"
)

type DashboardHandler struct {
	service  ports.DashboardService
	mediaURL string
}

func NewDashboardHandler(service ports.DashboardService, mediaURL string) *DashboardHandler {
	return &DashboardHandler{service: service, mediaURL: mediaURL}
}

// Summary handles GET /v1/dashboard.
//
// @Summary      Dashboard counters and latest customers
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	s, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		TotalCustomers:  s.TotalCustomers,
		TotalUsers:      s.TotalUsers,
		RecentCustomers: toCustomerResponses(s.RecentCustomers, h.mediaURL),
	})
}
