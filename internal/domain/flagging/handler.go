package flagging

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openlis/lis/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/flagging/configs", h.SyncConfigs)
	api.GET("/flagging/configs", h.ListConfigs)
}

// SyncConfigs accepts a list of reference-range rules and responds with
// a summary, not per-item status.
func (h *Handler) SyncConfigs(c echo.Context) error {
	var items []SyncItem
	if err := c.Bind(&items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	summary, err := h.svc.Sync(c.Request().Context(), items)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("applied %d of %d configs, %d results reflagged",
			summary.Applied, summary.Received, summary.ResultsUpdated),
		"summary": summary,
	})
}

func (h *Handler) ListConfigs(c echo.Context) error {
	if code := strings.ToUpper(strings.TrimSpace(c.QueryParam("test_code"))); code != "" {
		cfgs, err := h.svc.configs.ListActiveByTestCodes(c.Request().Context(), []string{code})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, cfgs)
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.configs.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
