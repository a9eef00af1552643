package http

import (
	"context"
	"net/http"
	"time"

	"mayer-monitor/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupSignal(base *echo.Group) {
	base.GET("/health", h.Health)
	base.GET("/signal", h.GetSignal)
	base.POST("/signal/run", h.RunCycle)
	base.GET("/scheduler", h.GetSchedule)
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}

// GetSignal returns the current reading and signal without advancing the
// rolling state.
func (h *HttpAPIHandler) GetSignal(c echo.Context) error {
	status, err := h.service.MonitorService.GetStatus(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("current signal", status))
}

// RunCycle triggers one evaluation cycle outside of the schedule. State
// mutation stays idempotent per calendar day, so re-triggering is safe.
func (h *HttpAPIHandler) RunCycle(c echo.Context) error {
	req := new(dto.RunCycleRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	ctx := c.Request().Context()
	if req.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	status, err := h.service.MonitorService.RunCycle(ctx)
	if err != nil {
		return c.JSON(http.StatusBadGateway, dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("cycle completed", status))
}

func (h *HttpAPIHandler) GetSchedule(c echo.Context) error {
	data := map[string]string{
		"next_run": h.service.SchedulerService.NextRun().Format(time.RFC3339),
	}
	if last := h.service.SchedulerService.LastRun(); !last.IsZero() {
		data["last_run"] = last.Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("schedule", data))
}
