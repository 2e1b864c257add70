package handler

import (
	"net/http"

	"trailhub/internal/delivery/http/response"
	"trailhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for the public catalog handlers.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// BrowseEvents lists approved events for anonymous visitors.
func (h *CatalogHandler) BrowseEvents(c echo.Context) error {
	input := new(usecase.BrowseEventsInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid browse filters")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.BrowseEvents(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"events": output.Events,
		"total":  output.Total,
	}, "")
}

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
