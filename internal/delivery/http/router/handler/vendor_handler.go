package handler

import (
	"net/http"

	"trailhub/internal/delivery/http/middleware"
	"trailhub/internal/delivery/http/response"
	domainerrors "trailhub/internal/domain/errors"
	"trailhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VendorHandler holds dependencies for the vendor-facing handlers.
type VendorHandler struct {
	uc usecase.VendorUsecase
}

// NewVendorHandler is the constructor for VendorHandler, injected by Fx.
func NewVendorHandler(uc usecase.VendorUsecase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// CreateEvent submits a new event into the moderation queue.
func (h *VendorHandler) CreateEvent(c echo.Context) error {
	vendorID, ok := middleware.GetAccountID(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrMissingToken, "no authenticated account on request")
	}

	input := new(usecase.CreateEventInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event input")
	}
	input.VendorID = vendorID
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	event, err := h.uc.CreateEvent(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, event, "Event submitted for approval")
}

// ListEvents pages through the vendor's own submissions.
func (h *VendorHandler) ListEvents(c echo.Context) error {
	vendorID, ok := middleware.GetAccountID(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrMissingToken, "no authenticated account on request")
	}

	input := new(usecase.ListVendorEventsInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing filters")
	}
	input.VendorID = vendorID
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.ListOwnEvents(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"events": output.Events,
		"total":  output.Total,
	}, "")
}

// CreateGear lists gear under one of the vendor's own events.
func (h *VendorHandler) CreateGear(c echo.Context) error {
	vendorID, ok := middleware.GetAccountID(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrMissingToken, "no authenticated account on request")
	}

	input := new(usecase.CreateGearInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid gear input")
	}
	input.VendorID = vendorID
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	gear, err := h.uc.CreateGear(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, gear, "Gear listed")
}
