package handler

import (
	"net/http"

	"trailhub/internal/delivery/http/response"
	"trailhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the moderation handlers.
type AdminHandler struct {
	uc usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListVendors pages through the registered vendor accounts.
func (h *AdminHandler) ListVendors(c echo.Context) error {
	input := new(usecase.ListVendorsInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing filters")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.ListVendors(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"vendors": output.Vendors,
		"total":   output.Total,
	}, "")
}

// SetVendorStatus activates or suspends a vendor account.
func (h *AdminHandler) SetVendorStatus(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid vendor id")
	}

	input := new(usecase.SetVendorStatusInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	input.VendorID = vendorID
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	vendor, err := h.uc.SetVendorStatus(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendor, "Vendor status updated")
}

// SetEventApproval resolves a pending event submission.
func (h *AdminHandler) SetEventApproval(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid event id")
	}

	input := new(usecase.SetEventApprovalInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid approval input")
	}
	input.EventID = eventID
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	event, err := h.uc.SetEventApproval(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, event, "Event moderated")
}

// GetEvent returns one event regardless of its moderation status.
func (h *AdminHandler) GetEvent(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid event id")
	}

	event, err := h.uc.GetEvent(c.Request().Context(), eventID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, event, "")
}

// DeleteEvent removes a completed event.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid event id")
	}

	if err := h.uc.DeleteEvent(c.Request().Context(), eventID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Event deleted")
}
