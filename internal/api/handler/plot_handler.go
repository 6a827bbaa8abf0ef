package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

// PlotHandler handles owner-scoped plot CRUD.
type PlotHandler struct {
	service ports.PlotService
}

func NewPlotHandler(service ports.PlotService) *PlotHandler {
	return &PlotHandler{service: service}
}

func (h *PlotHandler) bindInput(c echo.Context) (ports.PlotInput, error) {
	var req plotRequest
	if err := c.Bind(&req); err != nil {
		return ports.PlotInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.PlotInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ports.PlotInput{
		Address: domain.PlotAddress{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
			Country: req.Address.Country,
		},
		Dimensions: domain.PlotDimensions{
			Length: req.Dimensions.Length,
			Width:  req.Dimensions.Width,
			Unit:   req.Dimensions.Unit,
		},
		SoilType: req.SoilType,
		Utilities: domain.PlotUtilities{
			Water:       req.Utilities.Water,
			Electricity: req.Utilities.Electricity,
			Gas:         req.Utilities.Gas,
			Sewer:       req.Utilities.Sewer,
		},
		Zoning:     req.Zoning,
		Topography: req.Topography,
		Notes:      req.Notes,
		Status:     req.Status,
	}, nil
}

// Create handles POST /api/plots.
func (h *PlotHandler) Create(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	plot, err := h.service.Create(c.Request().Context(), actor.UserID, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, plot)
}

// List handles GET /api/plots. Returns only the caller's plots.
func (h *PlotHandler) List(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	plots, err := h.service.List(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, plots)
}

// Get handles GET /api/plots/:id.
func (h *PlotHandler) Get(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	plot, err := h.service.Get(c.Request().Context(), c.Param("id"), actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, plot)
}

// Update handles PUT /api/plots/:id.
func (h *PlotHandler) Update(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	plot, err := h.service.Update(c.Request().Context(), c.Param("id"), actor.UserID, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, plot)
}

// Delete handles DELETE /api/plots/:id.
func (h *PlotHandler) Delete(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor.UserID); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "plot deleted")
}
