package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/plotbuild/marketplace/internal/core/ports"
)

// UserHandler handles profile management and the public builder directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	Website   *string `json:"website"`

	CompanyName     *string  `json:"companyName"`
	Specializations []string `json:"specializations"`
	ServiceAreas    []string `json:"serviceAreas"`
}

type builderPageResponse struct {
	Builders   any   `json:"builders"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	user, err := h.service.GetProfile(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile. Pointer fields distinguish
// "not sent" from "set to empty".
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), actor.UserID, ports.ProfileUpdate{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Bio:             req.Bio,
		Website:         req.Website,
		CompanyName:     req.CompanyName,
		Specializations: req.Specializations,
		ServiceAreas:    req.ServiceAreas,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// ListBuilders handles GET /api/users/builders. Public directory with
// optional specialization/serviceArea filters and page/limit paging.
func (h *UserHandler) ListBuilders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListBuilders(c.Request().Context(), ports.BuilderFilter{
		Specialization: c.QueryParam("specialization"),
		ServiceArea:    c.QueryParam("serviceArea"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, builderPageResponse{
		Builders:   result.Builders,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// GetBuilder handles GET /api/users/builders/:id.
func (h *UserHandler) GetBuilder(c echo.Context) error {
	user, err := h.service.GetBuilder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}
