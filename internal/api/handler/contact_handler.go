package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

// ContactHandler accepts public contact form submissions.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"`
	UserType  string `json:"userType" validate:"omitempty,oneof=customer builder other"`
	Subject   string `json:"subject"  validate:"required"`
	Message   string `json:"message"  validate:"required"`
}

// Submit handles POST /api/contact. No authentication required.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Submit(c.Request().Context(), &domain.ContactMessage{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		UserType:  req.UserType,
		Subject:   req.Subject,
		Message:   req.Message,
		Metadata: domain.ContactMetadata{
			IPAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		},
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, msg)
}
