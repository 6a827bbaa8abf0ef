package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plotbuild/marketplace/internal/api/metrics"
	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

// QuoteHandler handles the quote-request and quote lifecycle endpoints.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// CreateRequest handles POST /api/quotes/requests. Customer only.
func (h *QuoteHandler) CreateRequest(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req createQuoteRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.service.CreateRequest(c.Request().Context(), actor, ports.CreateRequestInput{
		Plot:           req.Plot,
		ProjectType:    req.ProjectType,
		BuildingType:   req.BuildingType,
		NumberOfFloors: req.NumberOfFloors,
		TotalArea:      req.TotalArea,
		BudgetRange: domain.BudgetRange{
			Min:      req.BudgetRange.Min,
			Max:      req.BudgetRange.Max,
			Currency: req.BudgetRange.Currency,
		},
		Timeline: domain.ProjectTimeline{
			StartDate:        req.Timeline.StartDate,
			ExpectedDuration: req.Timeline.ExpectedDuration,
			IsFlexible:       req.Timeline.IsFlexible,
		},
		Requirements: domain.ProjectRequirements{
			Bedrooms:        req.Requirements.Bedrooms,
			Bathrooms:       req.Requirements.Bathrooms,
			Parking:         req.Requirements.Parking,
			SpecialFeatures: req.Requirements.SpecialFeatures,
		},
		Description: req.Description,
		Preferences: domain.ProjectPreferences{
			EnergyEfficient:      req.Preferences.EnergyEfficient,
			SustainableMaterials: req.Preferences.SustainableMaterials,
			ModernDesign:         req.Preferences.ModernDesign,
		},
	})
	if err != nil {
		return err
	}
	metrics.QuoteRequestsCreatedTotal.WithLabelValues(request.ProjectType).Inc()

	return respond(c, http.StatusCreated, request)
}

// ListRequests handles GET /api/quotes/requests. Customers see their own
// requests; builders see open requests they can bid on. An optional ?status=
// filter narrows the customer view.
func (h *QuoteHandler) ListRequests(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	requests, err := h.service.ListRequests(c.Request().Context(), actor, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, requests)
}

// GetRequest handles GET /api/quotes/requests/:id.
func (h *QuoteHandler) GetRequest(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	request, err := h.service.GetRequest(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, request)
}

// CancelRequest handles PUT /api/quotes/requests/:id/cancel. Owner only.
func (h *QuoteHandler) CancelRequest(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if err := h.service.CancelRequest(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "quote request cancelled")
}

// SubmitQuote handles POST /api/quotes. Builder only.
func (h *QuoteHandler) SubmitQuote(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req submitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	milestones := make([]domain.Milestone, 0, len(req.Timeline.Milestones))
	for _, m := range req.Timeline.Milestones {
		milestones = append(milestones, domain.Milestone{
			Name:        m.Name,
			Date:        m.Date,
			Description: m.Description,
		})
	}
	materials := make([]domain.MaterialSpec, 0, len(req.Materials))
	for _, m := range req.Materials {
		materials = append(materials, domain.MaterialSpec{
			Name:          m.Name,
			Specification: m.Specification,
			Quantity:      m.Quantity,
			Unit:          m.Unit,
		})
	}

	quote, err := h.service.SubmitQuote(c.Request().Context(), actor, ports.SubmitQuoteInput{
		QuoteRequest: req.QuoteRequest,
		Pricing: domain.Pricing{
			Materials:   req.Pricing.Materials,
			Labor:       req.Pricing.Labor,
			Permits:     req.Pricing.Permits,
			Equipment:   req.Pricing.Equipment,
			Contingency: req.Pricing.Contingency,
			Other:       req.Pricing.Other,
		},
		Timeline: domain.QuoteTimeline{
			StartDate:      req.Timeline.StartDate,
			EndDate:        req.Timeline.EndDate,
			DurationMonths: req.Timeline.DurationMonths,
			Milestones:     milestones,
		},
		Description: req.Description,
		Methodology: req.Methodology,
		Materials:   materials,
		Terms: domain.QuoteTerms{
			PaymentSchedule: req.Terms.PaymentSchedule,
			Warranty:        req.Terms.Warranty,
			Insurance:       req.Terms.Insurance,
			AdditionalTerms: req.Terms.AdditionalTerms,
		},
	})
	if err != nil {
		return err
	}
	metrics.QuotesSubmittedTotal.Inc()

	return respond(c, http.StatusCreated, quote)
}

// ListQuotes handles GET /api/quotes. Builders see their own quotes;
// customers see quotes against their requests.
func (h *QuoteHandler) ListQuotes(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	quotes, err := h.service.ListQuotes(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, quotes)
}

// AcceptQuote handles PUT /api/quotes/:id/accept. Owning customer only.
func (h *QuoteHandler) AcceptQuote(c echo.Context) error {
	return h.decide(c, "accepted")
}

// RejectQuote handles PUT /api/quotes/:id/reject. Owning customer only.
func (h *QuoteHandler) RejectQuote(c echo.Context) error {
	return h.decide(c, "rejected")
}

func (h *QuoteHandler) decide(c echo.Context, decision string) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req quoteDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var quote *domain.Quote
	if decision == "accepted" {
		quote, err = h.service.AcceptQuote(c.Request().Context(), actor, c.Param("id"), req.Notes)
	} else {
		quote, err = h.service.RejectQuote(c.Request().Context(), actor, c.Param("id"), req.Notes)
	}
	if err != nil {
		return err
	}
	metrics.QuoteDecisionsTotal.WithLabelValues(decision).Inc()

	return respond(c, http.StatusOK, quote)
}
