package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plotbuild/marketplace/internal/api/metrics"
	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

// AdvisorHandler exposes the LLM-backed budget advisor.
type AdvisorHandler struct {
	service ports.AdvisorService
}

func NewAdvisorHandler(service ports.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

type advisorPlotRequest struct {
	Title       string  `json:"title"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	AreaSqFt    float64 `json:"areaSqFt" validate:"gte=0"`
	PlotType    string  `json:"plotType"`
	Description string  `json:"description"`
}

type advisorProjectRequest struct {
	ProjectType  string `json:"projectType" validate:"required"`
	Timeline     string `json:"timeline"`
	BudgetRange  string `json:"budgetRange"`
	Requirements string `json:"requirements"`
	QualityLevel string `json:"qualityLevel" validate:"omitempty,oneof=economy standard premium luxury"`
}

type budgetOpinionRequest struct {
	Plot    advisorPlotRequest    `json:"plot"`
	Project advisorProjectRequest `json:"project" validate:"required"`
}

// BudgetOpinion handles POST /api/advisor/budget.
func (h *AdvisorHandler) BudgetOpinion(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req budgetOpinionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	analysis, err := h.service.BudgetOpinion(c.Request().Context(), actor.UserID,
		ports.AdvisorPlot{
			Title:       req.Plot.Title,
			City:        req.Plot.City,
			State:       req.Plot.State,
			AreaSqFt:    req.Plot.AreaSqFt,
			PlotType:    req.Plot.PlotType,
			Description: req.Plot.Description,
		},
		ports.AdvisorProject{
			ProjectType:  req.Project.ProjectType,
			Timeline:     req.Project.Timeline,
			BudgetRange:  req.Project.BudgetRange,
			Requirements: req.Project.Requirements,
			QualityLevel: req.Project.QualityLevel,
		})
	metrics.AdvisorDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AdvisorRequestsTotal.WithLabelValues(advisorResult(err)).Inc()
		return err
	}
	metrics.AdvisorRequestsTotal.WithLabelValues("ok").Inc()

	return respond(c, http.StatusOK, analysis)
}

// History handles GET /api/advisor/history. Returns the caller's past
// consultations, newest first.
func (h *AdvisorHandler) History(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	analyses, err := h.service.History(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, analyses)
}

func advisorResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAdvisorUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrAdvisorBadReply):
		return "bad_reply"
	default:
		return "error"
	}
}
