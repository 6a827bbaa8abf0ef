package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

const defaultAdvisorModel = "gemini-2.0-flash"

// AdvisorService produces budget opinions through the Gemini API and persists
// every consultation. A nil client means the advisor is unconfigured; calls
// then fail with ErrAdvisorUnavailable instead of reaching the network.
type AdvisorService struct {
	client   *genai.Client
	analyses ports.AnalysisRepository
	model    string
	logger   zerolog.Logger
}

func NewAdvisorService(client *genai.Client, analyses ports.AnalysisRepository, model string, logger zerolog.Logger) *AdvisorService {
	if model == "" {
		model = defaultAdvisorModel
	}
	return &AdvisorService{client: client, analyses: analyses, model: model, logger: logger}
}

func (s *AdvisorService) BudgetOpinion(ctx context.Context, userID string, plot ports.AdvisorPlot, project ports.AdvisorProject) (*domain.BudgetAnalysis, error) {
	if s.client == nil {
		return nil, domain.ErrAdvisorUnavailable
	}

	model := s.client.GenerativeModel(s.model)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(2048)

	resp, err := model.GenerateContent(ctx, genai.Text(buildBudgetPrompt(plot, project)))
	if err != nil {
		s.logger.Error().Err(err).Str("user", userID).Msg("advisor generation failed")
		return nil, fmt.Errorf("advisor: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		return nil, domain.ErrAdvisorBadReply
	}

	opinion, err := parseOpinion(text)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("advisor reply did not parse")
		return nil, err
	}

	analysis := &domain.BudgetAnalysis{
		User:      userID,
		Model:     s.model,
		Opinion:   *opinion,
		CreatedAt: time.Now().UTC(),
	}
	saved, err := s.analyses.Create(ctx, analysis)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user", userID).
		Float64("min", opinion.EstimatedBudgetRange.Min).
		Float64("max", opinion.EstimatedBudgetRange.Max).
		Msg("budget opinion generated")

	return saved, nil
}

func (s *AdvisorService) History(ctx context.Context, userID string) ([]*domain.BudgetAnalysis, error) {
	return s.analyses.ListByUser(ctx, userID)
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

// parseOpinion extracts the JSON object from the model's reply. Models often
// wrap their answer in markdown fences or prose, so the parse starts at the
// first brace and ends at the last.
func parseOpinion(text string) (*domain.BudgetOpinion, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, domain.ErrAdvisorBadReply
	}

	var opinion domain.BudgetOpinion
	if err := json.Unmarshal([]byte(text[start:end+1]), &opinion); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAdvisorBadReply, err)
	}
	if opinion.EstimatedBudgetRange.Min == 0 && opinion.EstimatedBudgetRange.Max == 0 {
		return nil, domain.ErrAdvisorBadReply
	}
	return &opinion, nil
}

func buildBudgetPrompt(plot ports.AdvisorPlot, project ports.AdvisorProject) string {
	return fmt.Sprintf(`You are an expert construction budget advisor. Analyze the following property and project details to provide a comprehensive budget opinion and suggestions.

**PROPERTY DETAILS:**
- Title: %s
- Location: %s, %s
- Plot Area: %s
- Plot Type: %s
- Description: %s

**PROJECT REQUIREMENTS:**
- Project Type: %s
- Expected Timeline: %s
- Budget Range Mentioned: %s
- Specific Requirements: %s
- Quality Level: %s

Please provide your analysis in the following JSON format:
{
    "estimatedBudgetRange": {"min": <number>, "max": <number>, "currency": "USD", "confidence": "<high/medium/low>"},
    "budgetBreakdown": [{"category": "<category name>", "percentage": <number>, "estimatedAmount": "<range>", "notes": "<brief note>"}],
    "keyFactors": ["<factor affecting the budget>"],
    "recommendations": [{"title": "<recommendation title>", "description": "<brief description>", "potentialSavings": "<amount or percentage>"}],
    "riskFactors": [{"risk": "<risk description>", "impact": "<high/medium/low>", "mitigation": "<suggestion>"}],
    "marketInsights": "<2-3 sentences about current market conditions for this type of project>",
    "overallAdvice": "<2-3 sentences of overall budget advice>"
}

Ensure your estimates are realistic and based on current construction industry standards. Consider regional variations in costs.`,
		orDefault(plot.Title, "Not specified"),
		orDefault(plot.City, "Unknown"), orDefault(plot.State, "Unknown"),
		formatArea(plot.AreaSqFt),
		orDefault(plot.PlotType, "Not specified"),
		orDefault(plot.Description, "Not provided"),
		orDefault(project.ProjectType, "New Construction"),
		orDefault(project.Timeline, "Flexible"),
		orDefault(project.BudgetRange, "Not specified"),
		orDefault(project.Requirements, "None specified"),
		orDefault(project.QualityLevel, "Standard"),
	)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func formatArea(sqft float64) string {
	if sqft <= 0 {
		return "Not specified"
	}
	return fmt.Sprintf("%.0f sq ft", sqft)
}
