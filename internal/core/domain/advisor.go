package domain

import (
	"errors"
	"time"
)

var ErrAdvisorUnavailable = errors.New("budget advisor is not configured")
var ErrAdvisorBadReply = errors.New("advisor returned an unparseable reply")

// EstimatedBudget is the advisor's overall range for the project.
type EstimatedBudget struct {
	Min        float64 `json:"min" bson:"min"`
	Max        float64 `json:"max" bson:"max"`
	Currency   string  `json:"currency" bson:"currency"`
	Confidence string  `json:"confidence" bson:"confidence"` // high/medium/low
}

// BudgetLine is one category of the advisor's cost breakdown.
type BudgetLine struct {
	Category        string  `json:"category" bson:"category"`
	Percentage      float64 `json:"percentage" bson:"percentage"`
	EstimatedAmount string  `json:"estimatedAmount" bson:"estimated_amount"`
	Notes           string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Recommendation is a cost-saving suggestion from the advisor.
type Recommendation struct {
	Title            string `json:"title" bson:"title"`
	Description      string `json:"description" bson:"description"`
	PotentialSavings string `json:"potentialSavings,omitempty" bson:"potential_savings,omitempty"`
}

// RiskFactor is a budget risk the advisor flagged.
type RiskFactor struct {
	Risk       string `json:"risk" bson:"risk"`
	Impact     string `json:"impact" bson:"impact"` // high/medium/low
	Mitigation string `json:"mitigation,omitempty" bson:"mitigation,omitempty"`
}

// BudgetOpinion is the structured reply parsed out of the model's JSON.
type BudgetOpinion struct {
	EstimatedBudgetRange EstimatedBudget  `json:"estimatedBudgetRange" bson:"estimated_budget_range"`
	BudgetBreakdown      []BudgetLine     `json:"budgetBreakdown" bson:"budget_breakdown"`
	KeyFactors           []string         `json:"keyFactors" bson:"key_factors"`
	Recommendations      []Recommendation `json:"recommendations" bson:"recommendations"`
	RiskFactors          []RiskFactor     `json:"riskFactors" bson:"risk_factors"`
	MarketInsights       string           `json:"marketInsights" bson:"market_insights"`
	OverallAdvice        string           `json:"overallAdvice" bson:"overall_advice"`
}

// BudgetAnalysis is a persisted advisor consultation: who asked, what was
// asked, and what the model answered.
type BudgetAnalysis struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	User      string        `json:"user" bson:"user"`
	Plot      string        `json:"plot,omitempty" bson:"plot,omitempty"`
	Model     string        `json:"model" bson:"model"`
	Opinion   BudgetOpinion `json:"opinion" bson:"opinion"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
