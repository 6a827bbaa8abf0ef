package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a quote request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestActive    RequestStatus = "active"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

var ErrRequestNotFound = errors.New("quote request not found")
var ErrRequestClosed = errors.New("quote request is no longer open")
var ErrInvalidBudgetRange = errors.New("budget minimum exceeds maximum")

// requestExpiry is the soft expiry window applied at creation. Nothing sweeps
// expired requests; ExpiresAt is advisory data only.
const requestExpiry = 30 * 24 * time.Hour

// IsOpen reports whether builders may still submit quotes against a request.
func (s RequestStatus) IsOpen() bool {
	return s == RequestPending || s == RequestActive
}

// BudgetRange bounds what the customer intends to spend. Min ≤ Max.
type BudgetRange struct {
	Min      float64 `json:"min" bson:"min"`
	Max      float64 `json:"max" bson:"max"`
	Currency string  `json:"currency" bson:"currency"`
}

// ProjectTimeline captures the customer's scheduling constraints.
type ProjectTimeline struct {
	StartDate        time.Time `json:"startDate,omitempty" bson:"start_date,omitempty"`
	ExpectedDuration int       `json:"expectedDuration,omitempty" bson:"expected_duration,omitempty"` // months
	IsFlexible       bool      `json:"isFlexible" bson:"is_flexible"`
}

// ProjectRequirements lists the concrete rooms and features wanted.
type ProjectRequirements struct {
	Bedrooms        int      `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms       int      `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	Parking         int      `json:"parking,omitempty" bson:"parking,omitempty"`
	SpecialFeatures []string `json:"specialFeatures,omitempty" bson:"special_features,omitempty"`
}

// ProjectPreferences are soft preferences builders may weigh in their quotes.
type ProjectPreferences struct {
	EnergyEfficient      bool `json:"energyEfficient" bson:"energy_efficient"`
	SustainableMaterials bool `json:"sustainableMaterials" bson:"sustainable_materials"`
	ModernDesign         bool `json:"modernDesign" bson:"modern_design"`
}

// QuoteRequest is a customer's solicitation for bids on a specific plot.
//
// Lifecycle: pending → active (first quote submitted) → completed (a quote
// accepted) | cancelled (customer action). QuotesReceived only ever grows;
// it is incremented atomically with the pending→active transition.
type QuoteRequest struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Customer string `json:"customer" bson:"customer"`
	Plot     string `json:"plot" bson:"plot"`

	ProjectType    string  `json:"projectType" bson:"project_type"`
	BuildingType   string  `json:"buildingType,omitempty" bson:"building_type,omitempty"`
	NumberOfFloors int     `json:"numberOfFloors" bson:"number_of_floors"`
	TotalArea      float64 `json:"totalArea" bson:"total_area"`

	BudgetRange  BudgetRange         `json:"budgetRange" bson:"budget_range"`
	Timeline     ProjectTimeline     `json:"timeline" bson:"timeline"`
	Requirements ProjectRequirements `json:"requirements" bson:"requirements"`
	Description  string              `json:"description" bson:"description"`
	Preferences  ProjectPreferences  `json:"preferences" bson:"preferences"`

	Status         RequestStatus `json:"status" bson:"status"`
	QuotesReceived int           `json:"quotesReceived" bson:"quotes_received"`
	ExpiresAt      time.Time     `json:"expiresAt" bson:"expires_at"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// DefaultExpiry returns the soft expiry for a request created at t.
func DefaultExpiry(t time.Time) time.Time {
	return t.Add(requestExpiry)
}
