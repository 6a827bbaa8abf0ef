package handler

import "time"

type budgetRangeRequest struct {
	Min      float64 `json:"min"      validate:"required,gt=0"`
	Max      float64 `json:"max"      validate:"required,gt=0"`
	Currency string  `json:"currency"`
}

type projectTimelineRequest struct {
	StartDate        time.Time `json:"startDate"`
	ExpectedDuration int       `json:"expectedDuration" validate:"gte=0"`
	IsFlexible       bool      `json:"isFlexible"`
}

type projectRequirementsRequest struct {
	Bedrooms        int      `json:"bedrooms"  validate:"gte=0"`
	Bathrooms       int      `json:"bathrooms" validate:"gte=0"`
	Parking         int      `json:"parking"   validate:"gte=0"`
	SpecialFeatures []string `json:"specialFeatures"`
}

type projectPreferencesRequest struct {
	EnergyEfficient      bool `json:"energyEfficient"`
	SustainableMaterials bool `json:"sustainableMaterials"`
	ModernDesign         bool `json:"modernDesign"`
}

type createQuoteRequestRequest struct {
	Plot           string                     `json:"plot"        validate:"required"`
	ProjectType    string                     `json:"projectType" validate:"required"`
	BuildingType   string                     `json:"buildingType"`
	NumberOfFloors int                        `json:"numberOfFloors" validate:"gte=0"`
	TotalArea      float64                    `json:"totalArea"      validate:"gte=0"`
	BudgetRange    budgetRangeRequest         `json:"budgetRange"    validate:"required"`
	Timeline       projectTimelineRequest     `json:"timeline"`
	Requirements   projectRequirementsRequest `json:"requirements"`
	Description    string                     `json:"description"`
	Preferences    projectPreferencesRequest  `json:"preferences"`
}

type pricingRequest struct {
	Materials   float64 `json:"materials"   validate:"gte=0"`
	Labor       float64 `json:"labor"       validate:"gte=0"`
	Permits     float64 `json:"permits"     validate:"gte=0"`
	Equipment   float64 `json:"equipment"   validate:"gte=0"`
	Contingency float64 `json:"contingency" validate:"gte=0"`
	Other       float64 `json:"other"       validate:"gte=0"`
}

type milestoneRequest struct {
	Name        string    `json:"name" validate:"required"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type quoteTimelineRequest struct {
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	DurationMonths int                `json:"durationMonths" validate:"gte=0"`
	Milestones     []milestoneRequest `json:"milestones" validate:"dive"`
}

type materialSpecRequest struct {
	Name          string  `json:"name" validate:"required"`
	Specification string  `json:"specification"`
	Quantity      float64 `json:"quantity" validate:"gte=0"`
	Unit          string  `json:"unit"`
}

type quoteTermsRequest struct {
	PaymentSchedule string `json:"paymentSchedule"`
	Warranty        string `json:"warranty"`
	Insurance       string `json:"insurance"`
	AdditionalTerms string `json:"additionalTerms"`
}

type submitQuoteRequest struct {
	QuoteRequest string                `json:"quoteRequest" validate:"required"`
	Pricing      pricingRequest        `json:"pricing"      validate:"required"`
	Timeline     quoteTimelineRequest  `json:"timeline"`
	Description  string                `json:"description"  validate:"required"`
	Methodology  string                `json:"methodology"`
	Materials    []materialSpecRequest `json:"materials" validate:"dive"`
	Terms        quoteTermsRequest     `json:"terms"`
}

type quoteDecisionRequest struct {
	Notes string `json:"notes"`
}
