package handler

type plotAddressRequest struct {
	Street  string `json:"street"  validate:"required"`
	City    string `json:"city"    validate:"required"`
	State   string `json:"state"   validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country"`
}

type plotDimensionsRequest struct {
	Length float64 `json:"length" validate:"required,gt=0"`
	Width  float64 `json:"width"  validate:"required,gt=0"`
	Unit   string  `json:"unit"   validate:"omitempty,oneof=feet meters"`
}

type plotUtilitiesRequest struct {
	Water       bool `json:"water"`
	Electricity bool `json:"electricity"`
	Gas         bool `json:"gas"`
	Sewer       bool `json:"sewer"`
}

type plotRequest struct {
	Address    plotAddressRequest    `json:"address"    validate:"required"`
	Dimensions plotDimensionsRequest `json:"dimensions" validate:"required"`
	SoilType   string                `json:"soilType"`
	Utilities  plotUtilitiesRequest  `json:"utilities"`
	Zoning     string                `json:"zoning"`
	Topography string                `json:"topography"`
	Notes      string                `json:"notes"`
	Status     string                `json:"status" validate:"omitempty,oneof=active inactive sold"`
}
