package domain

import (
	"errors"
	"time"
)

// PlotStatus represents the listing state of a plot.
type PlotStatus string

const (
	PlotActive   PlotStatus = "active"
	PlotInactive PlotStatus = "inactive"
	PlotSold     PlotStatus = "sold"
)

var ErrPlotNotFound = errors.New("plot not found")

// PlotAddress locates a plot.
type PlotAddress struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zipCode" bson:"zip_code"`
	Country string `json:"country" bson:"country"`
}

// PlotDimensions holds the measured sides of a plot. Unit is "feet" or "meters".
type PlotDimensions struct {
	Length float64 `json:"length" bson:"length"`
	Width  float64 `json:"width" bson:"width"`
	Unit   string  `json:"unit" bson:"unit"`
}

// PlotUtilities flags which services reach the plot boundary.
type PlotUtilities struct {
	Water       bool `json:"water" bson:"water"`
	Electricity bool `json:"electricity" bson:"electricity"`
	Gas         bool `json:"gas" bson:"gas"`
	Sewer       bool `json:"sewer" bson:"sewer"`
}

// Plot is a parcel of real property owned by exactly one customer.
type Plot struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	Owner      string         `json:"owner" bson:"owner"`
	Address    PlotAddress    `json:"address" bson:"address"`
	Dimensions PlotDimensions `json:"dimensions" bson:"dimensions"`

	// Area is derived: length × width, recomputed on every save.
	Area float64 `json:"area" bson:"area"`

	SoilType   string        `json:"soilType" bson:"soil_type"`
	Utilities  PlotUtilities `json:"utilities" bson:"utilities"`
	Zoning     string        `json:"zoning,omitempty" bson:"zoning,omitempty"`
	Topography string        `json:"topography" bson:"topography"`
	Notes      string        `json:"notes,omitempty" bson:"notes,omitempty"`
	Status     PlotStatus    `json:"status" bson:"status"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// RecomputeArea overwrites Area from the current dimensions. Called on every
// save so the stored area can never drift from length × width.
func (p *Plot) RecomputeArea() {
	if p.Dimensions.Length > 0 && p.Dimensions.Width > 0 {
		p.Area = p.Dimensions.Length * p.Dimensions.Width
	}
}
