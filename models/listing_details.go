package models

import (
	"math"
	"strings"
	"time"
)

// ListingDetails is the raw record assembled from one detail page: extracted
// but not yet normalized into enumerations. Composite fields such as Type and
// Contract keep the source's pipe-delimited text. Frozen after construction;
// build one only through NewListingDetails, which fails fast on malformed
// input instead of storing garbage.
type ListingDetails struct {
	// Identity
	Id       string `bson:"id" json:"id"`
	Source   Source `bson:"source" json:"source"`
	Title    string `bson:"title" json:"title"`
	URL      string `bson:"url" json:"url"`

	// Timestamps
	FetchDate   time.Time  `bson:"fetch_date" json:"fetch_date"`
	LastUpdated *time.Time `bson:"last_updated,omitempty" json:"last_updated,omitempty"`

	// Pricing. Only listings with a transparent offer price are kept, so the
	// numeric price is always present.
	FormattedPrice          string   `bson:"formatted_price" json:"formatted_price"`
	PriceEUR                float64  `bson:"price_eur" json:"price_eur"`
	FormattedMaintenanceFee string   `bson:"formatted_maintenance_fee,omitempty" json:"formatted_maintenance_fee,omitempty"`
	MaintenanceFee          *float64 `bson:"maintenance_fee,omitempty" json:"maintenance_fee,omitempty"`
	FormattedPriceSqm       string   `bson:"formatted_price_sqm,omitempty" json:"formatted_price_sqm,omitempty"`
	PriceSqm                *float64 `bson:"price_sqm,omitempty" json:"price_sqm,omitempty"`

	// Classification. Type carries up to three pipe-delimited segments
	// (property type, ownership, class); Contract embeds availability and
	// rent-to-own markers.
	Type      string `bson:"type" json:"type"`
	Contract  string `bson:"contract" json:"contract"`
	Condition string `bson:"condition,omitempty" json:"condition,omitempty"`
	IsLuxury  *bool  `bson:"is_luxury,omitempty" json:"is_luxury,omitempty"`

	// Dimensions
	SurfaceFormatted string  `bson:"surface_formatted" json:"surface_formatted"`
	Surface          float64 `bson:"surface" json:"surface"`
	Rooms            *int    `bson:"rooms,omitempty" json:"rooms,omitempty"`
	Floor            string  `bson:"floor,omitempty" json:"floor,omitempty"`
	TotalFloors      *int    `bson:"total_floors,omitempty" json:"total_floors,omitempty"`

	// Composition
	Bathrooms *int   `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Bedrooms  *int   `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Balcony   *bool  `bson:"balcony,omitempty" json:"balcony,omitempty"`
	Terrace   *bool  `bson:"terrace,omitempty" json:"terrace,omitempty"`
	Elevator  *bool  `bson:"elevator,omitempty" json:"elevator,omitempty"`
	Garden    string `bson:"garden,omitempty" json:"garden,omitempty"`
	Cellar    *bool  `bson:"cellar,omitempty" json:"cellar,omitempty"`
	Furnished string `bson:"furnished,omitempty" json:"furnished,omitempty"`
	Kitchen   string `bson:"kitchen,omitempty" json:"kitchen,omitempty"`

	// Building
	BuildYear    *int  `bson:"build_year,omitempty" json:"build_year,omitempty"`
	Concierge    *bool `bson:"concierge,omitempty" json:"concierge,omitempty"`
	IsAccessible *bool `bson:"is_accessible,omitempty" json:"is_accessible,omitempty"`

	// Energy
	HeatingType     string      `bson:"heating_type,omitempty" json:"heating_type,omitempty"`
	AirConditioning string      `bson:"air_conditioning,omitempty" json:"air_conditioning,omitempty"`
	EnergyClass     EnergyClass `bson:"energy_class,omitempty" json:"energy_class,omitempty"`

	// Location
	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`

	ParkingInfo string `bson:"parking_info,omitempty" json:"parking_info,omitempty"`

	// Extended description
	DescriptionTitle string   `bson:"description_title,omitempty" json:"description_title,omitempty"`
	Description      string   `bson:"description" json:"description"`
	OtherAmenities   []string `bson:"other_amenities,omitempty" json:"other_amenities,omitempty"`
}

// NewListingDetails validates a candidate raw record. Every string field is
// trimmed and whitespace-only values are reduced to empty. The required raw
// fields (identity, price, composite type, contract, surface) must be present:
// absence is fatal, not defaulted.
func NewListingDetails(d ListingDetails) (ListingDetails, error) {
	trimDetailStrings(&d)

	switch {
	case d.Id == "":
		return ListingDetails{}, newValidationError("id", "must not be empty")
	case d.Source == "":
		return ListingDetails{}, newValidationError("source", "must not be empty")
	case d.Title == "":
		return ListingDetails{}, newValidationError("title", "must not be empty")
	case d.URL == "":
		return ListingDetails{}, newValidationError("url", "must not be empty")
	case d.FormattedPrice == "":
		return ListingDetails{}, newValidationError("formatted_price", "must not be empty")
	case d.PriceEUR <= 0 || math.IsInf(d.PriceEUR, 0) || math.IsNaN(d.PriceEUR):
		return ListingDetails{}, newValidationError("price_eur", "must be a positive finite number")
	case d.Type == "":
		return ListingDetails{}, newValidationError("type", "must not be empty")
	case d.Contract == "":
		return ListingDetails{}, newValidationError("contract", "must not be empty")
	case d.SurfaceFormatted == "":
		return ListingDetails{}, newValidationError("surface_formatted", "must not be empty")
	case d.Surface <= 0 || math.IsInf(d.Surface, 0) || math.IsNaN(d.Surface):
		return ListingDetails{}, newValidationError("surface", "must be a positive finite number")
	case d.City == "":
		return ListingDetails{}, newValidationError("city", "must not be empty")
	}

	if d.Country == "" {
		d.Country = "IT"
	}
	if d.FetchDate.IsZero() {
		d.FetchDate = Timestamp()
	}

	return d, nil
}

func trimDetailStrings(d *ListingDetails) {
	for _, p := range []*string{
		&d.Id, &d.Title, &d.URL,
		&d.FormattedPrice, &d.FormattedMaintenanceFee, &d.FormattedPriceSqm,
		&d.Type, &d.Contract, &d.Condition,
		&d.SurfaceFormatted, &d.Floor,
		&d.Garden, &d.Furnished, &d.Kitchen,
		&d.HeatingType, &d.AirConditioning,
		&d.City, &d.Country, &d.Address, &d.ParkingInfo,
		&d.DescriptionTitle, &d.Description,
	} {
		*p = strings.TrimSpace(*p)
	}

	amenities := d.OtherAmenities[:0]
	for _, a := range d.OtherAmenities {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}
	d.OtherAmenities = amenities
}

// ID is the stable deduplication key carried over from the listing identity.
func (d ListingDetails) ID() string { return d.Id }

// Kind names the logical collection this type is stored in.
func (d ListingDetails) Kind() string { return "listings" }

func (d ListingDetails) CSVHeader() []string {
	return []string{
		"id", "source", "title", "url", "fetch_date", "last_updated",
		"formatted_price", "price_eur", "formatted_maintenance_fee", "maintenance_fee",
		"formatted_price_sqm", "price_sqm",
		"type", "contract", "condition", "is_luxury",
		"surface_formatted", "surface", "rooms", "floor", "total_floors",
		"bathrooms", "bedrooms", "balcony", "terrace", "elevator", "garden", "cellar",
		"furnished", "kitchen",
		"build_year", "concierge", "is_accessible",
		"heating_type", "air_conditioning", "energy_class",
		"city", "country", "address", "parking_info",
		"description_title", "description", "other_amenities",
	}
}

func (d ListingDetails) CSVRow() []string {
	return []string{
		d.Id, string(d.Source), d.Title, d.URL,
		csvTime(d.FetchDate), csvTimePtr(d.LastUpdated),
		d.FormattedPrice, csvFloat(d.PriceEUR), d.FormattedMaintenanceFee, csvFloatPtr(d.MaintenanceFee),
		d.FormattedPriceSqm, csvFloatPtr(d.PriceSqm),
		d.Type, d.Contract, d.Condition, csvBoolPtr(d.IsLuxury),
		d.SurfaceFormatted, csvFloat(d.Surface), csvIntPtr(d.Rooms), d.Floor, csvIntPtr(d.TotalFloors),
		csvIntPtr(d.Bathrooms), csvIntPtr(d.Bedrooms), csvBoolPtr(d.Balcony), csvBoolPtr(d.Terrace),
		csvBoolPtr(d.Elevator), d.Garden, csvBoolPtr(d.Cellar),
		d.Furnished, d.Kitchen,
		csvIntPtr(d.BuildYear), csvBoolPtr(d.Concierge), csvBoolPtr(d.IsAccessible),
		d.HeatingType, d.AirConditioning, string(d.EnergyClass),
		d.City, d.Country, d.Address, d.ParkingInfo,
		d.DescriptionTitle, d.Description, strings.Join(d.OtherAmenities, "|"),
	}
}
