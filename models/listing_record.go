package models

import (
	"encoding/json"
	"strings"
	"time"
)

// OtherFeatures is the sparse amenity projection derived from the free-text
// badge list. Every field is optional: nil unless the amenity was explicitly
// detected.
type OtherFeatures struct {
	HasBuiltInWardrobe       *bool `bson:"has_built_in_wardrobe,omitempty" json:"has_built_in_wardrobe,omitempty"`
	HasFireplace             *bool `bson:"has_fireplace,omitempty" json:"has_fireplace,omitempty"`
	HasTennisCourt           *bool `bson:"has_tennis_court,omitempty" json:"has_tennis_court,omitempty"`
	HasElectricGate          *bool `bson:"has_electric_gate,omitempty" json:"has_electric_gate,omitempty"`
	HasKitchen               *bool `bson:"has_kitchen,omitempty" json:"has_kitchen,omitempty"`
	HasFiberOptic            *bool `bson:"has_fiber_optic,omitempty" json:"has_fiber_optic,omitempty"`
	HasPrivateOrSharedGarden *bool `bson:"has_private_or_shared_garden,omitempty" json:"has_private_or_shared_garden,omitempty"`
	HasHotTub                *bool `bson:"has_hot_tub,omitempty" json:"has_hot_tub,omitempty"`
	HasAlarmSystem           *bool `bson:"has_alarm_system,omitempty" json:"has_alarm_system,omitempty"`
	HasAttic                 *bool `bson:"has_attic,omitempty" json:"has_attic,omitempty"`
	HasPool                  *bool `bson:"has_pool,omitempty" json:"has_pool,omitempty"`
	HasArmoredDoor           *bool `bson:"has_armored_door,omitempty" json:"has_armored_door,omitempty"`
	HasReception             *bool `bson:"has_reception,omitempty" json:"has_reception,omitempty"`
	HasTavern                *bool `bson:"has_tavern,omitempty" json:"has_tavern,omitempty"`
	HasVideoIntercom         *bool `bson:"has_video_intercom,omitempty" json:"has_video_intercom,omitempty"`

	TvSystem        *TvSystem        `bson:"tv_system,omitempty" json:"tv_system,omitempty"`
	WindowGlassType *WindowGlassType `bson:"window_glass_type,omitempty" json:"window_glass_type,omitempty"`
	WindowMaterial  *WindowMaterial  `bson:"window_material,omitempty" json:"window_material,omitempty"`
	SunExposure     string           `bson:"sun_exposure,omitempty" json:"sun_exposure,omitempty"`
}

// IsEmpty reports whether no amenity was detected at all.
func (f OtherFeatures) IsEmpty() bool {
	return f == OtherFeatures{}
}

// ListingRecord is the normalized, analytics-ready projection of a
// ListingDetails. Enumerated fields hold either a recognized domain value or
// nothing; raw unvalidated strings are never stored here. Produced only by
// the normalization pipeline and never mutated afterwards.
type ListingRecord struct {
	// Identity
	Id     string `bson:"id" json:"id"`
	Source Source `bson:"source" json:"source"`
	Title  string `bson:"title" json:"title"`
	URL    string `bson:"url" json:"url"`

	// Timestamps
	FetchDate   time.Time  `bson:"fetch_date" json:"fetch_date"`
	LastUpdated *time.Time `bson:"last_updated,omitempty" json:"last_updated,omitempty"`
	EtlDate     time.Time  `bson:"etl_date" json:"etl_date"`

	// Pricing
	PriceEUR       float64  `bson:"price_eur" json:"price_eur"`
	MaintenanceFee *float64 `bson:"maintenance_fee,omitempty" json:"maintenance_fee,omitempty"`
	PriceSqm       *float64 `bson:"price_sqm,omitempty" json:"price_sqm,omitempty"`

	// Classification, decomposed from the raw composite fields
	PropertyType          PropertyType         `bson:"property_type" json:"property_type"`
	OwnershipType         *OwnershipType       `bson:"ownership_type,omitempty" json:"ownership_type,omitempty"`
	PropertyClass         *PropertyClass       `bson:"property_class,omitempty" json:"property_class,omitempty"`
	ContractType          ContractType         `bson:"contract_type" json:"contract_type"`
	IsRentToOwnAvailable  bool                 `bson:"is_rent_to_own_available" json:"is_rent_to_own_available"`
	CurrentAvailability   *CurrentAvailability `bson:"current_availability,omitempty" json:"current_availability,omitempty"`
	Condition             *PropertyCondition   `bson:"condition,omitempty" json:"condition,omitempty"`
	IsLuxury              *bool                `bson:"is_luxury,omitempty" json:"is_luxury,omitempty"`

	// Dimensions
	Surface     float64 `bson:"surface" json:"surface"`
	Rooms       *int    `bson:"rooms,omitempty" json:"rooms,omitempty"`
	Floor       string  `bson:"floor,omitempty" json:"floor,omitempty"`
	TotalFloors *int    `bson:"total_floors,omitempty" json:"total_floors,omitempty"`

	// Composition
	Bathrooms   *int           `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Bedrooms    *int           `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	HasBalcony  *bool          `bson:"has_balcony,omitempty" json:"has_balcony,omitempty"`
	HasTerrace  *bool          `bson:"has_terrace,omitempty" json:"has_terrace,omitempty"`
	HasElevator *bool          `bson:"has_elevator,omitempty" json:"has_elevator,omitempty"`
	Garden      *Garden        `bson:"garden,omitempty" json:"garden,omitempty"`
	HasCellar   *bool          `bson:"has_cellar,omitempty" json:"has_cellar,omitempty"`
	Furnished   *FurnitureType `bson:"furnished,omitempty" json:"furnished,omitempty"`
	Kitchen     *KitchenType   `bson:"kitchen,omitempty" json:"kitchen,omitempty"`

	// Building
	BuildYear    *int  `bson:"build_year,omitempty" json:"build_year,omitempty"`
	HasConcierge *bool `bson:"has_concierge,omitempty" json:"has_concierge,omitempty"`
	IsAccessible *bool `bson:"is_accessible,omitempty" json:"is_accessible,omitempty"`

	// Energy
	HeatingType     string       `bson:"heating_type,omitempty" json:"heating_type,omitempty"`
	AirConditioning string       `bson:"air_conditioning,omitempty" json:"air_conditioning,omitempty"`
	EnergyClass     *EnergyClass `bson:"energy_class,omitempty" json:"energy_class,omitempty"`

	// Location. Zone is derived from the raw address convention
	// "city/zone/street".
	Country string `bson:"country" json:"country"`
	City    string `bson:"city" json:"city"`
	Zone    string `bson:"zone,omitempty" json:"zone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`

	ParkingInfo string `bson:"parking_info,omitempty" json:"parking_info,omitempty"`

	DescriptionTitle string `bson:"description_title,omitempty" json:"description_title,omitempty"`
	Description      string `bson:"description" json:"description"`

	OtherFeatures *OtherFeatures `bson:"other_features,omitempty" json:"other_features,omitempty"`
}

// ID is the stable deduplication key carried over from the raw record.
func (r ListingRecord) ID() string { return r.Id }

// Kind names the logical collection this type is stored in.
func (r ListingRecord) Kind() string { return "records" }

func (r ListingRecord) CSVHeader() []string {
	return []string{
		"id", "source", "title", "url", "fetch_date", "last_updated", "etl_date",
		"price_eur", "maintenance_fee", "price_sqm",
		"property_type", "ownership_type", "property_class",
		"contract_type", "is_rent_to_own_available", "current_availability",
		"condition", "is_luxury",
		"surface", "rooms", "floor", "total_floors",
		"bathrooms", "bedrooms", "has_balcony", "has_terrace", "has_elevator",
		"garden", "has_cellar", "furnished", "kitchen",
		"build_year", "has_concierge", "is_accessible",
		"heating_type", "air_conditioning", "energy_class",
		"country", "city", "zone", "address", "parking_info",
		"description_title", "description", "other_features",
	}
}

func (r ListingRecord) CSVRow() []string {
	return []string{
		r.Id, string(r.Source), r.Title, r.URL,
		csvTime(r.FetchDate), csvTimePtr(r.LastUpdated), csvTime(r.EtlDate),
		csvFloat(r.PriceEUR), csvFloatPtr(r.MaintenanceFee), csvFloatPtr(r.PriceSqm),
		string(r.PropertyType), enumPtr(r.OwnershipType), enumPtr(r.PropertyClass),
		string(r.ContractType), csvBool(r.IsRentToOwnAvailable), enumPtr(r.CurrentAvailability),
		enumPtr(r.Condition), csvBoolPtr(r.IsLuxury),
		csvFloat(r.Surface), csvIntPtr(r.Rooms), r.Floor, csvIntPtr(r.TotalFloors),
		csvIntPtr(r.Bathrooms), csvIntPtr(r.Bedrooms), csvBoolPtr(r.HasBalcony),
		csvBoolPtr(r.HasTerrace), csvBoolPtr(r.HasElevator),
		enumPtr(r.Garden), csvBoolPtr(r.HasCellar), enumPtr(r.Furnished), enumPtr(r.Kitchen),
		csvIntPtr(r.BuildYear), csvBoolPtr(r.HasConcierge), csvBoolPtr(r.IsAccessible),
		r.HeatingType, r.AirConditioning, enumPtr(r.EnergyClass),
		r.Country, r.City, r.Zone, r.Address, r.ParkingInfo,
		r.DescriptionTitle, r.Description, r.featuresCell(),
	}
}

// featuresCell renders the nested amenity object as a compact JSON cell.
func (r ListingRecord) featuresCell() string {
	if r.OtherFeatures == nil {
		return ""
	}
	b, err := json.Marshal(r.OtherFeatures)
	if err != nil {
		return ""
	}
	return string(b)
}

func enumPtr[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(string(*v))
}
