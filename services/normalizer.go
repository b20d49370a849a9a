package services

import (
	"fmt"
	"strings"

	"immobiliare-scraper/models"
	"immobiliare-scraper/utils"
)

// Normalizer turns raw listing records into analytics-ready ones: composite
// text fields are decomposed, Italian labels become enum values, and badge
// lists become a sparse feature object. Unknown optional values degrade to
// nil with a warning; unknown required values abort the record.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize maps one raw record to its normalized projection.
func (n *Normalizer) Normalize(raw models.ListingDetails) (models.ListingRecord, error) {
	propertyType, ownership, class, err := n.parseTypeField(raw.Type)
	if err != nil {
		return models.ListingRecord{}, fmt.Errorf("normalize %s: %w", raw.Id, err)
	}

	contractType, rentToOwn, availability, err := n.parseContractField(raw.Contract)
	if err != nil {
		return models.ListingRecord{}, fmt.Errorf("normalize %s: %w", raw.Id, err)
	}

	return models.ListingRecord{
		Id:     raw.Id,
		Source: raw.Source,
		Title:  raw.Title,
		URL:    raw.URL,

		FetchDate:   raw.FetchDate,
		LastUpdated: raw.LastUpdated,
		EtlDate:     models.Timestamp(),

		PriceEUR:       raw.PriceEUR,
		MaintenanceFee: raw.MaintenanceFee,
		PriceSqm:       raw.PriceSqm,

		PropertyType:         propertyType,
		OwnershipType:        ownership,
		PropertyClass:        class,
		ContractType:         contractType,
		IsRentToOwnAvailable: rentToOwn,
		CurrentAvailability:  availability,
		Condition:            lookupEnum(n.logger, "condition", raw.Condition, conditionMap),
		IsLuxury:             raw.IsLuxury,

		Surface:     raw.Surface,
		Rooms:       raw.Rooms,
		Floor:       raw.Floor,
		TotalFloors: raw.TotalFloors,

		Bathrooms:   raw.Bathrooms,
		Bedrooms:    raw.Bedrooms,
		HasBalcony:  raw.Balcony,
		HasTerrace:  raw.Terrace,
		HasElevator: raw.Elevator,
		Garden:      lookupEnum(n.logger, "garden", raw.Garden, gardenMap),
		HasCellar:   raw.Cellar,
		Furnished:   lookupEnum(n.logger, "furnished", raw.Furnished, furnitureMap),
		Kitchen:     lookupEnum(n.logger, "kitchen", raw.Kitchen, kitchenMap),

		BuildYear:    raw.BuildYear,
		HasConcierge: raw.Concierge,
		IsAccessible: raw.IsAccessible,

		HeatingType:     raw.HeatingType,
		AirConditioning: raw.AirConditioning,
		EnergyClass:     lookupEnum(n.logger, "energy_class", string(raw.EnergyClass), energyClassMap),

		Country: raw.Country,
		City:    raw.City,
		Zone:    zoneFromAddress(raw.Address),
		Address: raw.Address,

		ParkingInfo: raw.ParkingInfo,

		DescriptionTitle: raw.DescriptionTitle,
		Description:      raw.Description,

		OtherFeatures: n.mapOtherFeatures(raw.OtherAmenities),
	}, nil
}

// NormalizeAll maps a batch, continuing past per-record failures.
func (n *Normalizer) NormalizeAll(raws []models.ListingDetails) []models.ListingRecord {
	records := make([]models.ListingRecord, 0, len(raws))
	for _, raw := range raws {
		rec, err := n.Normalize(raw)
		if err != nil {
			n.logger.Error("[normalize] Skipping record: %v", err)
			continue
		}
		records = append(records, rec)
	}
	n.logger.Info("[normalize] Normalized %d/%d records", len(records), len(raws))
	return records
}

// parseTypeField decomposes the pipe-delimited type field. The first segment
// is the property type and is required; a second segment is tried as
// ownership first and property class second; with three segments the order is
// fixed.
func (n *Normalizer) parseTypeField(typeField string) (models.PropertyType, *models.OwnershipType, *models.PropertyClass, error) {
	parts := splitComposite(typeField)
	if len(parts) == 0 {
		return "", nil, nil, &models.ValidationError{Field: "type", Msg: fmt.Sprintf("empty or invalid: [%s]", typeField)}
	}

	propertyType := lookupEnum(n.logger, "property_type", parts[0], propertyTypeMap)
	if propertyType == nil {
		return "", nil, nil, &models.ValidationError{Field: "type", Msg: fmt.Sprintf("unknown property type: [%s]", parts[0])}
	}

	switch len(parts) {
	case 1:
		return *propertyType, nil, nil, nil
	case 2:
		ownership := lookupEnum(n.logger, "ownership_type", parts[1], ownershipMap)
		if ownership == nil {
			class := lookupEnum(n.logger, "property_class", parts[1], propertyClassMap)
			return *propertyType, nil, class, nil
		}
		return *propertyType, ownership, nil, nil
	default:
		if len(parts) > 3 {
			n.logger.Warn("[normalize] Unexpected number of segments in type field: %v", parts)
		}
		ownership := lookupEnum(n.logger, "ownership_type", parts[1], ownershipMap)
		class := lookupEnum(n.logger, "property_class", parts[2], propertyClassMap)
		return *propertyType, ownership, class, nil
	}
}

// parseContractField matches the contract by substring containment and pulls
// the rent-to-own and availability markers out of the same text.
func (n *Normalizer) parseContractField(contractField string) (models.ContractType, bool, *models.CurrentAvailability, error) {
	trimmed := strings.TrimSpace(contractField)
	if trimmed == "" {
		return "", false, nil, &models.ValidationError{Field: "contract", Msg: "empty or missing"}
	}

	var contractType models.ContractType
	found := false
	for label, value := range contractMap {
		if strings.Contains(trimmed, label) {
			contractType = value
			found = true
			break
		}
	}
	if !found {
		return "", false, nil, &models.ValidationError{Field: "contract", Msg: fmt.Sprintf("unknown contract type: [%s]", contractField)}
	}

	rentToOwn := strings.Contains(trimmed, "riscatto")

	var availability *models.CurrentAvailability
	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "libero"):
		v := models.AvailabilityAvailable
		availability = &v
	case strings.Contains(lower, "a reddito"):
		v := models.AvailabilityOccupied
		availability = &v
	}

	return contractType, rentToOwn, availability, nil
}

// mapOtherFeatures folds the badge list into a sparse feature object. Direct
// labels set boolean flags; composite window/TV descriptions are matched by
// substring; an exposure badge is kept verbatim. Returns nil when nothing
// resolved.
func (n *Normalizer) mapOtherFeatures(badges []string) *models.OtherFeatures {
	if len(badges) == 0 {
		return nil
	}

	features := &models.OtherFeatures{}
	matched := false
	yes := true

	for _, raw := range badges {
		badge := strings.TrimSpace(raw)
		if badge == "" {
			continue
		}

		hit := false
		if set, ok := amenityFlags[badge]; ok {
			set(features, &yes)
			hit = true
		}
		if n.parseCompositeAmenity(badge, features) {
			hit = true
		}
		if !hit {
			n.logger.Debug("[normalize] Dropping unknown badge: %q", badge)
			continue
		}
		matched = true
	}

	if !matched {
		return nil
	}
	return features
}

// parseCompositeAmenity extracts window glazing, window material, TV system
// and sun exposure from a composite badge such as
// "Infissi esterni in doppio vetro / PVC".
func (n *Normalizer) parseCompositeAmenity(badge string, features *models.OtherFeatures) bool {
	lower := strings.ToLower(badge)
	hit := false

	// Ordered: the bare "vetro" check must come last or it would shadow the
	// double/triple variants.
	switch {
	case strings.Contains(lower, string(models.GlassTriple)):
		v := models.GlassTriple
		features.WindowGlassType = &v
		hit = true
	case strings.Contains(lower, string(models.GlassDouble)):
		v := models.GlassDouble
		features.WindowGlassType = &v
		hit = true
	case strings.Contains(lower, string(models.GlassSingle)):
		v := models.GlassSingle
		features.WindowGlassType = &v
		hit = true
	}

	for label, material := range windowMaterialMap {
		if strings.Contains(lower, strings.ToLower(label)) {
			m := material
			features.WindowMaterial = &m
			hit = true
			break
		}
	}

	for label, tv := range tvSystemMap {
		if strings.Contains(badge, label) {
			t := tv
			features.TvSystem = &t
			hit = true
			break
		}
	}

	if strings.Contains(lower, "esposizione") {
		features.SunExposure = badge
		hit = true
	}

	return hit
}

// lookupEnum resolves a raw label against a mapping: exact match first, then
// case-insensitive. Unresolvable non-empty values are logged and dropped.
func lookupEnum[T any](logger *utils.Logger, field, raw string, mapping map[string]T) *T {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if v, ok := mapping[trimmed]; ok {
		return &v
	}

	lower := strings.ToLower(trimmed)
	for label, v := range mapping {
		if strings.ToLower(label) == lower {
			value := v
			return &value
		}
	}

	logger.Warn("[normalize] Unknown value %q for field %q", raw, field)
	return nil
}

// zoneFromAddress derives the zone from the "city/zone/street" address
// convention. Empty when the address carries no zone segment.
func zoneFromAddress(address string) string {
	parts := strings.Split(address, "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// splitComposite splits a pipe-delimited composite field into trimmed,
// non-empty segments.
func splitComposite(field string) []string {
	parts := strings.Split(field, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
