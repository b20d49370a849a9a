package immobiliare

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"immobiliare-scraper/models"
)

// Pure parsing helpers turning the raw page text into a validated
// models.ListingDetails. No browser access here, so everything is unit
// testable offline.

var (
	whitespacePattern  = regexp.MustCompile(`\s+`)
	controlPattern     = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	italianDatePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	leadingIntPattern  = regexp.MustCompile(`\d+`)
)

// normalizeText reduces arbitrary extracted text to one clean line.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = controlPattern.ReplaceAllString(s, "")
	return s
}

// foldDelimiters additionally replaces commas and semicolons with spaces so
// free text can never collide with the flat-file delimiter.
func foldDelimiters(s string) string {
	s = strings.NewReplacer(",", " ", ";", " ").Replace(s)
	return normalizeText(s)
}

// parseEuroAmount parses a human-readable euro amount ("€ 250.000",
// "250.000,50 €") into a float. Thousands separators are dots, the decimal
// separator is a comma.
func parseEuroAmount(s string) (float64, error) {
	cleaned := strings.NewReplacer("€", "", " ", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return parseEuropeanFloat(cleaned)
}

// parseEuropeanFloat parses a number in the European convention.
func parseEuropeanFloat(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

// parseSurface parses a surface value such as "82 m²" or "82,5 m²". The m²
// suffix is mandatory: a bare number is rejected as ambiguous.
func parseSurface(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasSuffix(trimmed, "m²") {
		return 0, fmt.Errorf("surface %q is missing the m² suffix", s)
	}
	return parseEuropeanFloat(strings.TrimSuffix(trimmed, "m²"))
}

// parseYesNo maps the site's affirmative/negative labels to a boolean,
// returning nil for anything unrecognized.
func parseYesNo(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sì", "si", "yes", "true", "1":
		v := true
		return &v
	case "no", "false", "0":
		v := false
		return &v
	}
	return nil
}

// parseLenientInt extracts the first integer from free text ("3", "5 locali",
// "2+"), returning nil when none is present.
func parseLenientInt(s string) *int {
	m := leadingIntPattern.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// parseItalianDate finds a dd/mm/yyyy date in the text and anchors it to the
// source locale. Returns nil when no date is present.
func parseItalianDate(s string) *time.Time {
	m := italianDatePattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, models.SourceLocation())
	return &t
}

// charValue looks a characteristic up by label, exact first then
// case-insensitively.
func charValue(chars map[string]string, key string) string {
	if v, ok := chars[key]; ok {
		return v
	}
	lower := strings.ToLower(key)
	for k, v := range chars {
		if strings.ToLower(k) == lower {
			return v
		}
	}
	return ""
}

// requireChar pulls a required characteristic, failing with a validation
// error naming the missing key.
func requireChar(chars map[string]string, key string) (string, error) {
	if v := charValue(chars, key); v != "" {
		return v, nil
	}
	return "", &models.ValidationError{Field: key, Msg: "required characteristic missing from dialog"}
}

// Characteristic dialog labels consumed by the builder.
const (
	charSurface     = "Superficie"
	charType        = "Tipologia"
	charContract    = "Contratto"
	charCondition   = "Stato"
	charRooms       = "Locali"
	charFloor       = "Piano"
	charTotalFloors = "Piani edificio"
	charBathrooms   = "Bagni"
	charBedrooms    = "Camere da letto"
	charBalcony     = "Balcone"
	charTerrace     = "Terrazzo"
	charElevator    = "Ascensore"
	charGarden      = "Giardino"
	charCellar      = "Cantina"
	charFurnished   = "Arredato"
	charKitchen     = "Cucina"
	charBuildYear   = "Anno di costruzione"
	charConcierge   = "Portineria"
	charAccessible  = "Accesso disabili"
	charHeating     = "Riscaldamento"
	charAC          = "Climatizzazione"
	charParking     = "Posti auto"
	charFee         = "Spese condominio"
)

// buildListingDetails assembles and validates the raw record from the page
// overview and the characteristics map. The three required characteristics
// (surface, type, contract) must be present.
func buildListingDetails(id models.ListingId, ov pageOverview, chars map[string]string) (models.ListingDetails, error) {
	surfaceText, err := requireChar(chars, charSurface)
	if err != nil {
		return models.ListingDetails{}, err
	}
	typeText, err := requireChar(chars, charType)
	if err != nil {
		return models.ListingDetails{}, err
	}
	contractText, err := requireChar(chars, charContract)
	if err != nil {
		return models.ListingDetails{}, err
	}

	surface, err := parseSurface(surfaceText)
	if err != nil {
		return models.ListingDetails{}, &models.ValidationError{Field: "surface", Msg: err.Error()}
	}

	price, err := parseEuroAmount(ov.Price)
	if err != nil {
		return models.ListingDetails{}, &models.ValidationError{Field: "price_eur", Msg: err.Error()}
	}

	d := models.ListingDetails{
		Id:        id.ID(),
		Source:    id.Source,
		Title:     id.Title,
		URL:       id.URL,
		FetchDate: models.Timestamp(),

		FormattedPrice:   normalizeText(ov.Price),
		PriceEUR:         price,
		Type:             normalizeText(typeText),
		Contract:         normalizeText(contractText),
		Condition:        normalizeText(charValue(chars, charCondition)),
		SurfaceFormatted: normalizeText(surfaceText),
		Surface:          surface,

		Rooms:       parseLenientInt(charValue(chars, charRooms)),
		Floor:       normalizeText(charValue(chars, charFloor)),
		TotalFloors: parseLenientInt(charValue(chars, charTotalFloors)),
		Bathrooms:   parseLenientInt(charValue(chars, charBathrooms)),
		Bedrooms:    parseLenientInt(charValue(chars, charBedrooms)),

		Balcony:   parseYesNo(charValue(chars, charBalcony)),
		Terrace:   parseYesNo(charValue(chars, charTerrace)),
		Elevator:  parseYesNo(charValue(chars, charElevator)),
		Garden:    normalizeText(charValue(chars, charGarden)),
		Cellar:    parseYesNo(charValue(chars, charCellar)),
		Furnished: normalizeText(charValue(chars, charFurnished)),
		Kitchen:   normalizeText(charValue(chars, charKitchen)),

		BuildYear:    parseLenientInt(charValue(chars, charBuildYear)),
		Concierge:    parseYesNo(charValue(chars, charConcierge)),
		IsAccessible: parseYesNo(charValue(chars, charAccessible)),

		HeatingType:     normalizeText(charValue(chars, charHeating)),
		AirConditioning: normalizeText(charValue(chars, charAC)),
		ParkingInfo:     normalizeText(charValue(chars, charParking)),

		LastUpdated: parseItalianDate(ov.LastUpdated),

		DescriptionTitle: foldDelimiters(ov.DescriptionTitle),
		Description:      foldDelimiters(ov.Description),
	}

	if ov.IsLuxury {
		lux := true
		d.IsLuxury = &lux
	}
	if ec := normalizeText(ov.EnergyClass); ec != "" {
		d.EnergyClass = models.EnergyClass(strings.ToUpper(ec))
	}
	if fee := firstNonEmpty(ov.MaintenanceFee, charValue(chars, charFee)); fee != "" {
		d.FormattedMaintenanceFee = normalizeText(fee)
		monthly := strings.TrimSuffix(strings.TrimSpace(fee), "/mese")
		if v, err := parseEuroAmount(monthly); err == nil {
			d.MaintenanceFee = &v
		}
	}
	if ov.PriceSqm != "" {
		d.FormattedPriceSqm = normalizeText(ov.PriceSqm)
		if v, err := parseEuroAmount(strings.TrimSuffix(strings.TrimSpace(ov.PriceSqm), "/m²")); err == nil {
			d.PriceSqm = &v
		}
	}
	if len(ov.LocationParts) > 0 {
		d.City = normalizeText(ov.LocationParts[0])
		parts := make([]string, 0, len(ov.LocationParts))
		for _, p := range ov.LocationParts {
			parts = append(parts, normalizeText(p))
		}
		d.Address = strings.Join(parts, "/")
	}
	for _, badge := range ov.Badges {
		if b := normalizeText(badge); b != "" {
			d.OtherAmenities = append(d.OtherAmenities, b)
		}
	}

	return models.NewListingDetails(d)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
