package models

import (
	"errors"
	"testing"
)

func validDetails() ListingDetails {
	return ListingDetails{
		Id:               "immobiliare:122361988",
		Source:           SourceImmobiliare,
		Title:            "Trilocale via Roma",
		URL:              "https://www.immobiliare.it/annunci/122361988/",
		FormattedPrice:   "€ 250.000",
		PriceEUR:         250000,
		Type:             "Appartamento | Intera proprietà | Classe immobile media",
		Contract:         "Vendita",
		SurfaceFormatted: "82 m²",
		Surface:          82,
		City:             "Milano",
		Description:      "Luminoso trilocale",
	}
}

func TestNewListingDetailsAcceptsValidRecord(t *testing.T) {
	d, err := NewListingDetails(validDetails())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Country != "IT" {
		t.Errorf("country should default to IT, got %q", d.Country)
	}
	if d.FetchDate.IsZero() {
		t.Error("fetch date should be defaulted")
	}
}

func TestNewListingDetailsRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ListingDetails)
		field  string
	}{
		{"missing id", func(d *ListingDetails) { d.Id = "" }, "id"},
		{"missing title", func(d *ListingDetails) { d.Title = "  " }, "title"},
		{"missing price text", func(d *ListingDetails) { d.FormattedPrice = "" }, "formatted_price"},
		{"zero price", func(d *ListingDetails) { d.PriceEUR = 0 }, "price_eur"},
		{"negative price", func(d *ListingDetails) { d.PriceEUR = -1 }, "price_eur"},
		{"missing type", func(d *ListingDetails) { d.Type = " \t " }, "type"},
		{"missing contract", func(d *ListingDetails) { d.Contract = "" }, "contract"},
		{"missing surface text", func(d *ListingDetails) { d.SurfaceFormatted = "" }, "surface_formatted"},
		{"zero surface", func(d *ListingDetails) { d.Surface = 0 }, "surface"},
		{"missing city", func(d *ListingDetails) { d.City = "" }, "city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)

			_, err := NewListingDetails(d)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field: got %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestNewListingDetailsTrimsStrings(t *testing.T) {
	d := validDetails()
	d.Condition = "  Ottimo / Ristrutturato  "
	d.OtherAmenities = []string{" Caminetto ", "   ", "Piscina"}

	got, err := NewListingDetails(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Condition != "Ottimo / Ristrutturato" {
		t.Errorf("condition not trimmed: %q", got.Condition)
	}
	if len(got.OtherAmenities) != 2 {
		t.Fatalf("whitespace-only amenity should be dropped, got %v", got.OtherAmenities)
	}
	if got.OtherAmenities[0] != "Caminetto" || got.OtherAmenities[1] != "Piscina" {
		t.Errorf("amenities not trimmed: %v", got.OtherAmenities)
	}
}

func TestListingDetailsCSVRowAlignsWithHeader(t *testing.T) {
	d, err := NewListingDetails(validDetails())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.CSVHeader()) != len(d.CSVRow()) {
		t.Fatalf("header has %d fields, row has %d", len(d.CSVHeader()), len(d.CSVRow()))
	}
}
