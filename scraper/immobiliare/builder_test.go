package immobiliare

import (
	"errors"
	"testing"
	"time"

	"immobiliare-scraper/models"
)

func TestParseSurface(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"82 m²", 82, false},
		{"82,5 m²", 82.5, false},
		{"1.250 m²", 1250, false},
		{"82", 0, true},
		{"", 0, true},
		{"abc m²", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSurface(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSurface(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSurface(%q): unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseSurface(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEuroAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"€ 250.000", 250000, false},
		{"250.000,50 €", 250000.50, false},
		{"1.250", 1250, false},
		{"90", 90, false},
		{"", 0, true},
		{"prezzo su richiesta", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseEuroAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseEuroAmount(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEuroAmount(%q): unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseEuroAmount(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseYesNo(t *testing.T) {
	yes := true
	no := false
	tests := []struct {
		in   string
		want *bool
	}{
		{"Sì", &yes},
		{"si", &yes},
		{"SI", &yes},
		{"No", &no},
		{"1 balcone", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := parseYesNo(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseYesNo(%q): got %v, want nil", tt.in, *got)
		case tt.want != nil && got == nil:
			t.Errorf("parseYesNo(%q): got nil, want %v", tt.in, *tt.want)
		case tt.want != nil && got != nil && *got != *tt.want:
			t.Errorf("parseYesNo(%q): got %v, want %v", tt.in, *got, *tt.want)
		}
	}
}

func TestParseLenientInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3", 3, true},
		{"5 locali", 5, true},
		{"2+", 2, true},
		{"mansarda", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got := parseLenientInt(tt.in)
		if !tt.ok {
			if got != nil {
				t.Errorf("parseLenientInt(%q): got %d, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil {
			t.Errorf("parseLenientInt(%q): got nil, want %d", tt.in, tt.want)
			continue
		}
		if *got != tt.want {
			t.Errorf("parseLenientInt(%q): got %d, want %d", tt.in, *got, tt.want)
		}
	}
}

func TestParseItalianDate(t *testing.T) {
	got := parseItalianDate("Annuncio aggiornato il 05/03/2025")
	if got == nil {
		t.Fatal("expected a date, got nil")
	}
	want := time.Date(2025, time.March, 5, 0, 0, 0, 0, models.SourceLocation())
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if parseItalianDate("nessuna data qui") != nil {
		t.Error("expected nil for text without a date")
	}
	if parseItalianDate("99/99/2025") != nil {
		t.Error("expected nil for an out-of-range date")
	}
}

func TestNormalizeTextCollapsesWhitespace(t *testing.T) {
	got := normalizeText("  Trilocale\n\tvia   Roma \r\n ")
	if got != "Trilocale via Roma" {
		t.Errorf("got %q", got)
	}
}

func TestFoldDelimiters(t *testing.T) {
	got := foldDelimiters("Ampio, luminoso; ristrutturato")
	if got != "Ampio luminoso ristrutturato" {
		t.Errorf("got %q", got)
	}
}

func testOverview() pageOverview {
	return pageOverview{
		Price:            "€ 250.000",
		LocationParts:    []string{"Milano", "Navigli", "Via Vigevano 9"},
		LastUpdated:      "Annuncio aggiornato il 05/03/2025",
		EnergyClass:      "a+",
		MaintenanceFee:   "€ 90/mese",
		PriceSqm:         "3.048 €/m²",
		DescriptionTitle: "Trilocale ristrutturato, zona Navigli",
		Description:      "Luminoso; ampio, silenzioso",
		Badges:           []string{"Caminetto", "Fibra ottica"},
	}
}

func testCharacteristics() map[string]string {
	return map[string]string{
		"Superficie": "82 m²",
		"Tipologia":  "Appartamento | Intera proprietà",
		"Contratto":  "Vendita",
		"Locali":     "3",
		"Balcone":    "Sì",
		"Ascensore":  "No",
	}
}

func testID(t *testing.T) models.ListingId {
	t.Helper()
	id, err := models.NewListingId(models.SourceImmobiliare, "122361988",
		"Trilocale via Vigevano", "https://www.immobiliare.it/annunci/122361988/")
	if err != nil {
		t.Fatalf("test identity: %v", err)
	}
	return id
}

func TestBuildListingDetails(t *testing.T) {
	d, err := buildListingDetails(testID(t), testOverview(), testCharacteristics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Id != "immobiliare:122361988" {
		t.Errorf("id: got %q", d.Id)
	}
	if d.PriceEUR != 250000 {
		t.Errorf("price: got %v", d.PriceEUR)
	}
	if d.Surface != 82 {
		t.Errorf("surface: got %v", d.Surface)
	}
	if d.City != "Milano" {
		t.Errorf("city: got %q", d.City)
	}
	if d.Address != "Milano/Navigli/Via Vigevano 9" {
		t.Errorf("address: got %q", d.Address)
	}
	if d.EnergyClass != models.EnergyClass("A+") {
		t.Errorf("energy class: got %q", d.EnergyClass)
	}
	if d.LastUpdated == nil {
		t.Error("last updated should be parsed")
	}
	if d.Rooms == nil || *d.Rooms != 3 {
		t.Errorf("rooms: got %v", d.Rooms)
	}
	if d.Balcony == nil || !*d.Balcony {
		t.Error("balcony should be true")
	}
	if d.Elevator == nil || *d.Elevator {
		t.Error("elevator should be false")
	}
	if d.MaintenanceFee == nil {
		t.Error("maintenance fee should be parsed")
	}
	if d.Description != "Luminoso ampio silenzioso" {
		t.Errorf("description delimiters not folded: %q", d.Description)
	}
}

func TestBuildListingDetailsMissingRequiredCharacteristic(t *testing.T) {
	for _, key := range []string{charSurface, charType, charContract} {
		t.Run(key, func(t *testing.T) {
			chars := testCharacteristics()
			delete(chars, key)

			_, err := buildListingDetails(testID(t), testOverview(), chars)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != key {
				t.Errorf("error should name the missing key: got %q, want %q", verr.Field, key)
			}
		})
	}
}

func TestBuildListingDetailsCaseInsensitiveKeys(t *testing.T) {
	chars := map[string]string{
		"superficie": "60 m²",
		"tipologia":  "Loft",
		"contratto":  "Affitto",
	}

	d, err := buildListingDetails(testID(t), testOverview(), chars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Surface != 60 {
		t.Errorf("surface: got %v", d.Surface)
	}
}
