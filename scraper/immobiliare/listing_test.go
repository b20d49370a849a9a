package immobiliare

import (
	"errors"
	"testing"

	"immobiliare-scraper/config"
	"immobiliare-scraper/models"
	"immobiliare-scraper/utils"
)

func TestNewDetailCrawlerRejectsForeignURL(t *testing.T) {
	id, err := models.NewListingId(models.SourceImmobiliare, "1", "Casa",
		"https://www.immobiliare.it/vendita-case/milano/")
	if err != nil {
		t.Fatalf("test identity: %v", err)
	}

	_, err = NewDetailCrawler(id, &config.Config{}, DefaultLocators(), nil, utils.NewLogger())
	if err == nil {
		t.Fatal("expected error for URL outside the detail namespace")
	}
	var serr *ScrapingError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *ScrapingError, got %T", err)
	}
}

func TestNewDetailCrawlerAcceptsDetailURL(t *testing.T) {
	id, err := models.NewListingId(models.SourceImmobiliare, "122361988", "Casa",
		"https://www.immobiliare.it/annunci/122361988/")
	if err != nil {
		t.Fatalf("test identity: %v", err)
	}

	if _, err := NewDetailCrawler(id, &config.Config{}, DefaultLocators(), nil, utils.NewLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseCharacteristics(t *testing.T) {
	loc := DefaultLocators()
	html := `<div class="nd-dialogFrame__container">
		<div class="styles_ld-primaryFeaturesDialogSection__feature__Maf3F">
			<dt class="styles_ld-primaryFeaturesDialogSection__featureTitle__VI7c0">Superficie</dt>
			<dd class="styles_ld-primaryFeaturesDialogSection__featureDescription__G9ZGQ">82 m²</dd>
		</div>
		<div class="styles_ld-primaryFeaturesDialogSection__feature__Maf3F">
			<dt class="styles_ld-primaryFeaturesDialogSection__featureTitle__VI7c0"> Tipologia </dt>
			<dd class="styles_ld-primaryFeaturesDialogSection__featureDescription__G9ZGQ">
				Appartamento | Intera proprietà
			</dd>
		</div>
		<div class="styles_ld-primaryFeaturesDialogSection__feature__Maf3F">
			<dt class="styles_ld-primaryFeaturesDialogSection__featureTitle__VI7c0">Vuoto</dt>
			<dd class="styles_ld-primaryFeaturesDialogSection__featureDescription__G9ZGQ"></dd>
		</div>
	</div>`

	chars, err := parseCharacteristics(html, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chars) != 2 {
		t.Fatalf("got %d pairs, want 2: %v", len(chars), chars)
	}
	if chars["Superficie"] != "82 m²" {
		t.Errorf("Superficie: got %q", chars["Superficie"])
	}
	if chars["Tipologia"] != "Appartamento | Intera proprietà" {
		t.Errorf("Tipologia: got %q (whitespace should be collapsed)", chars["Tipologia"])
	}
}

func TestParseCharacteristicsEmptyDialog(t *testing.T) {
	chars, err := parseCharacteristics(`<div class="nd-dialogFrame__container"></div>`, DefaultLocators())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chars) != 0 {
		t.Errorf("got %d pairs, want 0", len(chars))
	}
}
