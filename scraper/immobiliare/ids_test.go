package immobiliare

import (
	"testing"

	"immobiliare-scraper/config"
	"immobiliare-scraper/utils"
)

func TestExtractListingID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.immobiliare.it/annunci/122361988/", "122361988"},
		{"https://www.immobiliare.it/annunci/122361988", "122361988"},
		{"  https://www.immobiliare.it/annunci/42/  ", "42"},
		{"https://www.immobiliare.it/annunci/abc/", ""},
		{"https://www.immobiliare.it/vendita-case/milano/", ""},
		{"https://www.immobiliare.it/annunci/123/foto/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := extractListingID(tt.url); got != tt.want {
			t.Errorf("extractListingID(%q): got %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestPageNumberFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"https://www.immobiliare.it/vendita-case/milano/?criterio=data&pag=7", 7},
		{"https://www.immobiliare.it/vendita-case/milano/?pag=12&ordine=desc", 12},
		{"https://www.immobiliare.it/vendita-case/milano/", 1},
		{"", 1},
	}

	for _, tt := range tests {
		if got := pageNumberFromURL(tt.url); got != tt.want {
			t.Errorf("pageNumberFromURL(%q): got %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestIsAuctionPrice(t *testing.T) {
	tests := []struct {
		price string
		want  bool
	}{
		{"da 300.000 €", true},
		{"  Da 120.000 €", true},
		{"€ 250.000", false},
		{"250.000 €", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isAuctionPrice(tt.price); got != tt.want {
			t.Errorf("isAuctionPrice(%q): got %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestBuildListingIdsSkipRules(t *testing.T) {
	c := &IndexCrawler{
		logger: utils.NewLogger(),
		seen:   utils.NewURLSet(),
	}

	anchors := []anchorData{
		{Href: "https://www.immobiliare.it/annunci/100/", Title: "Trilocale", Price: "€ 250.000"},
		{Href: "", Title: "No link", Price: "€ 1"},
		{Href: "https://www.immobiliare.it/annunci/101/", Title: "", Price: "€ 1"},
		{Href: "https://www.immobiliare.it/annunci/102/", Title: "Asta", Price: "da 90.000 €"},
		{Href: "https://www.immobiliare.it/vendita-case/milano/", Title: "Not a listing", Price: "€ 1"},
		{Href: "https://www.immobiliare.it/annunci/100/", Title: "Trilocale again", Price: "€ 250.000"},
		{Href: "https://www.immobiliare.it/annunci/103/", Title: "Bilocale", Price: "€ 180.000"},
	}

	ids := c.buildListingIds(anchors)
	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2: %v", len(ids), ids)
	}
	if ids[0].SourceID != "100" || ids[1].SourceID != "103" {
		t.Errorf("got ids %q and %q, want 100 and 103", ids[0].SourceID, ids[1].SourceID)
	}
}

func TestNextActionStopConditions(t *testing.T) {
	c := &IndexCrawler{
		cfg: &config.Config{
			Scraper: config.ScraperConfig{ListingLimit: 100, MaxPages: 10},
		},
	}

	tests := []struct {
		name        string
		total       int
		page        int
		nextPresent bool
		want        stopReason
	}{
		{"under all limits", 50, 5, true, stopNone},
		{"listing limit reached", 100, 5, true, stopListingLimit},
		{"listing limit exceeded", 150, 5, true, stopListingLimit},
		{"page cap reached", 50, 10, true, stopPageCap},
		{"page cap exceeded", 50, 11, true, stopPageCap},
		{"next control missing", 50, 5, false, stopNoNextPage},
		{"listing limit wins over page cap", 100, 10, false, stopListingLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.nextAction(tt.total, tt.page, tt.nextPresent); got != tt.want {
				t.Errorf("nextAction(%d, %d, %v): got %v, want %v",
					tt.total, tt.page, tt.nextPresent, got, tt.want)
			}
		})
	}
}

func TestNextPageSelector(t *testing.T) {
	if got := nextPageSelector(3); got != `a[href*="pag=4"]` {
		t.Errorf("got %q", got)
	}
}

func TestBuildListingIdsRetriesAfterConstructionFailure(t *testing.T) {
	c := &IndexCrawler{
		logger: utils.NewLogger(),
		seen:   utils.NewURLSet(),
	}

	// Whitespace-only title survives the anchor filter but fails construction.
	bad := []anchorData{
		{Href: "https://www.immobiliare.it/annunci/300/", Title: "   ", Price: "€ 100.000"},
	}
	if ids := c.buildListingIds(bad); len(ids) != 0 {
		t.Fatalf("got %d ids, want 0", len(ids))
	}

	good := []anchorData{
		{Href: "https://www.immobiliare.it/annunci/300/", Title: "Trilocale", Price: "€ 100.000"},
	}
	ids := c.buildListingIds(good)
	if len(ids) != 1 {
		t.Fatalf("got %d ids, want 1 (a failed construction must not blacklist the URL)", len(ids))
	}
	if ids[0].SourceID != "300" {
		t.Errorf("got id %q, want 300", ids[0].SourceID)
	}
}

func TestBuildListingIdsDeduplicatesAcrossPages(t *testing.T) {
	c := &IndexCrawler{
		logger: utils.NewLogger(),
		seen:   utils.NewURLSet(),
	}

	page := []anchorData{
		{Href: "https://www.immobiliare.it/annunci/200/", Title: "Quadrilocale", Price: "€ 400.000"},
	}

	first := c.buildListingIds(page)
	second := c.buildListingIds(page)
	if len(first) != 1 {
		t.Fatalf("first page: got %d ids, want 1", len(first))
	}
	if len(second) != 0 {
		t.Errorf("second page: got %d ids, want 0 (already seen)", len(second))
	}
}
