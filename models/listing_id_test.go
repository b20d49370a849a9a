package models

import "testing"

func TestNewListingIdTrimsFields(t *testing.T) {
	id, err := NewListingId(SourceImmobiliare, " 122361988 ", "  Trilocale via Roma  ", " https://www.immobiliare.it/annunci/122361988/ ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id.SourceID != "122361988" {
		t.Errorf("source id: got %q", id.SourceID)
	}
	if id.Title != "Trilocale via Roma" {
		t.Errorf("title: got %q", id.Title)
	}
	if id.URL != "https://www.immobiliare.it/annunci/122361988/" {
		t.Errorf("url: got %q", id.URL)
	}
	if id.FetchDate.IsZero() {
		t.Error("fetch date should be set")
	}
}

func TestNewListingIdRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		source   Source
		sourceID string
		title    string
		url      string
	}{
		{"empty source", "", "1", "t", "u"},
		{"empty source id", SourceImmobiliare, "", "t", "u"},
		{"whitespace source id", SourceImmobiliare, "   ", "t", "u"},
		{"empty title", SourceImmobiliare, "1", "", "u"},
		{"whitespace title", SourceImmobiliare, "1", "  \t ", "u"},
		{"empty url", SourceImmobiliare, "1", "t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewListingId(tt.source, tt.sourceID, tt.title, tt.url)
			if err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestListingIdKeyComposition(t *testing.T) {
	a, err := NewListingId(SourceImmobiliare, "42", "Title A", "https://example.com/a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewListingId(SourceImmobiliare, "42", "Different title", "https://example.com/b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.ID() != "immobiliare:42" {
		t.Errorf("id: got %q, want %q", a.ID(), "immobiliare:42")
	}
	if a.ID() != b.ID() {
		t.Error("identity key must depend only on source and source id")
	}
}

func TestListingIdCSVRowAlignsWithHeader(t *testing.T) {
	id, err := NewListingId(SourceImmobiliare, "7", "Casa", "https://example.com/7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	header := id.CSVHeader()
	row := id.CSVRow()
	if len(header) != len(row) {
		t.Fatalf("header has %d fields, row has %d", len(header), len(row))
	}
	if row[0] != "immobiliare:7" {
		t.Errorf("first cell should be the computed id, got %q", row[0])
	}
}
