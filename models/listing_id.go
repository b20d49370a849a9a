package models

import (
	"strings"
	"time"
)

// sourceLocation anchors all record timestamps to the source website's locale.
var sourceLocation = mustLoadLocation("Europe/Rome")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Timestamp returns the current time in the source locale.
func Timestamp() time.Time {
	return time.Now().In(sourceLocation)
}

// SourceLocation returns the timezone all source dates are anchored to.
func SourceLocation() *time.Location { return sourceLocation }

// ListingId is the lightweight identity of one listing, produced by index-page
// crawling before any detail extraction. Immutable once constructed.
type ListingId struct {
	Source    Source    `bson:"source" json:"source"`
	SourceID  string    `bson:"source_id" json:"source_id"`
	Title     string    `bson:"title" json:"title"`
	URL       string    `bson:"url" json:"url"`
	FetchDate time.Time `bson:"fetch_date" json:"fetch_date"`
}

// NewListingId validates and constructs a ListingId. Source and source id are
// required; title and url are trimmed but may be empty only if the caller
// accepts an unusable identity, so they are required too.
func NewListingId(source Source, sourceID, title, url string) (ListingId, error) {
	sourceID = strings.TrimSpace(sourceID)
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)

	if source == "" {
		return ListingId{}, newValidationError("source", "must not be empty")
	}
	if sourceID == "" {
		return ListingId{}, newValidationError("source_id", "must not be empty")
	}
	if title == "" {
		return ListingId{}, newValidationError("title", "must not be empty")
	}
	if url == "" {
		return ListingId{}, newValidationError("url", "must not be empty")
	}

	return ListingId{
		Source:    source,
		SourceID:  sourceID,
		Title:     title,
		URL:       url,
		FetchDate: Timestamp(),
	}, nil
}

// ID is the stable deduplication key: "{source}:{sourceId}". It depends only
// on the source and the source id, never on title or url.
func (l ListingId) ID() string {
	return string(l.Source) + ":" + l.SourceID
}

// Kind names the logical collection this type is stored in.
func (l ListingId) Kind() string { return "ids" }

// CSVHeader lists the exported field names, computed id included.
func (l ListingId) CSVHeader() []string {
	return []string{"id", "source", "source_id", "title", "url", "fetch_date"}
}

// CSVRow renders the identity as one delimited-file row.
func (l ListingId) CSVRow() []string {
	return []string{
		l.ID(),
		string(l.Source),
		l.SourceID,
		l.Title,
		l.URL,
		l.FetchDate.Format(time.RFC3339),
	}
}
