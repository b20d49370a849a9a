package immobiliare

import "fmt"

// ScrapingError reports a browser-level failure: navigation timeouts, missing
// page structure, or a detail page refusing to expose required content.
type ScrapingError struct {
	Op  string
	URL string
	Err error
}

func (e *ScrapingError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("scrape: %s: %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("scrape: %s: %v", e.Op, e.Err)
}

func (e *ScrapingError) Unwrap() error { return e.Err }

func newScrapingError(op, url string, err error) *ScrapingError {
	return &ScrapingError{Op: op, URL: url, Err: err}
}
