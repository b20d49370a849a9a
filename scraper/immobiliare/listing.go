package immobiliare

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"immobiliare-scraper/config"
	"immobiliare-scraper/models"
	"immobiliare-scraper/utils"
)

// detailURLPrefix is the only URL shape DetailCrawler accepts.
const detailURLPrefix = "https://www.immobiliare.it/annunci/"

// DetailCrawler extracts one complete raw record from a listing detail page.
// Required fields live inside the "Vedi tutte le caratteristiche" dialog, so
// failing to open it aborts the listing rather than storing partial data.
type DetailCrawler struct {
	id     models.ListingId
	cfg    *config.Config
	loc    Locators
	logger *utils.Logger
	pacing *PacingPolicy
}

// NewDetailCrawler validates the listing URL up front: a URL outside the
// detail-page namespace can never produce a record, so it fails fast.
func NewDetailCrawler(id models.ListingId, cfg *config.Config, loc Locators, pacing *PacingPolicy, logger *utils.Logger) (*DetailCrawler, error) {
	if !strings.HasPrefix(id.URL, detailURLPrefix) {
		return nil, newScrapingError("new detail crawler", id.URL,
			fmt.Errorf("url must start with %q", detailURLPrefix))
	}
	return &DetailCrawler{id: id, cfg: cfg, loc: loc, logger: logger, pacing: pacing}, nil
}

// pageOverview is everything read from the detail page outside the
// characteristics dialog, captured in one evaluation.
type pageOverview struct {
	Price            string   `json:"price"`
	LocationParts    []string `json:"locationParts"`
	LastUpdated      string   `json:"lastUpdated"`
	EnergyClass      string   `json:"energyClass"`
	MaintenanceFee   string   `json:"maintenanceFee"`
	PriceSqm         string   `json:"priceSqm"`
	IsLuxury         bool     `json:"isLuxury"`
	DescriptionTitle string   `json:"descriptionTitle"`
	Description      string   `json:"description"`
	Badges           []string `json:"badges"`
}

// Scrape drives the full detail-page protocol and returns the validated raw
// record.
func (d *DetailCrawler) Scrape(ctx context.Context, session *Session) (models.ListingDetails, error) {
	if err := session.Navigate(ctx, d.id.URL, d.loc.Title); err != nil {
		return models.ListingDetails{}, err
	}

	session.DismissCookieBanner(ctx)
	d.pacing.Wait()
	session.DismissLoginPopup(ctx)
	d.pacing.Wait()

	if err := session.ScrollTo(ctx, d.pacing.IntBetween(100, 700)); err != nil {
		return models.ListingDetails{}, err
	}

	ov, err := d.extractOverview(ctx, session)
	if err != nil {
		return models.ListingDetails{}, err
	}

	ov.DescriptionTitle, ov.Description = d.extractDescription(ctx, session)

	chars, err := d.extractCharacteristics(ctx, session)
	if err != nil {
		return models.ListingDetails{}, err
	}
	d.logger.Info("[detail] Extracted %d characteristics for %s", len(chars), d.id.ID())

	details, err := buildListingDetails(d.id, ov, chars)
	if err != nil {
		return models.ListingDetails{}, fmt.Errorf("detail %s: build record: %w", d.id.ID(), err)
	}
	return details, nil
}

// extractOverview reads price, location breadcrumb, last-update date, energy
// class (from the data attribute, not the visible text), fee, price per sqm,
// luxury marker and feature badges in a single page evaluation.
func (d *DetailCrawler) extractOverview(ctx context.Context, session *Session) (pageOverview, error) {
	js := fmt.Sprintf(`(function() {
		function text(sel) {
			var el = document.querySelector(sel);
			return el ? el.innerText.trim() : '';
		}
		function all(sel) {
			var out = [];
			document.querySelectorAll(sel).forEach(function(el) {
				var t = el.innerText.trim();
				if (t) out.push(t);
			});
			return out;
		}
		var energy = '';
		var ce = document.querySelector(%q);
		if (ce) energy = ce.getAttribute('data-energy-class') || ce.innerText.trim();
		return {
			price: text(%q),
			locationParts: all(%q),
			lastUpdated: text(%q),
			energyClass: energy,
			maintenanceFee: text(%q),
			priceSqm: text(%q),
			isLuxury: document.querySelector(%q) !== null,
			descriptionTitle: text(%q),
			description: '',
			badges: all(%q)
		};
	})()`,
		d.loc.EnergyClass,
		d.loc.Price,
		d.loc.LocationPart,
		d.loc.LastUpdated,
		d.loc.MaintenanceFee,
		d.loc.PriceSqm,
		d.loc.LuxuryBadge,
		d.loc.DescriptionTitle,
		d.loc.FeatureBadge,
	)

	var ov pageOverview
	if err := session.Evaluate(ctx, js, &ov); err != nil {
		return pageOverview{}, newScrapingError("extract overview", d.id.URL, err)
	}
	return ov, nil
}

// extractDescription expands the "leggi tutto" section and reads both parts.
// Descriptions are optional, so failures degrade to empty strings.
func (d *DetailCrawler) extractDescription(ctx context.Context, session *Session) (title, body string) {
	clickJS := fmt.Sprintf(`(function() {
		var btn = document.querySelector(%q);
		if (btn) { btn.scrollIntoView({block: 'center'}); btn.click(); return true; }
		return false;
	})()`, d.loc.ReadAllButton)

	var clicked bool
	if err := session.Evaluate(ctx, clickJS, &clicked); err != nil {
		d.logger.Warn("[detail] Error expanding description: %v", err)
		return "", ""
	}
	if clicked {
		d.pacing.Wait()
	}

	readJS := fmt.Sprintf(`(function() {
		function text(sel) {
			var el = document.querySelector(sel);
			return el ? el.innerText.trim() : '';
		}
		return {title: text(%q), body: text(%q)};
	})()`, d.loc.DescriptionTitle, d.loc.DescriptionBody)

	var out struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := session.Evaluate(ctx, readJS, &out); err != nil {
		d.logger.Warn("[detail] Error extracting description: %v", err)
		return "", ""
	}
	return out.Title, out.Body
}

// extractCharacteristics opens the characteristics dialog and extracts every
// key/value pair generically. The dialog is a hard dependency.
func (d *DetailCrawler) extractCharacteristics(ctx context.Context, session *Session) (map[string]string, error) {
	openJS := fmt.Sprintf(`(function() {
		var btn = document.querySelector(%q);
		if (!btn) return false;
		btn.scrollIntoView({block: 'center'});
		btn.click();
		return true;
	})()`, d.loc.DialogOpenButton)

	var opened bool
	if err := session.Evaluate(ctx, openJS, &opened); err != nil {
		return nil, newScrapingError("open characteristics dialog", d.id.URL, err)
	}
	if !opened {
		return nil, newScrapingError("open characteristics dialog", d.id.URL,
			fmt.Errorf("open button not found"))
	}
	d.pacing.Wait()

	html, err := session.OuterHTML(ctx, d.loc.DialogContainer)
	if err != nil {
		return nil, newScrapingError("open characteristics dialog", d.id.URL, err)
	}

	chars, err := parseCharacteristics(html, d.loc)
	if err != nil {
		return nil, newScrapingError("parse characteristics dialog", d.id.URL, err)
	}
	return chars, nil
}

// parseCharacteristics extracts all dt/dd pairs from the dialog markup. No
// per-field selectors: every pair the dialog exposes is captured.
func parseCharacteristics(html string, loc Locators) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	chars := make(map[string]string)
	doc.Find(loc.DialogFeature).Each(func(_ int, feature *goquery.Selection) {
		key := normalizeText(feature.Find(loc.DialogFeatureKey).Text())
		value := normalizeText(feature.Find(loc.DialogFeatureValue).Text())
		if key != "" && value != "" {
			chars[key] = value
		}
	})
	return chars, nil
}
