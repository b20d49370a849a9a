package immobiliare

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"immobiliare-scraper/config"
	"immobiliare-scraper/models"
	"immobiliare-scraper/storage"
	"immobiliare-scraper/utils"
)

// auctionPricePrefix marks variable/auction prices ("da 300.000 €"), which
// carry no transparent offer price and are skipped.
const auctionPricePrefix = "da "

var (
	listingIDPattern = regexp.MustCompile(`/annunci/(\d+)/?$`)
	pageParamPattern = regexp.MustCompile(`pag=(\d+)`)
)

// IndexCrawler walks the search result pages, harvesting listing identities
// and flushing each page to storage before moving on, so a mid-run crash
// never loses completed pages.
type IndexCrawler struct {
	cfg    *config.Config
	loc    Locators
	logger *utils.Logger
	store  storage.Storage[models.ListingId]
	pacing *PacingPolicy
	seen   *utils.URLSet

	collected []models.ListingId
}

// NewIndexCrawler builds a crawler writing identities to store.
func NewIndexCrawler(cfg *config.Config, loc Locators, store storage.Storage[models.ListingId], pacing *PacingPolicy, logger *utils.Logger) *IndexCrawler {
	return &IndexCrawler{
		cfg:    cfg,
		loc:    loc,
		logger: logger,
		store:  store,
		pacing: pacing,
		seen:   utils.NewURLSet(),
	}
}

// anchorData is the per-card projection pulled out of the result page in one
// JS pass.
type anchorData struct {
	Href  string `json:"href"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// Crawl pages through the search results until the listing limit or page cap
// is reached, or the next-page control disappears. Returns the number of
// identities newly stored.
func (c *IndexCrawler) Crawl(ctx context.Context, session *Session) (int, error) {
	if err := session.Navigate(ctx, c.cfg.Source.ScrapeURL, ""); err != nil {
		return 0, err
	}

	total := 0
	for {
		page, err := c.currentPage(ctx, session)
		if err != nil {
			return total, err
		}
		c.logger.Info("[index] Scraping page %d...", page)

		// Small random scroll to look alive before reading the DOM.
		if err := session.ScrollTo(ctx, c.pacing.IntBetween(100, 300)); err != nil {
			return total, err
		}
		c.pacing.Wait()

		anchors, err := c.extractAnchors(ctx, session)
		if err != nil {
			return total, err
		}
		c.logger.Info("[index] Found %d listing anchors", len(anchors))

		ids := c.buildListingIds(anchors)
		stored, err := c.store.Append(ctx, ids)
		if err != nil {
			return total, err
		}
		total += stored
		c.collected = append(c.collected, ids...)
		c.logger.Info("[index] New listings stored: [%d]. Total: [%d]", stored, total)

		if reason := c.nextAction(total, page, true); reason != stopNone {
			c.logStop(reason)
			break
		}

		c.pacing.Wait()
		if err := session.ScrollToBottom(ctx, c.pacing.Duration()); err != nil {
			return total, err
		}

		present, err := c.nextPagePresent(ctx, session, page)
		if err != nil {
			return total, err
		}
		if reason := c.nextAction(total, page, present); reason != stopNone {
			c.logStop(reason)
			break
		}
		if err := c.toNextPage(ctx, session, page); err != nil {
			return total, err
		}
	}

	c.logger.Info("[index] Done. Total listing identities stored: %d", total)
	return total, nil
}

// Collected returns the unique identities harvested during this run, in
// discovery order. Used to drive the detail crawl without a storage read-back.
func (c *IndexCrawler) Collected() []models.ListingId {
	return c.collected
}

// currentPage reads the page number from the pag= query parameter of the
// tab's URL, defaulting to 1.
func (c *IndexCrawler) currentPage(ctx context.Context, session *Session) (int, error) {
	url, err := session.Location(ctx)
	if err != nil {
		return 0, err
	}
	return pageNumberFromURL(url), nil
}

// pageNumberFromURL extracts the pag= parameter, or 1 when absent.
func pageNumberFromURL(url string) int {
	m := pageParamPattern.FindStringSubmatch(url)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	return n
}

// extractAnchors pulls every listing anchor's href, title and price text in a
// single page evaluation.
func (c *IndexCrawler) extractAnchors(ctx context.Context, session *Session) ([]anchorData, error) {
	js := fmt.Sprintf(`(function() {
		var out = [];
		var anchors = document.querySelectorAll(%q);
		for (var i = 0; i < anchors.length; i++) {
			var a = anchors[i];
			var card = a.closest('li') || a.closest('div[class*="card"]') || a.parentElement;
			var priceText = '';
			if (card) {
				var lines = card.innerText.split('\n');
				for (var j = 0; j < lines.length; j++) {
					if (lines[j].indexOf('€') >= 0) { priceText = lines[j].trim(); break; }
				}
			}
			out.push({
				href: a.href || '',
				title: a.getAttribute('title') || a.innerText.trim(),
				price: priceText
			});
		}
		return out;
	})()`, c.loc.ListingAnchor)

	var anchors []anchorData
	if err := session.Evaluate(ctx, js, &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}

// buildListingIds filters and converts raw anchors to identities. Per-anchor
// problems are logged and skipped; one bad card never aborts the page.
func (c *IndexCrawler) buildListingIds(anchors []anchorData) []models.ListingId {
	ids := make([]models.ListingId, 0, len(anchors))
	for _, a := range anchors {
		if a.Href == "" {
			c.logger.Warn("[index] Listing without link found, skipping")
			continue
		}
		if a.Title == "" {
			c.logger.Warn("[index] Listing without title found, skipping")
			continue
		}
		if isAuctionPrice(a.Price) {
			c.logger.Debug("[index] Skipping auction/variable price listing: %s", a.Href)
			continue
		}

		sourceID := extractListingID(a.Href)
		if sourceID == "" {
			c.logger.Warn("[index] Could not extract ID from link: %s", a.Href)
			continue
		}
		if c.seen.Contains(a.Href) {
			c.logger.Debug("[index] Skipping duplicate: %s", a.Href)
			continue
		}

		id, err := models.NewListingId(models.SourceImmobiliare, sourceID, a.Title, a.Href)
		if err != nil {
			c.logger.Warn("[index] Error processing listing %s: %v", a.Href, err)
			continue
		}

		// Marked seen only once construction succeeds, so a transient failure
		// does not blacklist the URL for later pages.
		c.seen.Add(a.Href)
		ids = append(ids, id)
	}
	return ids
}

// extractListingID pulls the numeric id out of a detail URL of the form
// ".../annunci/{id}/". Returns "" when the URL does not match.
func extractListingID(url string) string {
	m := listingIDPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return ""
	}
	return m[1]
}

// isAuctionPrice reports whether the price text advertises a starting price
// rather than a fixed offer.
func isAuctionPrice(price string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(price)), auctionPricePrefix)
}

// stopReason classifies why the crawl loop halts.
type stopReason int

const (
	stopNone stopReason = iota
	stopListingLimit
	stopPageCap
	stopNoNextPage
)

// nextAction decides whether the crawl continues past the current page. The
// limits are checked in priority order: listing limit, page cap, then the
// presence of a next-page control.
func (c *IndexCrawler) nextAction(total, page int, nextPresent bool) stopReason {
	if total >= c.cfg.Scraper.ListingLimit {
		return stopListingLimit
	}
	if page >= c.cfg.Scraper.MaxPages {
		return stopPageCap
	}
	if !nextPresent {
		return stopNoNextPage
	}
	return stopNone
}

func (c *IndexCrawler) logStop(reason stopReason) {
	switch reason {
	case stopListingLimit:
		c.logger.Info("[index] Listing limit %d reached, stopping", c.cfg.Scraper.ListingLimit)
	case stopPageCap:
		c.logger.Info("[index] Page cap %d reached, stopping", c.cfg.Scraper.MaxPages)
	case stopNoNextPage:
		c.logger.Error("[index] No more pages to scrape or next-page control not found")
	}
}

// nextPageSelector targets the link to page n+1.
func nextPageSelector(page int) string {
	return fmt.Sprintf(`a[href*="pag=%d"]`, page+1)
}

// nextPagePresent probes the DOM for the next-page control without touching it.
func (c *IndexCrawler) nextPagePresent(ctx context.Context, session *Session, page int) (bool, error) {
	js := fmt.Sprintf(`document.querySelector(%q) !== null`, nextPageSelector(page))
	var present bool
	if err := session.Evaluate(ctx, js, &present); err != nil {
		return false, err
	}
	return present, nil
}

// toNextPage clicks the next-page link like a human would. Callers verify the
// control's presence first.
func (c *IndexCrawler) toNextPage(ctx context.Context, session *Session, page int) error {
	c.logger.Info("[index] Next-page control found, navigating to page %d", page+1)
	c.pacing.Wait()
	if err := session.HumanClick(ctx, nextPageSelector(page)); err != nil {
		return err
	}
	c.pacing.Wait()
	return nil
}
