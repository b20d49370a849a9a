package immobiliare

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"

	"immobiliare-scraper/config"
	"immobiliare-scraper/utils"
)

// Realistic desktop fingerprints rotated per session.
var userAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

var windowSizes = [][2]int{
	{1920, 1080},
	{1680, 1050},
	{1600, 900},
	{1536, 864},
}

// BrowserSession configures and spawns stealth Chrome sessions.
type BrowserSession struct {
	cfg    config.ScraperConfig
	loc    Locators
	logger *utils.Logger
	rng    *rand.Rand
}

// NewBrowserSession creates a session factory. Each Open call spawns exactly
// one browser process.
func NewBrowserSession(cfg config.ScraperConfig, loc Locators, logger *utils.Logger) *BrowserSession {
	return &BrowserSession{
		cfg:    cfg,
		loc:    loc,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Session is one live browser tab. Navigation state persists across
// operations, so a pagination click on one call is visible to the next.
// Callers must defer Close.
type Session struct {
	cfg    config.ScraperConfig
	loc    Locators
	logger *utils.Logger
	tab    context.Context
	cancel []context.CancelFunc
	closed bool
}

// Open spawns the browser with automation fingerprints disabled and a
// randomized user agent and window size.
func (b *BrowserSession) Open(ctx context.Context) (*Session, error) {
	ua := userAgents[b.rng.Intn(len(userAgents))]
	size := windowSizes[b.rng.Intn(len(windowSizes))]

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.UserAgent(ua),
		chromedp.WindowSize(size[0], size[1]),
	)

	chromeBin := b.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tab, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	// Materialize the browser process now so startup failures surface here.
	if err := chromedp.Run(tab); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, newScrapingError("open browser", "", err)
	}

	b.logger.Info("[browser] Session opened (headless: %v, ua: %q, window: %dx%d)",
		b.cfg.Headless, ua, size[0], size[1])

	return &Session{
		cfg:    b.cfg,
		loc:    b.loc,
		logger: b.logger,
		tab:    tab,
		cancel: []context.CancelFunc{cancelTab, cancelAlloc},
	}, nil
}

// Close terminates the browser process. Safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, cancel := range s.cancel {
		cancel()
	}
	s.logger.Info("[browser] Session closed")
}

// run executes actions against the live tab under the given deadline.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tctx, cancel := context.WithTimeout(s.tab, timeout)
	defer cancel()
	return chromedp.Run(tctx, actions...)
}

// Navigate loads url and, when waitSelector is non-empty, blocks until the
// element is visible. Timeouts and load failures surface as *ScrapingError.
func (s *Session) Navigate(ctx context.Context, url, waitSelector string) error {
	s.logger.Info("[browser] Navigating to: %s", url)

	actions := []chromedp.Action{chromedp.Navigate(url)}
	if waitSelector != "" {
		actions = append(actions, chromedp.WaitVisible(waitSelector, chromedp.ByQuery))
	}

	if err := s.run(ctx, s.cfg.NavTimeout(), actions...); err != nil {
		return newScrapingError("navigate", url, err)
	}
	return nil
}

// Warmup visits the base URL to establish cookies and dismisses the consent
// and login dialogs. Both dialogs are optional.
func (s *Session) Warmup(ctx context.Context, baseURL string, pacing *PacingPolicy) error {
	s.logger.Info("[browser] Visiting homepage to initialize session...")
	if err := s.Navigate(ctx, baseURL, ""); err != nil {
		return err
	}
	s.DismissCookieBanner(ctx)
	pacing.Wait()
	s.DismissLoginPopup(ctx)
	pacing.Wait()
	s.logger.Info("[browser] Session is warmed up")
	return nil
}

// DismissCookieBanner accepts the consent dialog if it shows up. Absence is
// normal and only logged.
func (s *Session) DismissCookieBanner(ctx context.Context) {
	err := s.run(ctx, s.cfg.WaitTimeout(),
		chromedp.WaitVisible(s.loc.CookieAcceptButton, chromedp.ByQuery),
		chromedp.Click(s.loc.CookieAcceptButton, chromedp.ByQuery),
	)
	if err != nil {
		s.logger.Warn("[browser] Cookie banner not dismissed: %v", err)
		return
	}
	s.logger.Info("[browser] Cookie banner accepted")
}

// DismissLoginPopup closes the login interstitial if it shows up.
func (s *Session) DismissLoginPopup(ctx context.Context) {
	err := s.run(ctx, s.cfg.WaitTimeout(),
		chromedp.WaitVisible(s.loc.LoginPopup, chromedp.ByQuery),
		chromedp.Click(s.loc.LoginPopupClose, chromedp.ByQuery),
	)
	if err != nil {
		s.logger.Warn("[browser] Login popup not dismissed: %v", err)
		return
	}
	s.logger.Info("[browser] Login popup closed")
}

// ScrollToBottom repeatedly scrolls and re-measures the document height until
// it stabilizes, loading any lazy content.
func (s *Session) ScrollToBottom(ctx context.Context, pause time.Duration) error {
	var last, cur float64
	if err := s.run(ctx, s.cfg.WaitTimeout(),
		chromedp.Evaluate(`document.body.scrollHeight`, &last)); err != nil {
		return newScrapingError("scroll", "", err)
	}

	for {
		err := s.run(ctx, s.cfg.WaitTimeout(),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(pause),
			chromedp.Evaluate(`document.body.scrollHeight`, &cur),
		)
		if err != nil {
			return newScrapingError("scroll", "", err)
		}
		if cur == last {
			break
		}
		last = cur
	}

	s.logger.Debug("[browser] Scrolled to bottom of page")
	return nil
}

// ScrollTo jumps the viewport to a vertical offset.
func (s *Session) ScrollTo(ctx context.Context, y int) error {
	js := fmt.Sprintf(`window.scrollTo(0, %d)`, y)
	if err := s.run(ctx, s.cfg.WaitTimeout(), chromedp.Evaluate(js, nil)); err != nil {
		return newScrapingError("scroll", "", err)
	}
	return nil
}

// Location returns the tab's current URL.
func (s *Session) Location(ctx context.Context) (string, error) {
	var url string
	if err := s.run(ctx, s.cfg.WaitTimeout(), chromedp.Location(&url)); err != nil {
		return "", newScrapingError("location", "", err)
	}
	return url, nil
}

// Evaluate runs a JS expression in the page and unmarshals the result.
func (s *Session) Evaluate(ctx context.Context, js string, out interface{}) error {
	if err := s.run(ctx, s.cfg.NavTimeout(), chromedp.Evaluate(js, out)); err != nil {
		return newScrapingError("evaluate", "", err)
	}
	return nil
}

// OuterHTML captures the serialized markup of the first element matching sel.
func (s *Session) OuterHTML(ctx context.Context, sel string) (string, error) {
	var html string
	if err := s.run(ctx, s.cfg.WaitTimeout(),
		chromedp.OuterHTML(sel, &html, chromedp.ByQuery)); err != nil {
		return "", newScrapingError("outer html", "", err)
	}
	return html, nil
}

type elementPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HumanClick moves the pointer to the element's center and clicks through the
// input domain, mimicking a real mouse rather than a synthetic JS click.
func (s *Session) HumanClick(ctx context.Context, sel string) error {
	if err := s.run(ctx, s.cfg.WaitTimeout(),
		chromedp.ScrollIntoView(sel, chromedp.ByQuery)); err != nil {
		return newScrapingError("click", sel, err)
	}

	js := fmt.Sprintf(`(function() {
		var el = document.querySelector(%q);
		if (!el) return null;
		var r = el.getBoundingClientRect();
		return {x: r.left + r.width / 2, y: r.top + r.height / 2};
	})()`, sel)

	var pt *elementPoint
	if err := s.run(ctx, s.cfg.WaitTimeout(), chromedp.Evaluate(js, &pt)); err != nil {
		return newScrapingError("click", sel, err)
	}
	if pt == nil {
		return newScrapingError("click", sel, fmt.Errorf("element not found"))
	}

	err := s.run(ctx, s.cfg.WaitTimeout(),
		chromedp.MouseEvent(input.MouseMoved, pt.X, pt.Y),
		chromedp.Sleep(150*time.Millisecond),
		chromedp.MouseClickXY(pt.X, pt.Y),
	)
	if err != nil {
		return newScrapingError("click", sel, err)
	}
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary on the host.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
