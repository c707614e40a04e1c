package datasource

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/models"
)

// listingSelector matches the anchor of each listed match on the bookmaker page
const listingSelector = "td.title > a"

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"

// extractScript collects raw rows; prices are returned as printed and parsed in Go
const extractScript = `(() => {
	const rows = [];
	document.querySelectorAll('td.title > a').forEach(link => {
		const date = link.querySelector('span.date');
		const name = link.querySelector('span.name');
		const row = {
			time: date ? date.textContent.trim() : '',
			name: name ? name.textContent.trim() : '',
			prices: []
		};
		const titleCell = link.closest('td.title');
		const oddsCell = titleCell ? titleCell.nextElementSibling : null;
		if (oddsCell && oddsCell.classList.contains('odds')) {
			oddsCell.querySelectorAll('button.btn-odds').forEach(btn => {
				const label = btn.querySelector('div');
				const value = btn.querySelector('span');
				if (label && value) {
					row.prices.push({label: label.textContent.trim(), value: value.textContent.trim()});
				}
			});
		}
		rows.push(row);
	});
	return rows;
})()`

// BrowserConfig holds configuration for the headless browser scraper
type BrowserConfig struct {
	URL         string
	Timeout     time.Duration
	WaitTimeout time.Duration
	UserAgent   string
	Headless    bool
	MinPrice    float64
}

// scrapedRow is one listing as extracted from the page
type scrapedRow struct {
	Time   string         `json:"time"`
	Name   string         `json:"name"`
	Prices []scrapedPrice `json:"prices"`
}

type scrapedPrice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BrowserMarketSource scrapes listings from the bookmaker page with headless Chrome
type BrowserMarketSource struct {
	cfg    BrowserConfig
	now    func() time.Time
	logger *logrus.Entry
}

// NewBrowserMarketSource creates a new headless browser market source
func NewBrowserMarketSource(cfg BrowserConfig, logger *logrus.Logger) *BrowserMarketSource {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 5 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MinPrice <= 0 {
		cfg.MinPrice = MinListedPrice
	}
	return &BrowserMarketSource{
		cfg:    cfg,
		now:    time.Now,
		logger: logger.WithField("source", "browser"),
	}
}

// Name returns the name of the market source
func (s *BrowserMarketSource) Name() string {
	return "browser"
}

// FetchListings navigates to the page and extracts the listed matches.
// A page without listings yields an empty result rather than an error.
func (s *BrowserMarketSource) FetchListings(ctx context.Context) ([]models.Listing, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent(s.cfg.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		s.logger.Debugf(format, v...)
	}))
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, s.cfg.Timeout)
	defer cancelRun()

	s.logger.WithField("url", s.cfg.URL).Debug("Navigating to market page")
	if err := chromedp.Run(runCtx, chromedp.Navigate(s.cfg.URL)); err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeBrowserError, "failed to load market page", err)
	}

	waitCtx, cancelWait := context.WithTimeout(runCtx, s.cfg.WaitTimeout)
	err := chromedp.Run(waitCtx, chromedp.WaitVisible(listingSelector, chromedp.ByQuery))
	cancelWait()
	if err != nil {
		if runCtx.Err() != nil {
			return nil, NewDataSourceError(s.Name(), ErrCodeBrowserError, "market page timed out", runCtx.Err())
		}
		s.logger.Info("No listings visible on market page")
		return []models.Listing{}, nil
	}

	var rows []scrapedRow
	if err := chromedp.Run(runCtx, chromedp.Evaluate(extractScript, &rows)); err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeBrowserError, "failed to extract listings", err)
	}

	listings := rowsToListings(rows, s.now().UTC(), s.cfg.MinPrice, s.logger)
	s.logger.WithFields(logrus.Fields{
		"rows": len(rows),
		"kept": len(listings),
	}).Debug("Market page scraped")
	return listings, nil
}

// rowsToListings converts extracted rows, skipping rows without a time or a
// "A - B" name and dropping prices that do not parse.
func rowsToListings(rows []scrapedRow, scrapedAt time.Time, minPrice float64, logger *logrus.Entry) []models.Listing {
	listings := make([]models.Listing, 0, len(rows))
	for _, row := range rows {
		if row.Time == "" || row.Name == "" {
			continue
		}
		parts := strings.SplitN(row.Name, " - ", 2)
		if len(parts) != 2 {
			continue
		}

		odds := make(models.Odds, len(row.Prices))
		for _, p := range row.Prices {
			price, err := ParsePrice(p.Value)
			if err != nil {
				logger.WithError(err).WithField("label", p.Label).Debug("Skipping unparseable price")
				continue
			}
			odds[p.Label] = price
		}

		listings = append(listings, models.Listing{
			Time:      row.Time,
			PlayerA:   strings.TrimSpace(parts[0]),
			PlayerB:   strings.TrimSpace(parts[1]),
			Odds:      odds,
			ScrapedAt: scrapedAt,
		})
	}
	return filterListed(listings, minPrice, logger)
}
