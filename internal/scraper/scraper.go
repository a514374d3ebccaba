package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pauljones0/thehub-deal-poster/internal/config"
	"github.com/pauljones0/thehub-deal-poster/internal/models"
	"github.com/pauljones0/thehub-deal-poster/internal/util"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// PageInfo is what could be read from a product page.
type PageInfo struct {
	Title    string
	Price    string
	Currency string
	SiteName string
}

// Enricher fills blank deal fields from the deal's product page.
type Enricher struct {
	httpClient     *http.Client
	allowedDomains []string
	selectors      SelectorConfig
}

func New(cfg *config.Config) *Enricher {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	e := &Enricher{
		allowedDomains: cfg.EnrichAllowedDomains,
		selectors:      LoadConfig(),
	}
	e.httpClient = &http.Client{Timeout: timeout, CheckRedirect: e.checkRedirect}
	return e
}

// Enrich fetches deal.URL and fills Title, Price and Source only where the
// deal leaves them empty. A deal without a URL is returned unchanged.
func (e *Enricher) Enrich(ctx context.Context, deal models.Deal) (models.Deal, error) {
	if strings.TrimSpace(deal.URL) == "" {
		return deal, nil
	}

	target, unwrapped := util.UnwrapRedirect(strings.TrimSpace(deal.URL))
	if unwrapped {
		slog.Debug("Unwrapped redirect link", "from", deal.URL, "to", target)
	}
	normalized, err := util.NormalizeURL(target)
	if err != nil {
		return deal, fmt.Errorf("invalid deal URL %s: %w", deal.URL, err)
	}

	info, err := e.Scrape(ctx, normalized)
	if err != nil {
		return deal, err
	}

	var filled []string
	if deal.Title == "" && info.Title != "" {
		deal.Title = info.Title
		filled = append(filled, "title")
	}
	if deal.Price == "" && info.Price != "" {
		deal.Price = util.FormatPrice(info.Price, info.Currency)
		filled = append(filled, "price")
	}
	if deal.Source == "" {
		source := info.SiteName
		if source == "" {
			source = util.GetDomain(normalized)
		}
		if source != "" {
			deal.Source = source
			filled = append(filled, "source")
		}
	}

	slog.Info("Enriched deal from product page", "url", normalized, "filled", filled)
	return deal, nil
}

// Scrape reads product details from JSON-LD first and meta tags second.
func (e *Enricher) Scrape(ctx context.Context, pageURL string) (PageInfo, error) {
	doc, err := e.fetchHTMLContent(ctx, pageURL)
	if err != nil {
		return PageInfo{}, err
	}

	var info PageInfo
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, product := range findProducts([]byte(s.Text())) {
			if info.Title == "" {
				info.Title = strings.TrimSpace(product.Name)
			}
			for _, offer := range product.Offers {
				if info.Price == "" && offer.Amount() != "" {
					info.Price = offer.Amount()
					info.Currency = offer.PriceCurrency
				}
			}
		}
		return info.Title == "" || info.Price == ""
	})

	if info.Title == "" {
		info.Title = firstValue(doc, e.selectors.Title)
	}
	if info.Price == "" {
		info.Price = firstValue(doc, e.selectors.PriceAmount)
		info.Currency = firstValue(doc, e.selectors.PriceCurrency)
	}
	info.SiteName = firstValue(doc, e.selectors.SiteName)

	return info, nil
}

// firstValue returns the first non-empty content attribute, value attribute or
// text among the selector matches.
func firstValue(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			for _, attr := range []string{"content", "value"} {
				if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
					found = strings.TrimSpace(v)
					return false
				}
			}
			if v := strings.TrimSpace(s.Text()); v != "" {
				found = v
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func (e *Enricher) hostAllowed(hostname string) bool {
	if len(e.allowedDomains) == 0 {
		return true
	}
	hostname = strings.ToLower(hostname)
	for _, domain := range e.allowedDomains {
		if hostname == domain || strings.HasSuffix(hostname, "."+domain) {
			return true
		}
	}
	return false
}

func (e *Enricher) checkTarget(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme %s: only http and https allowed", u.Scheme)
	}
	if !e.hostAllowed(u.Hostname()) {
		return fmt.Errorf("security violation: URL hostname %s is not in allowlist", u.Hostname())
	}
	return nil
}

// checkRedirect applies the scheme and allowlist rules to every hop.
func (e *Enricher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return fmt.Errorf("stopped after %d redirects", len(via))
	}
	return e.checkTarget(req.URL)
}

func (e *Enricher) fetchHTMLContent(ctx context.Context, urlStr string) (*goquery.Document, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL %s: %w", urlStr, err)
	}

	if err := e.checkTarget(parsedURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %s: %w", urlStr, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", urlStr, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL %s: status code %d", urlStr, res.StatusCode)
	}

	return goquery.NewDocumentFromReader(res.Body)
}
