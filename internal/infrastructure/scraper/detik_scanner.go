package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"StockRecommender/internal/domain"
	"StockRecommender/internal/scanner"
)

// detikDateExpr matches "30 Des 2024" as well as the full month form.
var detikDateExpr = regexp.MustCompile(`(\d{1,2}) ([A-Za-z]+) (\d{4})`)

// DetikScanner searches detik.com per stock code. Result pages list
// articles as <article> cards with a title heading, a snippet paragraph
// and a date span.
type DetikScanner struct {
	client *http.Client
	delay  time.Duration
}

// NewDetikScanner wires an HTTP client; a nil client gets sane timeouts.
func NewDetikScanner(client *http.Client) *DetikScanner {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &DetikScanner{client: client, delay: defaultDelay}
}

// Name identifies the strategy inside the registry.
func (d *DetikScanner) Name() string {
	return "detik"
}

// Scan queries the search page once per stock, with a polite delay between
// requests. A failing stock is skipped; the scan carries on.
func (d *DetikScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	if req.SearchURL == "" {
		return nil, fmt.Errorf("no search url configured for site %s", req.SiteName)
	}

	maxResults := defaultMaxResults
	if raw, ok := req.Options["maxResults"]; ok {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxResults = parsed
		}
	}

	var results []domain.Article
	for i, stock := range req.Stocks {
		if i > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(d.delay):
			}
		}

		articles, err := d.searchStock(ctx, req.SearchURL, stock, maxResults)
		if err != nil {
			continue
		}
		results = append(results, articles...)
	}
	return results, nil
}

func (d *DetikScanner) searchStock(ctx context.Context, searchURL string, stock scanner.StockRef, maxResults int) ([]domain.Article, error) {
	doc, err := fetchDocument(ctx, d.client, searchURL+stock.Code)
	if err != nil {
		return nil, err
	}

	var articles []domain.Article
	seen := map[string]struct{}{}

	doc.Find("article").EachWithBreak(func(i int, item *goquery.Selection) bool {
		if len(articles) >= maxResults {
			return false
		}

		link := item.Find("a[href]").First()
		href, ok := link.Attr("href")
		if !ok || !strings.Contains(href, "detik.com") {
			return true
		}
		if _, dup := seen[href]; dup {
			return true
		}
		seen[href] = struct{}{}

		title := strings.TrimSpace(item.Find("h2, h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if len(title) < 20 {
			return true
		}

		articles = append(articles, domain.Article{
			StockCode:   stock.Code,
			Title:       title,
			RawText:     strings.TrimSpace(item.Find("p").First().Text()),
			URL:         href,
			Source:      "detik",
			PublishedAt: parseDetikDate(item.Find("span.date").First().Text()),
		})
		return true
	})

	return articles, nil
}

// parseDetikDate handles dates like "Senin, 30 Des 2024 10:15 WIB"; the
// month may be abbreviated or written out.
func parseDetikDate(text string) time.Time {
	parts := detikDateExpr.FindStringSubmatch(text)
	if len(parts) != 4 {
		return time.Time{}
	}

	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}
	}
	month, ok := monthByPrefix(parts[2])
	if !ok {
		return time.Time{}
	}
	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return time.Time{}
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// monthByPrefix resolves an Indonesian month name or its abbreviation
// ("Des", "Agu") against the full-name table.
func monthByPrefix(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if len(name) < 3 {
		return 0, false
	}
	for full, month := range indonesianMonths {
		if strings.HasPrefix(full, name) {
			return month, true
		}
	}
	return 0, false
}
