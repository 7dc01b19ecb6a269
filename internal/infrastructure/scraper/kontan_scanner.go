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

const (
	defaultMaxResults = 10
	defaultDelay      = 2 * time.Second
	userAgent         = "StockRecommender/1.0"
)

var kontanDateExpr = regexp.MustCompile(`\d{1,2} \w+ \d{4}`)

// indonesianMonths maps month names as they appear on Kontan pages.
var indonesianMonths = map[string]time.Month{
	"januari": time.January, "februari": time.February, "maret": time.March,
	"april": time.April, "mei": time.May, "juni": time.June,
	"juli": time.July, "agustus": time.August, "september": time.September,
	"oktober": time.October, "november": time.November, "desember": time.December,
}

// KontanScanner searches kontan.co.id per stock code and extracts article
// links, titles and dates from the result page.
type KontanScanner struct {
	client *http.Client
	delay  time.Duration
}

// NewKontanScanner wires an HTTP client; a nil client gets sane timeouts.
func NewKontanScanner(client *http.Client) *KontanScanner {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &KontanScanner{client: client, delay: defaultDelay}
}

// Name identifies the strategy inside the registry.
func (k *KontanScanner) Name() string {
	return "kontan"
}

// Scan queries the search page once per stock, with a polite delay between
// requests. A failing stock is skipped; the scan carries on.
func (k *KontanScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
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
			case <-time.After(k.delay):
			}
		}

		articles, err := k.searchStock(ctx, req.SearchURL, stock, maxResults)
		if err != nil {
			continue
		}
		results = append(results, articles...)
	}
	return results, nil
}

func (k *KontanScanner) searchStock(ctx context.Context, searchURL string, stock scanner.StockRef, maxResults int) ([]domain.Article, error) {
	doc, err := fetchDocument(ctx, k.client, searchURL+stock.Code)
	if err != nil {
		return nil, err
	}

	var articles []domain.Article
	seen := map[string]struct{}{}

	doc.Find("a[href]").EachWithBreak(func(i int, link *goquery.Selection) bool {
		if len(articles) >= maxResults {
			return false
		}

		href, _ := link.Attr("href")
		if !strings.Contains(href, "/news/") && !strings.Contains(href, "/investasi/") {
			return true
		}
		if _, dup := seen[href]; dup {
			return true
		}
		seen[href] = struct{}{}

		title := strings.TrimSpace(link.Text())
		if len(title) < 20 {
			return true
		}

		articles = append(articles, domain.Article{
			StockCode:   stock.Code,
			Title:       title,
			URL:         absoluteURL(href),
			Source:      "kontan",
			PublishedAt: extractDate(link),
		})
		return true
	})

	return articles, nil
}

func fetchDocument(ctx context.Context, client *http.Client, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func extractDate(link *goquery.Selection) time.Time {
	parent := link.Parent()
	if parent == nil {
		return time.Time{}
	}

	dateText := strings.TrimSpace(parent.Find("span.date").First().Text())
	if dateText == "" {
		dateText = strings.TrimSpace(parent.Find("time").First().Text())
	}
	return parseIndonesianDate(kontanDateExpr.FindString(dateText))
}

// parseIndonesianDate handles dates like "30 Desember 2024".
func parseIndonesianDate(text string) time.Time {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		return time.Time{}
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}
	}
	month, ok := indonesianMonths[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func absoluteURL(href string) string {
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if !strings.HasPrefix(href, "http") {
		return "https://www.kontan.co.id" + href
	}
	return href
}
