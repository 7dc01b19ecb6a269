package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"StockRecommender/internal/config"
	"StockRecommender/internal/domain"
	"StockRecommender/internal/nlp"
	"StockRecommender/internal/ports"
	"StockRecommender/internal/scanner"
)

// StrategySource implements NewsSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	logger   *slog.Logger
}

var _ ports.NewsSource = (*StrategySource)(nil)

// NewStrategySource wires the scanner registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sites:    sites,
		logger:   log,
	}
}

// FetchDaily iterates over configured news sites and executes their
// scanners against the given stock universe.
func (s *StrategySource) FetchDaily(ctx context.Context, day time.Time, stocks []domain.Stock) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	refs := make([]scanner.StockRef, 0, len(stocks))
	for _, stock := range stocks {
		refs = append(refs, scanner.StockRef{Code: stock.Code, Name: stock.Name})
	}

	s.debug("fetch daily", "sites", len(s.sites), "stocks", len(refs), "day", day.Format("2006-01-02"))

	var aggregated []domain.Article
	for _, site := range s.sites {
		s.debug("process site", "site", site.Name, "scanner", site.Scanner)
		strategy, err := s.registry.Resolve(site.Scanner)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", site.Name, err)
		}

		req := scanner.Request{
			Day:       day,
			SiteName:  site.Name,
			SearchURL: site.SearchURL,
			Stocks:    refs,
			Options:   site.Options,
		}

		results, err := strategy.Scan(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scan site %s: %w", site.Name, err)
		}

		for i := range results {
			if results[i].Source == "" {
				results[i].Source = site.Name
			}
		}
		s.debug("site produced articles", "site", site.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	aggregated = associateMentions(aggregated, refs)

	s.debug("strategy source done", "total_articles", len(aggregated))
	return aggregated, nil
}

// associateMentions duplicates an article onto every other universe stock
// whose ticker appears in the title, so one search hit feeds all the
// profiles it talks about. Unknown ticker shapes are ignored.
func associateMentions(articles []domain.Article, refs []scanner.StockRef) []domain.Article {
	known := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		known[strings.ToUpper(ref.Code)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(articles))
	for _, article := range articles {
		seen[article.StockCode+"|"+article.URL] = struct{}{}
	}

	out := articles
	for _, article := range articles {
		for _, ticker := range nlp.ExtractTickers(article.Title) {
			if _, ok := known[ticker]; !ok {
				continue
			}
			key := ticker + "|" + article.URL
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			mention := article
			mention.StockCode = ticker
			out = append(out, mention)
		}
	}
	return out
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
