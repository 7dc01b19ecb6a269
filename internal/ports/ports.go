package ports

import (
	"context"
	"time"

	"StockRecommender/internal/domain"
)

// StockRepository reads the stock universe from storage.
type StockRepository interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Stock, error)
	Get(ctx context.Context, code string) (domain.Stock, error)
}

// ArticleRepository is the read/write interface over scraped news. The
// recommendation engine only queries it; writes come from the scrape job.
type ArticleRepository interface {
	FetchArticles(ctx context.Context, filter domain.Filter) ([]domain.Article, error)
	SaveArticles(ctx context.Context, articles []domain.Article) error
}

// AnalysisRepository persists ranked runs for history and audit.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, snapshot domain.AnalysisSnapshot) error
}

// NewsSource pulls fresh articles for the given stocks from upstream news sites.
type NewsSource interface {
	FetchDaily(ctx context.Context, day time.Time, stocks []domain.Stock) ([]domain.Article, error)
}

// Notifier delivers a ranked digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, results []domain.Recommendation) error
}

// Scheduler controls when the scrape-and-rank job executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
