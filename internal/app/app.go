package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"StockRecommender/internal/config"
	"StockRecommender/internal/domain"
	"StockRecommender/internal/infrastructure/scheduler"
	"StockRecommender/internal/infrastructure/scraper"
	"StockRecommender/internal/infrastructure/storage"
	"StockRecommender/internal/infrastructure/telegram"
	"StockRecommender/internal/logging"
	"StockRecommender/internal/nlp"
	"StockRecommender/internal/ports"
	"StockRecommender/internal/recommend"
	"StockRecommender/internal/scanner"
	"StockRecommender/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	repository *storage.SQLiteRepository
	pipeline   *usecase.Pipeline
	scheduler  *usecase.Scheduler
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	repository, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	registry := scanner.NewRegistry()
	registry.Register(scraper.NewKontanScanner(nil))
	registry.Register(scraper.NewDetikScanner(nil))

	source := scraper.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(
			cfg.Notifications.Telegram.BotToken,
			cfg.Notifications.Telegram.ChatID,
		)
	}

	thresholds := nlp.Thresholds{
		Positive: cfg.Recommendation.PositiveThreshold,
		Negative: cfg.Recommendation.NegativeThreshold,
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Stocks:    repository,
		Articles:  repository,
		Analyses:  repository,
		Source:    source,
		Notifier:  notifier,
		Sentiment: nlp.NewSentimentScorer(nlp.DefaultLexicon(), thresholds),
		Weights: recommend.Weights{
			Sentiment:  cfg.Recommendation.SentimentWeight,
			Similarity: cfg.Recommendation.SimilarityWeight,
		},
		TopN:       cfg.Recommendation.TopN,
		NewsWindow: time.Duration(cfg.Recommendation.NewsWindowDays) * 24 * time.Hour,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	driver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location())

	return &Application{
		cfg:        cfg,
		repository: repository,
		pipeline:   pipeline,
		scheduler:  usecase.NewScheduler(driver, pipeline),
	}, nil
}

// Run initializes storage, performs one pipeline pass, and keeps the
// scheduler running until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.repository.InitSchema(ctx); err != nil {
		return err
	}

	if err := a.seedStocks(ctx); err != nil {
		return err
	}

	if err := a.pipeline.RunDaily(ctx, time.Now().In(a.cfg.Scheduler.Location())); err != nil {
		return err
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.scheduler.Stop(stopCtx); err != nil {
		return err
	}
	return a.repository.Close()
}

// seedStocks upserts the configured stock universe so scrape and ranking
// runs always see the current list.
func (a *Application) seedStocks(ctx context.Context) error {
	if len(a.cfg.Stocks) == 0 {
		return nil
	}

	stocks := make([]domain.Stock, 0, len(a.cfg.Stocks))
	for _, s := range a.cfg.Stocks {
		stocks = append(stocks, domain.Stock{
			Code:      s.Code,
			Name:      s.Name,
			Sector:    s.Sector,
			SubSector: s.SubSector,
			Indexes:   s.Indexes,
		})
	}
	if err := a.repository.SaveStocks(ctx, stocks); err != nil {
		return fmt.Errorf("seed stocks: %w", err)
	}
	return nil
}
