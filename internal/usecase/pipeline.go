package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"StockRecommender/internal/domain"
	"StockRecommender/internal/feature"
	"StockRecommender/internal/nlp"
	"StockRecommender/internal/ports"
	"StockRecommender/internal/recommend"
)

const (
	topKeywords         = 10
	defaultSimilarCount = 5
)

// PipelineDeps wires all driven adapters into the recommendation pipeline.
type PipelineDeps struct {
	Stocks     ports.StockRepository
	Articles   ports.ArticleRepository
	Analyses   ports.AnalysisRepository
	Source     ports.NewsSource
	Notifier   ports.Notifier
	Normalizer *nlp.Normalizer
	Sentiment  *nlp.SentimentScorer
	Weights    recommend.Weights
	TopN       int
	NewsWindow time.Duration
	Logger     *slog.Logger
}

// Pipeline implements the recommendation workflow: fetch, normalize, score
// sentiment, build the TF-IDF snapshot, compute similarity, rank. Every
// run recomputes from scratch and owns its own vocabulary snapshot; the
// pipeline holds no mutable state across requests.
type Pipeline struct {
	stocks     ports.StockRepository
	articles   ports.ArticleRepository
	analyses   ports.AnalysisRepository
	source     ports.NewsSource
	notifier   ports.Notifier
	normalizer *nlp.Normalizer
	sentiment  *nlp.SentimentScorer
	weights    recommend.Weights
	topN       int
	newsWindow time.Duration
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.Normalizer == nil {
		deps.Normalizer = nlp.NewNormalizer(nil)
	}
	if deps.Sentiment == nil {
		deps.Sentiment = nlp.NewSentimentScorer(nlp.DefaultLexicon(), nlp.DefaultThresholds())
	}
	if deps.Weights == (recommend.Weights{}) {
		deps.Weights = recommend.DefaultWeights()
	}
	if deps.NewsWindow <= 0 {
		deps.NewsWindow = 30 * 24 * time.Hour
	}
	return &Pipeline{
		stocks:     deps.Stocks,
		articles:   deps.Articles,
		analyses:   deps.Analyses,
		source:     deps.Source,
		notifier:   deps.Notifier,
		normalizer: deps.Normalizer,
		sentiment:  deps.Sentiment,
		weights:    deps.Weights,
		topN:       deps.TopN,
		newsWindow: deps.NewsWindow,
		logger:     deps.Logger,
	}
}

// Request parameterizes one recommendation run.
type Request struct {
	Filter domain.Filter
	// Reference selects the stocks whose averaged profile the candidates
	// are compared against. Empty means the whole candidate set (an
	// index-level aggregate profile).
	Reference []string
	Weights   *recommend.Weights
	TopN      int
}

// corpus is the request-local analysis state: the filtered stock set with
// its articles, TF-IDF documents, and sentiment aggregates.
type corpus struct {
	stocks     []domain.Stock
	candidates map[string]domain.Stock
	byStock    map[string][]domain.Article
	docs       map[string][]feature.Document
	summaries  map[string]domain.SentimentSummary
}

// Recommend executes one full synchronous pipeline pass and returns the
// ranked list. Zero candidate stocks yield an empty slice, not an error.
func (p *Pipeline) Recommend(ctx context.Context, req Request) ([]domain.Recommendation, error) {
	c, err := p.buildCorpus(ctx, req.Filter)
	if err != nil {
		return nil, err
	}
	if len(c.stocks) == 0 {
		return []domain.Recommendation{}, nil
	}

	snapshot := feature.BuildSnapshot(c.docs)

	referenceCodes := req.Reference
	if len(referenceCodes) == 0 {
		referenceCodes = make([]string, 0, len(c.stocks))
		for _, stock := range c.stocks {
			referenceCodes = append(referenceCodes, stock.Code)
		}
	} else {
		for _, code := range referenceCodes {
			if _, ok := c.candidates[code]; !ok {
				return nil, fmt.Errorf("%w: reference stock %s is not in the candidate set",
					domain.ErrNotFound, code)
			}
		}
	}
	reference := feature.Reference(snapshot.Vectors(), referenceCodes)
	similarities := feature.AgainstReference(snapshot.Vectors(), reference)

	inputs := make([]recommend.Input, 0, len(c.stocks))
	for _, stock := range c.stocks {
		vec := snapshot.Vector(stock.Code)
		keywords := make([]domain.Keyword, 0, topKeywords)
		for _, term := range vec.TopTerms(topKeywords) {
			keywords = append(keywords, domain.Keyword{Term: term.Term, Weight: term.Weight})
		}
		inputs = append(inputs, recommend.Input{
			Stock:        stock,
			Sentiment:    c.summaries[stock.Code],
			Similarity:   similarities[stock.Code],
			Keywords:     keywords,
			ArticleCount: len(c.byStock[stock.Code]),
		})
	}

	weights := p.weights
	if req.Weights != nil {
		weights = *req.Weights
	}
	results, err := recommend.Rank(inputs, weights)
	if err != nil {
		return nil, err
	}

	topN := req.TopN
	if topN == 0 {
		topN = p.topN
	}
	if topN > 0 && topN < len(results) {
		results = results[:topN]
	}
	return results, nil
}

// SimilarStocks finds the stocks whose news profiles are closest to the
// given one, ordered by descending similarity. Stocks sharing no vocabulary
// with the subject are omitted, so a no-news subject yields an empty list.
func (p *Pipeline) SimilarStocks(ctx context.Context, code string, topK int) ([]domain.SimilarStock, error) {
	stock, err := p.stocks.Get(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("resolve stock %s: %w", code, err)
	}
	if topK <= 0 {
		topK = defaultSimilarCount
	}

	c, err := p.buildCorpus(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}

	snapshot := feature.BuildSnapshot(c.docs)
	matrix := feature.Matrix(snapshot.Vectors())
	row := matrix[stock.Code]

	neighbors := make([]domain.SimilarStock, 0, len(c.stocks))
	for _, candidate := range c.stocks {
		if candidate.Code == stock.Code {
			continue
		}
		sim := row[candidate.Code]
		if sim == 0 {
			continue
		}
		neighbors = append(neighbors, domain.SimilarStock{
			StockCode:  candidate.Code,
			StockName:  candidate.Name,
			Similarity: sim,
		})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].StockCode < neighbors[j].StockCode
	})
	if topK < len(neighbors) {
		neighbors = neighbors[:topK]
	}
	return neighbors, nil
}

// RefreshNews scrapes fresh articles for the whole stock universe and
// persists them.
func (p *Pipeline) RefreshNews(ctx context.Context, day time.Time) error {
	if p.source == nil || p.articles == nil {
		return nil
	}

	stocks, err := p.stocks.List(ctx, domain.Filter{})
	if err != nil {
		return fmt.Errorf("list stocks: %w", err)
	}

	articles, err := p.source.FetchDaily(ctx, day, stocks)
	if err != nil {
		return fmt.Errorf("fetch daily news: %w", err)
	}
	if len(articles) == 0 {
		return nil
	}

	if err := p.articles.SaveArticles(ctx, articles); err != nil {
		return fmt.Errorf("persist articles: %w", err)
	}
	p.info("news refreshed", "articles", len(articles), "stocks", len(stocks))
	return nil
}

// RunDaily is the scheduled job: refresh news, rank the full universe,
// persist the snapshot, and publish the digest.
func (p *Pipeline) RunDaily(ctx context.Context, trigger time.Time) error {
	if err := p.RefreshNews(ctx, trigger); err != nil {
		return err
	}

	results, err := p.Recommend(ctx, Request{})
	if err != nil {
		return fmt.Errorf("rank stocks: %w", err)
	}

	if p.analyses != nil {
		snapshot := domain.AnalysisSnapshot{
			RunID:       uuid.NewString(),
			GeneratedAt: trigger,
			Results:     results,
		}
		if err := p.analyses.SaveAnalysis(ctx, snapshot); err != nil {
			return fmt.Errorf("persist analysis: %w", err)
		}
	}

	if p.notifier == nil || len(results) == 0 {
		return nil
	}
	return p.notifier.PublishDigest(ctx, results)
}

// buildCorpus fetches the filtered stock set with its article window and
// runs per-stock analysis. A Codes filter matching nothing is a failed
// lookup; an empty result from a broader filter is not.
func (p *Pipeline) buildCorpus(ctx context.Context, filter domain.Filter) (corpus, error) {
	stocks, err := p.stocks.List(ctx, filter)
	if err != nil {
		return corpus{}, fmt.Errorf("list stocks: %w", err)
	}
	if len(filter.Codes) > 0 && len(stocks) == 0 {
		return corpus{}, fmt.Errorf("%w: no stock matches codes %v", domain.ErrNotFound, filter.Codes)
	}

	c := corpus{
		stocks:     stocks,
		candidates: make(map[string]domain.Stock, len(stocks)),
		byStock:    map[string][]domain.Article{},
		docs:       make(map[string][]feature.Document, len(stocks)),
		summaries:  make(map[string]domain.SentimentSummary, len(stocks)),
	}
	if len(stocks) == 0 {
		return c, nil
	}
	for _, stock := range stocks {
		c.candidates[stock.Code] = stock
	}

	if filter.From.IsZero() {
		filter.From = time.Now().Add(-p.newsWindow)
	}
	articles, err := p.articles.FetchArticles(ctx, filter)
	if err != nil {
		return corpus{}, fmt.Errorf("fetch articles: %w", err)
	}
	for _, article := range articles {
		if _, ok := c.candidates[article.StockCode]; ok {
			c.byStock[article.StockCode] = append(c.byStock[article.StockCode], article)
		}
	}

	for _, stock := range stocks {
		stockDocs, summary, err := p.analyzeStock(c.byStock[stock.Code])
		if err != nil {
			p.warn("stock analysis degraded to neutral defaults",
				"stock", stock.Code, "error", err)
			stockDocs, summary = nil, domain.SentimentSummary{}
		}
		c.docs[stock.Code] = stockDocs
		c.summaries[stock.Code] = summary
	}
	return c, nil
}

// analyzeStock turns one stock's articles into weighted TF-IDF documents
// and its sentiment summary. A failure here is isolated by the caller:
// the stock degrades to an all-zero vector and a neutral summary.
func (p *Pipeline) analyzeStock(articles []domain.Article) (docs []feature.Document, summary domain.SentimentSummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			docs, summary = nil, domain.SentimentSummary{}
			err = fmt.Errorf("analyze articles: %v", r)
		}
	}()

	polarities := make([]float64, 0, len(articles))
	for _, article := range articles {
		text := article.Title + " " + article.RawText
		polarities = append(polarities, p.sentiment.Score(p.normalizer.SentimentTokens(text)))
		docs = append(docs, feature.Document{
			Tokens: p.normalizer.Normalize(text),
			Weight: recencyWeight(article.PublishedAt),
		})
	}
	return docs, p.sentiment.Summarize(polarities), nil
}

// recencyWeight decays exponentially with article age (half-life around
// three weeks) and never drops below 0.1, so old coverage still counts.
func recencyWeight(publishedAt time.Time) float64 {
	if publishedAt.IsZero() {
		return 1
	}
	ageDays := time.Since(publishedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Max(math.Exp(-ageDays/30), 0.1)
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
