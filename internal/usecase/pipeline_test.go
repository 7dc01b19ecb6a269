package usecase

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"StockRecommender/internal/domain"
	"StockRecommender/internal/recommend"
)

type fakeStockRepo struct {
	stocks []domain.Stock
}

func (f *fakeStockRepo) List(_ context.Context, filter domain.Filter) ([]domain.Stock, error) {
	var out []domain.Stock
	for _, stock := range f.stocks {
		if filter.Matches(stock) {
			out = append(out, stock)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) Get(_ context.Context, code string) (domain.Stock, error) {
	for _, stock := range f.stocks {
		if stock.Code == code {
			return stock, nil
		}
	}
	return domain.Stock{}, domain.ErrNotFound
}

type fakeArticleRepo struct {
	articles []domain.Article
	saved    []domain.Article
}

func (f *fakeArticleRepo) FetchArticles(_ context.Context, _ domain.Filter) ([]domain.Article, error) {
	return f.articles, nil
}

func (f *fakeArticleRepo) SaveArticles(_ context.Context, articles []domain.Article) error {
	f.saved = append(f.saved, articles...)
	return nil
}

type fakeAnalysisRepo struct {
	snapshots []domain.AnalysisSnapshot
}

func (f *fakeAnalysisRepo) SaveAnalysis(_ context.Context, snapshot domain.AnalysisSnapshot) error {
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func testStocks() []domain.Stock {
	return []domain.Stock{
		{Code: "BBCA", Name: "Bank Central Asia", Indexes: []string{"IHSG", "LQ45"}},
		{Code: "EMPT", Name: "Emiten Tanpa Berita", Indexes: []string{"IHSG"}},
		{Code: "GOTO", Name: "GoTo Gojek Tokopedia", Indexes: []string{"IHSG", "IDX30"}},
	}
}

func testArticles() []domain.Article {
	now := time.Now()
	return []domain.Article{
		{
			StockCode:   "BBCA",
			Title:       "Laba BBCA melonjak signifikan",
			RawText:     "Bank mencatatkan laba bersih yang melonjak, saham menguat ke level tertinggi",
			URL:         "https://example.org/bbca-1",
			PublishedAt: now,
		},
		{
			StockCode:   "BBCA",
			Title:       "Analis rekomendasikan beli saham BBCA",
			RawText:     "Prospek positif dan dividen menarik mendukung akumulasi",
			URL:         "https://example.org/bbca-2",
			PublishedAt: now,
		},
		{
			StockCode:   "GOTO",
			Title:       "GOTO anjlok setelah laporan keuangan",
			RawText:     "Kerugian membengkak dan investor khawatir terhadap tekanan margin",
			URL:         "https://example.org/goto-1",
			PublishedAt: now,
		},
	}
}

func newTestPipeline() *Pipeline {
	return NewPipeline(PipelineDeps{
		Stocks:   &fakeStockRepo{stocks: testStocks()},
		Articles: &fakeArticleRepo{articles: testArticles()},
	})
}

func TestRecommendScenarioWithReference(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	results, err := p.Recommend(context.Background(), Request{Reference: []string{"BBCA"}})
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].StockCode != "BBCA" {
		t.Fatalf("expected BBCA first, got %s", results[0].StockCode)
	}
	if results[0].Rank != 1 {
		t.Fatalf("expected rank 1, got %d", results[0].Rank)
	}
	if math.Abs(results[0].SimilarityComponent-1) > 1e-9 {
		t.Fatalf("reference stock similarity = %v, want 1", results[0].SimilarityComponent)
	}

	for _, rec := range results {
		if rec.StockCode != "EMPT" {
			continue
		}
		// No articles: neutral sentiment, zero similarity, so the final
		// score collapses to w_sentiment * 0.5.
		if got, want := rec.FinalScore, 0.4*0.5; math.Abs(got-want) > 1e-9 {
			t.Fatalf("zero-article final score = %v, want %v", got, want)
		}
		if rec.SimilarityComponent != 0 {
			t.Fatalf("zero-article similarity = %v, want 0", rec.SimilarityComponent)
		}
		if rec.ArticleCount != 0 {
			t.Fatalf("zero-article count = %d, want 0", rec.ArticleCount)
		}
	}
}

func TestRecommendRanksAboveNoNews(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	results, err := p.Recommend(context.Background(), Request{Reference: []string{"BBCA"}})
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}

	positions := map[string]int{}
	for _, rec := range results {
		positions[rec.StockCode] = rec.Rank
	}
	if positions["BBCA"] >= positions["EMPT"] {
		t.Fatalf("positive-coverage stock should outrank no-news stock: %v", positions)
	}
}

func TestRecommendUnknownReference(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	_, err := p.Recommend(context.Background(), Request{Reference: []string{"XXXX"}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecommendUnknownFilterCodes(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	_, err := p.Recommend(context.Background(), Request{Filter: domain.Filter{Codes: []string{"XXXX"}}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecommendEmptyCandidateSet(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	results, err := p.Recommend(context.Background(), Request{Filter: domain.Filter{Index: "LQ99"}})
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty ranking, got %v", results)
	}
}

func TestRecommendIndexFilterIsolatesCorpus(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	results, err := p.Recommend(context.Background(), Request{Filter: domain.Filter{Index: "IDX30"}})
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(results) != 1 || results[0].StockCode != "GOTO" {
		t.Fatalf("expected only GOTO in IDX30 run, got %v", results)
	}
}

func TestRecommendInvalidWeights(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	bad := recommend.Weights{Sentiment: -1, Similarity: 0.5}
	_, err := p.Recommend(context.Background(), Request{Weights: &bad})
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()
	req := Request{Reference: []string{"BBCA"}}

	first, err := p.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	second, err := p.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical requests produced different rankings")
	}
}

func TestRecommendTopN(t *testing.T) {
	t.Parallel()

	p := newTestPipeline()

	results, err := p.Recommend(context.Background(), Request{TopN: 1})
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func newSimilarityPipeline() *Pipeline {
	now := time.Now()
	stocks := []domain.Stock{
		{Code: "BBCA", Name: "Bank Central Asia", Indexes: []string{"IHSG"}},
		{Code: "BBRI", Name: "Bank Rakyat Indonesia", Indexes: []string{"IHSG"}},
		{Code: "BMRI", Name: "Bank Mandiri", Indexes: []string{"IHSG"}},
		{Code: "GOTO", Name: "GoTo Gojek Tokopedia", Indexes: []string{"IHSG"}},
	}
	articles := []domain.Article{
		{StockCode: "BBCA", Title: "Laba bank melonjak", RawText: "kredit korporasi tumbuh", URL: "https://example.org/s1", PublishedAt: now},
		{StockCode: "BBRI", Title: "Laba bank tumbuh", RawText: "kredit mikro melonjak", URL: "https://example.org/s2", PublishedAt: now},
		{StockCode: "BMRI", Title: "Laba bank stabil", RawText: "margin bunga terjaga", URL: "https://example.org/s3", PublishedAt: now},
		{StockCode: "GOTO", Title: "Transaksi digital meningkat", RawText: "pengguna aplikasi bertambah", URL: "https://example.org/s4", PublishedAt: now},
	}
	return NewPipeline(PipelineDeps{
		Stocks:   &fakeStockRepo{stocks: stocks},
		Articles: &fakeArticleRepo{articles: articles},
	})
}

func TestSimilarStocks(t *testing.T) {
	t.Parallel()

	p := newSimilarityPipeline()

	neighbors, err := p.SimilarStocks(context.Background(), "BBCA", 0)
	if err != nil {
		t.Fatalf("SimilarStocks error: %v", err)
	}
	if len(neighbors) == 0 {
		t.Fatalf("expected banking neighbors for BBCA")
	}

	for i, n := range neighbors {
		if n.StockCode == "BBCA" {
			t.Fatalf("subject stock must not be its own neighbor")
		}
		if n.StockCode == "GOTO" {
			t.Fatalf("stock sharing no vocabulary must be omitted")
		}
		if n.Similarity <= 0 || n.Similarity > 1 {
			t.Fatalf("similarity out of range: %+v", n)
		}
		if n.StockName == "" {
			t.Fatalf("neighbor missing stock name: %+v", n)
		}
		if i > 0 && neighbors[i-1].Similarity < n.Similarity {
			t.Fatalf("neighbors not sorted by descending similarity: %v", neighbors)
		}
	}
}

func TestSimilarStocksTopK(t *testing.T) {
	t.Parallel()

	p := newSimilarityPipeline()

	neighbors, err := p.SimilarStocks(context.Background(), "BBCA", 1)
	if err != nil {
		t.Fatalf("SimilarStocks error: %v", err)
	}
	if len(neighbors) != 1 {
		t.Fatalf("expected 1 neighbor with topK=1, got %d", len(neighbors))
	}
}

func TestSimilarStocksLowercaseCode(t *testing.T) {
	t.Parallel()

	p := newSimilarityPipeline()

	neighbors, err := p.SimilarStocks(context.Background(), "bbca", 3)
	if err != nil {
		t.Fatalf("SimilarStocks error: %v", err)
	}
	if len(neighbors) == 0 {
		t.Fatalf("lowercase code lookup should resolve")
	}
}

func TestSimilarStocksUnknownCode(t *testing.T) {
	t.Parallel()

	p := newSimilarityPipeline()

	_, err := p.SimilarStocks(context.Background(), "XXXX", 3)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunDailyPersistsSnapshot(t *testing.T) {
	t.Parallel()

	analyses := &fakeAnalysisRepo{}
	p := NewPipeline(PipelineDeps{
		Stocks:   &fakeStockRepo{stocks: testStocks()},
		Articles: &fakeArticleRepo{articles: testArticles()},
		Analyses: analyses,
	})

	if err := p.RunDaily(context.Background(), time.Now()); err != nil {
		t.Fatalf("RunDaily error: %v", err)
	}
	if len(analyses.snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(analyses.snapshots))
	}
	snapshot := analyses.snapshots[0]
	if snapshot.RunID == "" {
		t.Fatalf("expected a run id on the snapshot")
	}
	if len(snapshot.Results) != 3 {
		t.Fatalf("expected 3 result rows, got %d", len(snapshot.Results))
	}
}
