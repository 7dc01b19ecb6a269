package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"StockRecommender/internal/domain"
	"StockRecommender/internal/ports"
)

// SQLiteRepository persists stocks, news and analysis snapshots.
type SQLiteRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.StockRepository = (*SQLiteRepository)(nil)
var _ ports.ArticleRepository = (*SQLiteRepository)(nil)
var _ ports.AnalysisRepository = (*SQLiteRepository)(nil)

// Open connects to the SQLite database at the given path.
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewSQLiteRepository(db), nil
}

// NewSQLiteRepository wires an existing sql.DB.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// InitSchema creates the tables when they do not exist yet.
func (r *SQLiteRepository) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS stocks (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			sector TEXT,
			sub_sector TEXT,
			index_member TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			url TEXT NOT NULL,
			stock_code TEXT NOT NULL REFERENCES stocks(code),
			title TEXT NOT NULL,
			content TEXT,
			source TEXT,
			published_at TIMESTAMP,
			scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (url, stock_code)
		)`,
		`CREATE TABLE IF NOT EXISTS stock_analysis (
			run_id TEXT NOT NULL,
			generated_at TIMESTAMP NOT NULL,
			stock_code TEXT NOT NULL,
			rank_position INTEGER NOT NULL,
			final_score REAL NOT NULL,
			sentiment_component REAL NOT NULL,
			similarity_component REAL NOT NULL,
			mean_polarity REAL NOT NULL,
			positive_count INTEGER NOT NULL,
			neutral_count INTEGER NOT NULL,
			negative_count INTEGER NOT NULL,
			label TEXT NOT NULL,
			PRIMARY KEY (run_id, stock_code)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_stock ON news(stock_code, published_at)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// List returns stocks matching the filter, ordered by code.
func (r *SQLiteRepository) List(ctx context.Context, filter domain.Filter) ([]domain.Stock, error) {
	query := r.sb.Select("code", "name", "sector", "sub_sector", "index_member").
		From("stocks").
		OrderBy("code ASC")

	if filter.Index != "" {
		query = query.Where(sq.Like{"index_member": "%" + filter.Index + "%"})
	}
	if len(filter.Codes) > 0 {
		codes := make([]string, len(filter.Codes))
		for i, c := range filter.Codes {
			codes[i] = strings.ToUpper(c)
		}
		query = query.Where(sq.Eq{"code": codes})
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(sq.Or{sq.Like{"code": pattern}, sq.Like{"name": pattern}})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stock query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query stocks: %w", err)
	}
	defer rows.Close()

	var stocks []domain.Stock
	for rows.Next() {
		var stock domain.Stock
		var sector, subSector, indexMember sql.NullString
		if err := rows.Scan(&stock.Code, &stock.Name, &sector, &subSector, &indexMember); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stock.Sector = sector.String
		stock.SubSector = subSector.String
		stock.Indexes = splitIndexes(indexMember.String)
		stocks = append(stocks, stock)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return stocks, nil
}

// Get fetches a single stock by code, ErrNotFound when absent.
func (r *SQLiteRepository) Get(ctx context.Context, code string) (domain.Stock, error) {
	stocks, err := r.List(ctx, domain.Filter{Codes: []string{code}})
	if err != nil {
		return domain.Stock{}, err
	}
	if len(stocks) == 0 {
		return domain.Stock{}, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	return stocks[0], nil
}

// SaveStocks upserts the stock universe.
func (r *SQLiteRepository) SaveStocks(ctx context.Context, stocks []domain.Stock) error {
	for _, stock := range stocks {
		sqlStr, args, err := r.sb.Insert("stocks").
			Columns("code", "name", "sector", "sub_sector", "index_member").
			Values(strings.ToUpper(stock.Code), stock.Name, stock.Sector, stock.SubSector,
				strings.Join(stock.Indexes, ",")).
			Suffix("ON CONFLICT(code) DO UPDATE SET name=excluded.name, sector=excluded.sector, sub_sector=excluded.sub_sector, index_member=excluded.index_member").
			ToSql()
		if err != nil {
			return fmt.Errorf("build stock upsert: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("upsert stock %s: %w", stock.Code, err)
		}
	}
	return nil
}

// FetchArticles returns articles for stocks matching the filter, newest first.
func (r *SQLiteRepository) FetchArticles(ctx context.Context, filter domain.Filter) ([]domain.Article, error) {
	query := r.sb.Select("n.stock_code", "n.title", "n.content", "n.url", "n.source", "n.published_at").
		From("news n").
		Join("stocks s ON s.code = n.stock_code").
		OrderBy("n.published_at DESC")

	if filter.Index != "" {
		query = query.Where(sq.Like{"s.index_member": "%" + filter.Index + "%"})
	}
	if len(filter.Codes) > 0 {
		codes := make([]string, len(filter.Codes))
		for i, c := range filter.Codes {
			codes[i] = strings.ToUpper(c)
		}
		query = query.Where(sq.Eq{"n.stock_code": codes})
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(sq.Or{sq.Like{"s.code": pattern}, sq.Like{"s.name": pattern}})
	}
	if !filter.From.IsZero() {
		query = query.Where(sq.GtOrEq{"n.published_at": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(sq.LtOrEq{"n.published_at": filter.To})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var article domain.Article
		var content sql.NullString
		var publishedAt sql.NullTime
		if err := rows.Scan(&article.StockCode, &article.Title, &content,
			&article.URL, &article.Source, &publishedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		article.RawText = content.String
		article.PublishedAt = publishedAt.Time
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return articles, nil
}

// SaveArticles upserts scraped articles keyed on URL per stock, so one
// article associated with several mentioned stocks keeps every row.
func (r *SQLiteRepository) SaveArticles(ctx context.Context, articles []domain.Article) error {
	for _, article := range articles {
		sqlStr, args, err := r.sb.Insert("news").
			Columns("url", "stock_code", "title", "content", "source", "published_at", "scraped_at").
			Values(article.URL, strings.ToUpper(article.StockCode), article.Title,
				article.RawText, article.Source, nullableTime(article.PublishedAt), time.Now().UTC()).
			Suffix("ON CONFLICT(url, stock_code) DO UPDATE SET title=excluded.title, content=excluded.content, published_at=excluded.published_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build article upsert: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("upsert article %s: %w", article.URL, err)
		}
	}
	return nil
}

// SaveAnalysis stores one ranked run, a row per recommendation.
func (r *SQLiteRepository) SaveAnalysis(ctx context.Context, snapshot domain.AnalysisSnapshot) error {
	for _, rec := range snapshot.Results {
		sqlStr, args, err := r.sb.Insert("stock_analysis").
			Columns("run_id", "generated_at", "stock_code", "rank_position",
				"final_score", "sentiment_component", "similarity_component",
				"mean_polarity", "positive_count", "neutral_count", "negative_count", "label").
			Values(snapshot.RunID, snapshot.GeneratedAt, rec.StockCode, rec.Rank,
				rec.FinalScore, rec.SentimentComponent, rec.SimilarityComponent,
				rec.Sentiment.MeanPolarity, rec.Sentiment.PositiveCount,
				rec.Sentiment.NeutralCount, rec.Sentiment.NegativeCount, rec.Label).
			ToSql()
		if err != nil {
			return fmt.Errorf("build analysis insert: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert analysis row %s: %w", rec.StockCode, err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func splitIndexes(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
