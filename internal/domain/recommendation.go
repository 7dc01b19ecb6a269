package domain

import "time"

// Keyword is a top TF-IDF term carried on results for display.
type Keyword struct {
	Term   string
	Weight float64
}

// Recommendation is one row of a ranked run. Created fresh per run and
// never mutated afterwards; a new run replaces the whole slice.
type Recommendation struct {
	StockCode           string
	StockName           string
	Indexes             []string
	FinalScore          float64
	SentimentComponent  float64
	SimilarityComponent float64
	Sentiment           SentimentSummary
	Label               string
	Keywords            []Keyword
	ArticleCount        int
	Rank                int
}

// SimilarStock is one neighbor in a content-similarity lookup.
type SimilarStock struct {
	StockCode  string
	StockName  string
	Similarity float64
}

// AnalysisSnapshot is a persisted recommendation run.
type AnalysisSnapshot struct {
	RunID       string
	GeneratedAt time.Time
	Filter      Filter
	Results     []Recommendation
}
