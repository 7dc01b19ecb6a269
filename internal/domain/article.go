package domain

import "time"

// Article is a scraped news item tied to a stock. It is immutable once
// fetched; the recommendation engine only reads it.
type Article struct {
	StockCode   string
	Title       string
	RawText     string
	URL         string
	Source      string
	PublishedAt time.Time
}

// SentimentLabel classifies an article or an aggregate polarity.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentSummary aggregates per-article polarities for one stock.
// A stock with no articles keeps the zero value: mean 0, label neutral.
type SentimentSummary struct {
	MeanPolarity  float64
	PositiveCount int
	NeutralCount  int
	NegativeCount int
}

// Total returns the number of scored articles behind the summary.
func (s SentimentSummary) Total() int {
	return s.PositiveCount + s.NeutralCount + s.NegativeCount
}
