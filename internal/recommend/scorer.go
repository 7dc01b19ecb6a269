// Package recommend merges sentiment aggregates and similarity scores per
// stock into one deterministically ranked recommendation list.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"StockRecommender/internal/domain"
)

// Weights control the blend of the two score components.
type Weights struct {
	Sentiment  float64
	Similarity float64
}

// DefaultWeights per the documented configuration defaults.
func DefaultWeights() Weights {
	return Weights{Sentiment: 0.4, Similarity: 0.6}
}

// Normalize validates the weights and rescales them to sum to 1. Negative
// or non-finite weights are a configuration error and are not clamped.
func (w Weights) Normalize() (Weights, error) {
	if math.IsNaN(w.Sentiment) || math.IsNaN(w.Similarity) ||
		math.IsInf(w.Sentiment, 0) || math.IsInf(w.Similarity, 0) {
		return Weights{}, fmt.Errorf("%w: weights must be finite", domain.ErrInvalidWeights)
	}
	if w.Sentiment < 0 || w.Similarity < 0 {
		return Weights{}, fmt.Errorf("%w: weights must be non-negative, got sentiment=%g similarity=%g",
			domain.ErrInvalidWeights, w.Sentiment, w.Similarity)
	}
	sum := w.Sentiment + w.Similarity
	if sum == 0 {
		return Weights{}, fmt.Errorf("%w: at least one weight must be positive", domain.ErrInvalidWeights)
	}
	return Weights{Sentiment: w.Sentiment / sum, Similarity: w.Similarity / sum}, nil
}

// Input carries one candidate stock's aggregates into ranking.
type Input struct {
	Stock        domain.Stock
	Sentiment    domain.SentimentSummary
	Similarity   float64
	Keywords     []domain.Keyword
	ArticleCount int
}

// Rank computes final scores and returns the candidates ordered
// descending by score. Mean polarity is mapped from [-1, 1] onto [0, 1]
// before blending, so with normalized weights the final score is a convex
// combination bounded in [0, 1]. Ties break on higher similarity, then on
// stock code ascending, giving a total order that is stable across runs.
func Rank(candidates []Input, weights Weights) ([]domain.Recommendation, error) {
	normalized, err := weights.Normalize()
	if err != nil {
		return nil, err
	}

	results := make([]domain.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		sentimentComponent := (c.Sentiment.MeanPolarity + 1) / 2
		final := normalized.Sentiment*sentimentComponent + normalized.Similarity*c.Similarity
		results = append(results, domain.Recommendation{
			StockCode:           c.Stock.Code,
			StockName:           c.Stock.Name,
			Indexes:             c.Stock.Indexes,
			FinalScore:          final,
			SentimentComponent:  sentimentComponent,
			SimilarityComponent: c.Similarity,
			Sentiment:           c.Sentiment,
			Label:               label(final, c.Sentiment.MeanPolarity),
			Keywords:            c.Keywords,
			ArticleCount:        c.ArticleCount,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		if results[i].SimilarityComponent != results[j].SimilarityComponent {
			return results[i].SimilarityComponent > results[j].SimilarityComponent
		}
		return results[i].StockCode < results[j].StockCode
	})

	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}
