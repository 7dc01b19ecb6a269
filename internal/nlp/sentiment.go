package nlp

import (
	"math"

	"StockRecommender/internal/domain"
)

// Thresholds split the polarity range into labels.
type Thresholds struct {
	Positive float64
	Negative float64
}

// DefaultThresholds per the documented configuration defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{Positive: 0.1, Negative: -0.1}
}

// SentimentScorer assigns a polarity in [-1, 1] to a token sequence using
// a lexicon with intensifiers, negations and bigram phrases. Identical
// token sequences always produce identical polarities.
type SentimentScorer struct {
	lexicon    Lexicon
	thresholds Thresholds
}

// NewSentimentScorer binds the lexicon and label thresholds.
func NewSentimentScorer(lexicon Lexicon, thresholds Thresholds) *SentimentScorer {
	return &SentimentScorer{lexicon: lexicon, thresholds: thresholds}
}

// Score walks the token sequence once, accumulating lexicon weights with
// the preceding token's intensifier or negation applied, then squashes
// the mean matched weight through tanh to stay inside [-1, 1].
func (s *SentimentScorer) Score(tokens []string) float64 {
	var total float64
	var matched int

	for i, token := range tokens {
		negated := i > 0 && s.isNegation(tokens[i-1])
		intensity := 1.0
		if i > 0 {
			if factor, ok := s.lexicon.Intensifiers[tokens[i-1]]; ok {
				intensity = factor
			}
		}

		if weight, ok := s.weightOf(token); ok {
			score := weight * intensity
			if negated {
				// Negation flips and dampens: "tidak untung" is mildly
				// negative, not the full inverse.
				score = -score * 0.5
			}
			total += score
			matched++
		}

		if i+1 < len(tokens) {
			bigram := token + " " + tokens[i+1]
			if weight, ok := s.weightOf(bigram); ok {
				total += weight
				matched++
			}
		}
	}

	if matched == 0 {
		return 0
	}
	return math.Tanh(total / float64(matched))
}

// Label maps a polarity to its sentiment class using the bound thresholds.
func (s *SentimentScorer) Label(polarity float64) domain.SentimentLabel {
	switch {
	case polarity > s.thresholds.Positive:
		return domain.SentimentPositive
	case polarity < s.thresholds.Negative:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// Summarize aggregates per-article polarities into the per-stock summary.
// An empty slice yields the documented neutral default, never an error.
func (s *SentimentScorer) Summarize(polarities []float64) domain.SentimentSummary {
	if len(polarities) == 0 {
		return domain.SentimentSummary{}
	}

	var summary domain.SentimentSummary
	var sum float64
	for _, p := range polarities {
		sum += p
		switch s.Label(p) {
		case domain.SentimentPositive:
			summary.PositiveCount++
		case domain.SentimentNegative:
			summary.NegativeCount++
		default:
			summary.NeutralCount++
		}
	}
	summary.MeanPolarity = sum / float64(len(polarities))
	return summary
}

func (s *SentimentScorer) weightOf(term string) (float64, bool) {
	if w, ok := s.lexicon.Positive[term]; ok {
		return w, true
	}
	if w, ok := s.lexicon.Negative[term]; ok {
		return w, true
	}
	return 0, false
}

func (s *SentimentScorer) isNegation(token string) bool {
	_, ok := s.lexicon.Negations[token]
	return ok
}
