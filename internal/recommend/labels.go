package recommend

// label translates a final score in [0, 1] and the raw mean polarity into
// an analyst-style action label.
func label(score, polarity float64) string {
	switch {
	case score >= 0.75 && polarity > 0.3:
		return "Strong Buy"
	case score >= 0.6 && polarity > 0.1:
		return "Buy"
	case score >= 0.4 || (polarity > -0.2 && polarity < 0.2):
		return "Hold"
	case score >= 0.25 || polarity > -0.4:
		return "Sell"
	default:
		return "Strong Sell"
	}
}
