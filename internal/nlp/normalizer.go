package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlExpr    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailExpr  = regexp.MustCompile(`\S+@\S+`)
	tagExpr    = regexp.MustCompile(`<[^>]+>`)
	tickerExpr = regexp.MustCompile(`\b[A-Z]{4}\b`)
)

// tickerFalsePositives are common Indonesian words that happen to match
// the four-uppercase-letter ticker shape.
var tickerFalsePositives = map[string]struct{}{
	"YANG": {}, "DARI": {}, "AKAN": {}, "PADA": {}, "JUGA": {},
	"ATAS": {}, "ATAU": {}, "BISA": {}, "KATA": {}, "SAAT": {},
}

// Normalizer cleans and tokenizes raw Indonesian news text. It is a pure
// function of its input and the fixed stop-word/stemming resources bound
// at construction.
type Normalizer struct {
	keepTickers map[string]struct{}
}

// NewNormalizer builds a normalizer. Known ticker codes survive the
// stop-word and stemming passes unchanged.
func NewNormalizer(tickers []string) *Normalizer {
	keep := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		keep[strings.ToLower(t)] = struct{}{}
	}
	return &Normalizer{keepTickers: keep}
}

// Normalize runs the full pipeline: clean, tokenize, remove stop words,
// stem. Empty or whitespace-only input yields an empty token slice.
func (n *Normalizer) Normalize(raw string) []string {
	tokens := n.tokenize(cleanText(raw))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := n.keepTickers[token]; ok {
			out = append(out, token)
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if isNumeric(token) {
			continue
		}
		out = append(out, stem(token))
	}
	return out
}

// SentimentTokens prepares text for the sentiment scorer: cleaned and
// tokenized but not stemmed, with only bare function words removed so
// negations and intensifiers keep their position.
func (n *Normalizer) SentimentTokens(raw string) []string {
	tokens := n.tokenize(cleanText(raw))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, stop := sentimentStopWords[token]; stop {
			continue
		}
		out = append(out, token)
	}
	return out
}

// ExtractTickers returns stock codes mentioned in the text (four
// uppercase letters, common-word false positives removed).
func ExtractTickers(text string) []string {
	matches := tickerExpr.FindAllString(strings.ToUpper(text), -1)
	seen := map[string]struct{}{}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, bad := tickerFalsePositives[m]; bad {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func (n *Normalizer) tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func cleanText(raw string) string {
	text := strings.ToLower(raw)
	text = urlExpr.ReplaceAllString(text, " ")
	text = emailExpr.ReplaceAllString(text, " ")
	text = tagExpr.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
