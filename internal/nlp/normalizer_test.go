package nlp

import (
	"reflect"
	"testing"
)

func TestNormalizeEmptyInput(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	for _, input := range []string{"", "   ", "\n\t"} {
		if tokens := n.Normalize(input); len(tokens) != 0 {
			t.Fatalf("expected no tokens for %q, got %v", input, tokens)
		}
	}
}

func TestNormalizeCleansAndStems(t *testing.T) {
	t.Parallel()

	n := NewNormalizer([]string{"BBCA"})

	raw := "Pertumbuhan laba BBCA dibeli investor, baca https://kontan.co.id/x dan hubungi redaksi@kontan.co.id 2024"
	got := n.Normalize(raw)

	want := []string{"tumbuh", "laba", "bbca", "beli", "investor", "hubung"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: got %v, want %v", got, want)
	}
}

func TestNormalizeDropsStopWordsAndNumerals(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	got := n.Normalize("yang dan untuk 123 2024 wib")
	if len(got) != 0 {
		t.Fatalf("expected all tokens removed, got %v", got)
	}
}

func TestNormalizeKeepsTickersVerbatim(t *testing.T) {
	t.Parallel()

	n := NewNormalizer([]string{"TLKM"})

	got := n.Normalize("saham TLKM")
	want := []string{"saham", "tlkm"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: got %v, want %v", got, want)
	}
}

func TestSentimentTokensKeepNegations(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	got := n.SentimentTokens("saham ini tidak untung, dan melemah!")
	want := []string{"saham", "tidak", "untung", "melemah"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: got %v, want %v", got, want)
	}
}

func TestNormalizeIsPure(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)
	raw := "Laba bersih meningkat signifikan pada kuartal ketiga"

	first := n.Normalize(raw)
	second := n.Normalize(raw)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalize is not deterministic: %v vs %v", first, second)
	}
}

func TestExtractTickers(t *testing.T) {
	t.Parallel()

	text := "Saham BBCA dan TLKM menguat, kata analis. BBCA memimpin."
	got := ExtractTickers(text)
	want := []string{"BBCA", "TLKM"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tickers: got %v, want %v", got, want)
	}
}

func TestStem(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"pertumbuhan", "tumbuh"},
		{"keuangan", "uang"},
		{"dibeli", "beli"},
		{"sahamnya", "saham"},
		{"menulis", "tulis"},
		{"mencatat", "catat"},
		{"laba", "laba"},
		{"di", "di"},
	}
	for _, tc := range cases {
		if got := stem(tc.in); got != tc.want {
			t.Fatalf("stem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
