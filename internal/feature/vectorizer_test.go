package feature

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildSnapshotWeights(t *testing.T) {
	t.Parallel()

	docs := map[string][]Document{
		"BBCA": {{Tokens: []string{"bank", "laba", "bank"}}},
		"GOTO": {{Tokens: []string{"bank", "teknologi"}}},
	}

	snapshot := BuildSnapshot(docs)

	// "bank" appears in both documents: idf = ln(2/2) = 0, so it never
	// materializes as a vector weight.
	if got := snapshot.IDF("bank"); !almostEqual(got, 0) {
		t.Fatalf("idf(bank) = %v, want 0", got)
	}
	if _, ok := snapshot.Vector("BBCA")["bank"]; ok {
		t.Fatalf("zero-weight term should not be stored")
	}

	// "laba": tf = 1/3, idf = ln(2/1).
	wantLaba := (1.0 / 3.0) * math.Log(2)
	if got := snapshot.Vector("BBCA")["laba"]; !almostEqual(got, wantLaba) {
		t.Fatalf("weight(laba) = %v, want %v", got, wantLaba)
	}

	// "teknologi": tf = 1/2, idf = ln(2/1).
	wantTek := 0.5 * math.Log(2)
	if got := snapshot.Vector("GOTO")["teknologi"]; !almostEqual(got, wantTek) {
		t.Fatalf("weight(teknologi) = %v, want %v", got, wantTek)
	}

	// Vocabulary covers every term seen in a populated document.
	if got := snapshot.VocabularySize(); got != 3 {
		t.Fatalf("vocabulary size = %d, want 3", got)
	}
}

func TestBuildSnapshotZeroArticleStock(t *testing.T) {
	t.Parallel()

	docs := map[string][]Document{
		"BBCA": {{Tokens: []string{"laba", "naik"}}},
		"GOTO": {{Tokens: []string{"rugi", "turun"}}},
		"EMPT": nil,
	}

	snapshot := BuildSnapshot(docs)

	empty := snapshot.Vector("EMPT")
	if len(empty) != 0 {
		t.Fatalf("expected all-zero vector for stock without articles, got %v", empty)
	}
	if got := Cosine(empty, snapshot.Vector("BBCA")); got != 0 {
		t.Fatalf("zero vector similarity = %v, want 0", got)
	}

	// The empty stock must not count towards N: two populated documents,
	// each term unique to one, so idf = ln(2/1).
	if got := snapshot.IDF("laba"); !almostEqual(got, math.Log(2)) {
		t.Fatalf("idf(laba) = %v, want ln(2)", got)
	}
}

func TestSnapshotsAreCorpusIsolated(t *testing.T) {
	t.Parallel()

	wide := BuildSnapshot(map[string][]Document{
		"AAAA": {{Tokens: []string{"laba"}}},
		"BBBB": {{Tokens: []string{"laba"}}},
	})
	narrow := BuildSnapshot(map[string][]Document{
		"AAAA": {{Tokens: []string{"laba"}}},
		"CCCC": {{Tokens: []string{"rugi"}}},
	})

	if wide.IDF("laba") == narrow.IDF("laba") {
		t.Fatalf("expected different idf values per corpus snapshot, both %v", wide.IDF("laba"))
	}
}

func TestBuildSnapshotEqualWeightsMatchConcatenation(t *testing.T) {
	t.Parallel()

	split := BuildSnapshot(map[string][]Document{
		"AAAA": {
			{Tokens: []string{"laba", "naik"}},
			{Tokens: []string{"laba", "dividen"}},
		},
		"BBBB": {{Tokens: []string{"rugi"}}},
	})
	concat := BuildSnapshot(map[string][]Document{
		"AAAA": {{Tokens: []string{"laba", "naik", "laba", "dividen"}}},
		"BBBB": {{Tokens: []string{"rugi"}}},
	})

	for term, weight := range concat.Vector("AAAA") {
		if got := split.Vector("AAAA")[term]; !almostEqual(got, weight) {
			t.Fatalf("weight(%s) = %v, want %v", term, got, weight)
		}
	}
}

func TestBuildSnapshotRecencyWeighting(t *testing.T) {
	t.Parallel()

	snapshot := BuildSnapshot(map[string][]Document{
		"AAAA": {
			{Tokens: []string{"laba"}, Weight: 3},
			{Tokens: []string{"rugi"}, Weight: 1},
		},
		"BBBB": {{Tokens: []string{"saham"}}},
	})

	vec := snapshot.Vector("AAAA")
	// tf(laba) = 3/4, tf(rugi) = 1/4, same idf.
	if !almostEqual(vec["laba"], 3*vec["rugi"]) {
		t.Fatalf("expected laba to weigh 3x rugi, got %v vs %v", vec["laba"], vec["rugi"])
	}
}

func TestTopTerms(t *testing.T) {
	t.Parallel()

	vec := Vector{"laba": 0.5, "naik": 0.7, "rugi": 0.5, "saham": 0.1}

	got := vec.TopTerms(3)
	if len(got) != 3 {
		t.Fatalf("expected 3 terms, got %d", len(got))
	}
	if got[0].Term != "naik" {
		t.Fatalf("expected naik first, got %s", got[0].Term)
	}
	// Equal weights order by term.
	if got[1].Term != "laba" || got[2].Term != "rugi" {
		t.Fatalf("unexpected tie order: %v", got)
	}
}
