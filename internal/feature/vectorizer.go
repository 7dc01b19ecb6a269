// Package feature builds per-run TF-IDF feature vectors over stock news
// corpora and computes cosine similarity between them.
package feature

import (
	"math"
	"sort"
)

// Vector is a sparse term-to-weight mapping. Absent terms weigh zero.
type Vector map[string]float64

// Norm returns the Euclidean norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// TopTerms returns the n heaviest terms, sorted by descending weight with
// term-ascending tie-break.
func (v Vector) TopTerms(n int) []WeightedTerm {
	terms := make([]WeightedTerm, 0, len(v))
	for term, weight := range v {
		terms = append(terms, WeightedTerm{Term: term, Weight: weight})
	}
	sortWeightedTerms(terms)
	if n < len(terms) {
		terms = terms[:n]
	}
	return terms
}

// WeightedTerm pairs a vocabulary term with its TF-IDF weight.
type WeightedTerm struct {
	Term   string
	Weight float64
}

// Document is one normalized article with an optional weight (recency
// decay). A zero weight is treated as 1.
type Document struct {
	Tokens []string
	Weight float64
}

// Snapshot is an immutable per-run vector space: the vocabulary with its
// IDF values and one vector per stock, built together. A vector is only
// meaningful inside the snapshot that produced it; each filtered run
// builds its own.
type Snapshot struct {
	idf     map[string]float64
	vectors map[string]Vector
}

// BuildSnapshot computes TF-IDF vectors over per-stock document sets.
// All of a stock's articles form one logical document: term frequency is
// the (weighted) relative frequency over the concatenated token stream,
// and document frequency counts stocks. Stocks without articles get an
// all-zero vector and do not count towards N. Terms that appear in no
// document never enter the vocabulary, so IDF never divides by zero.
func BuildSnapshot(docs map[string][]Document) *Snapshot {
	counts := make(map[string]map[string]float64, len(docs))
	lengths := make(map[string]float64, len(docs))
	df := map[string]int{}
	populated := 0

	for code, stockDocs := range docs {
		termCounts := map[string]float64{}
		var length float64
		for _, doc := range stockDocs {
			weight := doc.Weight
			if weight <= 0 {
				weight = 1
			}
			for _, token := range doc.Tokens {
				termCounts[token] += weight
				length += weight
			}
		}
		counts[code] = termCounts
		lengths[code] = length
		if length > 0 {
			populated++
			for term := range termCounts {
				df[term]++
			}
		}
	}

	idf := make(map[string]float64, len(df))
	for term, freq := range df {
		idf[term] = math.Log(float64(populated) / float64(freq))
	}

	vectors := make(map[string]Vector, len(docs))
	for code, termCounts := range counts {
		vec := Vector{}
		if length := lengths[code]; length > 0 {
			for term, count := range termCounts {
				if weight := (count / length) * idf[term]; weight != 0 {
					vec[term] = weight
				}
			}
		}
		vectors[code] = vec
	}

	return &Snapshot{idf: idf, vectors: vectors}
}

// Vector returns the stock's feature vector; missing stocks yield an
// empty (all-zero) vector.
func (s *Snapshot) Vector(code string) Vector {
	if vec, ok := s.vectors[code]; ok {
		return vec
	}
	return Vector{}
}

// Vectors exposes the full per-stock vector set of this run.
func (s *Snapshot) Vectors() map[string]Vector {
	return s.vectors
}

// IDF returns the inverse document frequency of a vocabulary term, or 0
// when the term is outside this snapshot's vocabulary.
func (s *Snapshot) IDF(term string) float64 {
	return s.idf[term]
}

// VocabularySize reports the number of terms in this run's vocabulary.
func (s *Snapshot) VocabularySize() int {
	return len(s.idf)
}

func sortWeightedTerms(terms []WeightedTerm) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].Term < terms[j].Term
	})
}
