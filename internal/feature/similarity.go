package feature

// Cosine returns the cosine similarity of two sparse vectors. Feature
// weights are non-negative, so the result stays in [0, 1]. A zero-norm
// vector is similar to nothing: the result is 0, never NaN.
func Cosine(a, b Vector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}

	// Iterate the smaller vector; only shared terms contribute.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	return dot / (normA * normB)
}

// Matrix computes pairwise similarity across all stock vectors. The
// result is symmetric; the diagonal is 1 by definition and not computed.
func Matrix(vectors map[string]Vector) map[string]map[string]float64 {
	codes := make([]string, 0, len(vectors))
	for code := range vectors {
		codes = append(codes, code)
	}

	matrix := make(map[string]map[string]float64, len(codes))
	for _, code := range codes {
		matrix[code] = map[string]float64{code: 1.0}
	}
	for i := 0; i < len(codes); i++ {
		for j := i + 1; j < len(codes); j++ {
			sim := Cosine(vectors[codes[i]], vectors[codes[j]])
			matrix[codes[i]][codes[j]] = sim
			matrix[codes[j]][codes[i]] = sim
		}
	}
	return matrix
}

// Reference builds a profile vector by averaging the vectors of the given
// stock codes. Codes without a vector contribute nothing.
func Reference(vectors map[string]Vector, codes []string) Vector {
	ref := Vector{}
	var found int
	for _, code := range codes {
		vec, ok := vectors[code]
		if !ok {
			continue
		}
		found++
		for term, weight := range vec {
			ref[term] += weight
		}
	}
	if found > 1 {
		for term := range ref {
			ref[term] /= float64(found)
		}
	}
	return ref
}

// AgainstReference computes each stock's similarity to the reference
// vector in one pass.
func AgainstReference(vectors map[string]Vector, reference Vector) map[string]float64 {
	out := make(map[string]float64, len(vectors))
	for code, vec := range vectors {
		out[code] = Cosine(vec, reference)
	}
	return out
}
