package scoring

import "math"

const similarityEpsilon = 1e-9

// Similarity returns the cosine similarity of the term-frequency vectors of a
// and b, in [0,1]. Texts without tokens, or with disjoint vocabularies, score 0.
func Similarity(a, b string) float64 {
	score, _ := similarity(Tokenize(a), Tokenize(b))
	return score
}

// similarity reports ok=false when the vectors cannot carry a meaningful angle,
// which the aggregator treats as a degraded signal rather than an error.
func similarity(tokensA, tokensB []string) (float64, bool) {
	tfA := termFrequencies(tokensA)
	tfB := termFrequencies(tokensB)
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0, false
	}

	// Counts stay integral until the final division so the result does not
	// depend on map iteration order or argument order.
	small, large := tfA, tfB
	if len(small) > len(large) {
		small, large = large, small
	}
	var dot int64
	for term, count := range small {
		dot += count * large[term]
	}

	denominator := math.Sqrt(float64(sumSquares(tfA)))*math.Sqrt(float64(sumSquares(tfB))) + similarityEpsilon
	score := float64(dot) / denominator
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}

	return clamp01(score), true
}

func termFrequencies(tokens []string) map[string]int64 {
	tf := make(map[string]int64, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}
	return tf
}

func sumSquares(tf map[string]int64) int64 {
	var sum int64
	for _, count := range tf {
		sum += count * count
	}
	return sum
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
