package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultThreshold is the score a candidate must strictly exceed to count as similar.
const DefaultThreshold = 0.13

// ErrDimensionMismatch is returned when two vectors of different length are compared.
var ErrDimensionMismatch = errors.New("vector dimensions differ")

// CosineSimilarity calculates the cosine similarity between two vectors.
// A zero-magnitude vector scores 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// AboveThreshold returns, in ascending order, the keys whose score is
// strictly greater than threshold.
func AboveThreshold(scores map[int]float64, threshold float64) []int {
	keys := make([]int, 0, len(scores))
	for k, score := range scores {
		if score > threshold {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)
	return keys
}
