// Package similarity scores embedding vectors against each other.
package similarity

import "math"

// Cosine returns the cosine similarity of a and b, accumulated in float64.
// The result is NaN when the lengths differ or either vector has zero magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return math.NaN()
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Best tracks the highest-scoring candidate seen so far.
// A candidate replaces the current best only when its score is strictly
// greater, starting from 0, so NaN and non-positive scores never win and
// ties keep the first candidate.
type Best[T any] struct {
	item  T
	score float64
	found bool
}

// Offer considers a candidate and reports whether it became the best.
func (b *Best[T]) Offer(item T, score float64) bool {
	if !(score > b.score) {
		return false
	}
	b.item, b.score, b.found = item, score, true
	return true
}

// Result returns the best candidate and its score. ok is false when no
// candidate scored above 0.
func (b *Best[T]) Result() (item T, score float64, ok bool) {
	return b.item, b.score, b.found
}
