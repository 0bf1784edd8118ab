package ai

import "math"

// NormalizeVector normalizes a vector to unit L2 length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	magnitude := math.Sqrt(sum)

	result := make([]float32, len(v))
	// Can't normalize zero vector
	if magnitude == 0 {
		return result
	}

	inv := 1.0 / magnitude
	for i, val := range v {
		result[i] = float32(float64(val) * inv)
	}
	return result
}

// Dot returns the inner product of two vectors of equal length.
// For unit vectors this equals their cosine similarity.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
