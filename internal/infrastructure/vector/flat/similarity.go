package flat

import "math"

// cosineEpsilon guards the cosine denominator against near-zero norms.
const cosineEpsilon = 1e-8

func dotProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func cosineSimilarity(a, b []float32, normA, normB float64) float64 {
	return dotProduct(a, b) / (normA*normB + cosineEpsilon)
}

func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// euclideanSimilarity maps distance to a similarity in (0, 1], higher is
// more similar. 1/(1+d) is monotonic in the distance, which is all the
// ranking relies on.
func euclideanSimilarity(a, b []float32) float64 {
	return 1 / (1 + euclideanDistance(a, b))
}
