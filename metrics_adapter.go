package rtsched

// GenerateMetrics produces the feature vector a Predictor sees for a given
// job payload. A nil GenerateMetrics is equivalent to one that always
// returns an empty vector, per spec.md §3's "absent for
// prediction-without-metrics" and §4.3's "absence is equivalent to always
// return empty vector".
type GenerateMetrics[T any] func(payload T) []float64

// metricsFor evaluates gen against payload, tolerating a nil generator.
func metricsFor[T any](gen GenerateMetrics[T], payload T) []float64 {
	if gen == nil {
		return nil
	}
	return gen(payload)
}
