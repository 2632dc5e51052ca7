package rtsched

// Predictor is the external runtime estimator trait from spec.md §4.5. The
// library treats it as a pluggable dependency and ships no implementation
// of its internals, only the interface and a couple of reference-quality
// backends suitable for tests and simple drivers.
//
// slotA is fixed at 0 by every caller in this package (a task has a single
// sub-task); slotB is the job's local monotonic index, starting at 0.
// Predict must return a non-negative duration; the caller clamps it to
// [0, period] regardless, per spec.md §4.5 and §7's "predictor excursion"
// handling.
type Predictor interface {
	// Predict returns the estimated runtime, in nanoseconds, for the job
	// identified by (slotA, slotB), given its feature vector.
	Predict(slotA, slotB int, metrics []float64) int64
	// Train feeds the measured runtime, in nanoseconds, for the job
	// identified by (slotA, slotB) back into the estimator.
	Train(slotA, slotB int, measuredNs float64)
}

// NoopPredictor always predicts zero and ignores training. It is the
// "no-op backend available for tests" spec.md §9 calls for. It is never
// substituted automatically: NewPredictiveTask reports a nil Predictor as
// misuse, so callers that want a no-op backend pass NoopPredictor{}
// explicitly.
type NoopPredictor struct{}

// Predict always returns 0.
func (NoopPredictor) Predict(int, int, []float64) int64 { return 0 }

// Train is a no-op.
func (NoopPredictor) Train(int, int, float64) {}

// EWMAPredictor predicts the next runtime as an exponentially weighted
// moving average of past measurements, ignoring the metrics vector. It is a
// realistic, dependency-free default for demo drivers that want the
// feedback loop in spec.md §2 to actually converge (S3/S4 in spec.md §8)
// without linking a real estimator.
//
// EWMAPredictor is safe for single-task use only: like the task worker
// itself, each (slotA) is driven by exactly one goroutine, so no locking is
// performed.
type EWMAPredictor struct {
	// Alpha is the smoothing factor in (0, 1]; higher values track recent
	// measurements more closely. Zero value defaults to 0.3 on first use.
	Alpha float64

	estimate float64
	primed   bool
}

// Predict returns the current moving-average estimate, ignoring metrics and
// the (slotA, slotB) identifiers: this predictor has no notion of separate
// job identities, only a running average across calls.
func (p *EWMAPredictor) Predict(int, int, []float64) int64 {
	if !p.primed {
		return 0
	}
	return int64(p.estimate)
}

// Train folds measuredNs into the moving average.
func (p *EWMAPredictor) Train(_, _ int, measuredNs float64) {
	alpha := p.Alpha
	if alpha <= 0 {
		alpha = 0.3
	}
	if !p.primed {
		p.estimate = measuredNs
		p.primed = true
		return
	}
	p.estimate = alpha*measuredNs + (1-alpha)*p.estimate
}

// clampPrediction enforces spec.md §4.5/§7: a predictor's output is treated
// as a non-negative duration and clamped to [0, periodNs].
func clampPrediction(predictedNs int64, periodNs int64) int64 {
	if predictedNs < 0 {
		return 0
	}
	if predictedNs > periodNs {
		return periodNs
	}
	return predictedNs
}
