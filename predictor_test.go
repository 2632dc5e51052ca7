package rtsched

import "testing"

func TestNoopPredictorAlwaysZero(t *testing.T) {
	p := NoopPredictor{}
	p.Train(0, 0, 999)
	if got := p.Predict(0, 0, []float64{1, 2, 3}); got != 0 {
		t.Fatalf("Predict = %d, want 0", got)
	}
}

func TestEWMAPredictorConvergesTowardRepeatedMeasurement(t *testing.T) {
	p := &EWMAPredictor{Alpha: 0.5}

	if got := p.Predict(0, 0, nil); got != 0 {
		t.Fatalf("unprimed Predict = %d, want 0", got)
	}

	for i := 0; i < 20; i++ {
		p.Train(0, i, 1000)
	}

	got := p.Predict(0, 20, nil)
	if got < 990 || got > 1000 {
		t.Fatalf("Predict after convergence = %d, want ~1000", got)
	}
}

func TestEWMAPredictorDefaultAlpha(t *testing.T) {
	p := &EWMAPredictor{}
	p.Train(0, 0, 100)
	p.Train(0, 1, 200)
	// alpha 0.3: 0.3*200 + 0.7*100 = 130
	if got := p.Predict(0, 2, nil); got != 130 {
		t.Fatalf("Predict = %d, want 130", got)
	}
}

func TestClampPrediction(t *testing.T) {
	cases := []struct {
		predicted, period, want int64
	}{
		{-5, 100, 0},
		{50, 100, 50},
		{150, 100, 100},
		{0, 100, 0},
	}
	for _, c := range cases {
		if got := clampPrediction(c.predicted, c.period); got != c.want {
			t.Errorf("clampPrediction(%d, %d) = %d, want %d", c.predicted, c.period, got, c.want)
		}
	}
}
