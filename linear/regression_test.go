package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/mlprimer/mlprimer/pkg/errors"
)

// lineData builds a noise-free y = 3x + 2 dataset over [-2, 2].
func lineData(n int) (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := -2.0 + 4.0*float64(i)/float64(n-1)
		X.Set(i, 0, x)
		y.Set(i, 0, 3.0*x+2.0)
	}
	return X, y
}

// TestLinearRegression_OneStepGolden checks a single gradient step from zero
// initialization against hand-computed values.
func TestLinearRegression_OneStepGolden(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	lr := NewLinearRegression(WithMaxIter(1), WithLearningRate(0.1))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// From w=0, b=0: residual = -y, so
	//   loss      = 0.5 * mean(y²)            = 15
	//   w step    = 0.1/4 * Xᵗy               = 1.5
	//   b step    = 0.1 * mean(y)             = 0.5
	const tol = 1e-9
	trace := lr.LossCurve()
	if len(trace) != 1 {
		t.Fatalf("expected 1 loss entry, got %d", len(trace))
	}
	if math.Abs(trace[0]-15.0) > tol {
		t.Errorf("initial loss = %v, want 15", trace[0])
	}
	if math.Abs(lr.Coef()[0]-1.5) > tol {
		t.Errorf("weight after one step = %v, want 1.5", lr.Coef()[0])
	}
	if math.Abs(lr.Intercept()-0.5) > tol {
		t.Errorf("intercept after one step = %v, want 0.5", lr.Intercept())
	}
}

// TestLinearRegression_ZeroIterations verifies that a zero iteration budget
// commits the zero-initialized parameters and an empty loss trace.
func TestLinearRegression_ZeroIterations(t *testing.T) {
	X, y := lineData(10)

	lr := NewLinearRegression(WithMaxIter(0), WithLearningRate(0.1))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if !lr.IsFitted() {
		t.Error("model should be fitted after a zero-iteration Fit")
	}
	if len(lr.LossCurve()) != 0 {
		t.Errorf("expected empty loss trace, got %d entries", len(lr.LossCurve()))
	}
	if lr.Coef()[0] != 0 || lr.Intercept() != 0 {
		t.Errorf("parameters must stay at zero, got w=%v b=%v", lr.Coef(), lr.Intercept())
	}

	predictions, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if predictions.At(i, 0) != 0 {
			t.Errorf("zero model must predict 0, got %v at row %d", predictions.At(i, 0), i)
		}
	}
}

// TestLinearRegression_Recovery trains on noise-free data and checks that the
// true parameters are recovered.
func TestLinearRegression_Recovery(t *testing.T) {
	X, y := lineData(50)

	lr := NewLinearRegression(WithMaxIter(2000), WithLearningRate(0.1))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if math.Abs(lr.Coef()[0]-3.0) > 0.1 {
		t.Errorf("recovered weight = %v, want 3 ± 0.1", lr.Coef()[0])
	}
	if math.Abs(lr.Intercept()-2.0) > 0.1 {
		t.Errorf("recovered intercept = %v, want 2 ± 0.1", lr.Intercept())
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score < 0.999 {
		t.Errorf("R² = %v, want > 0.999 on noise-free data", score)
	}
}

// TestLinearRegression_MonotonicLoss checks that the loss trace is
// non-increasing for a convergent learning rate.
func TestLinearRegression_MonotonicLoss(t *testing.T) {
	X, y := lineData(50)

	lr := NewLinearRegression(WithMaxIter(500), WithLearningRate(0.05))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	trace := lr.LossCurve()
	if len(trace) != 500 {
		t.Fatalf("expected 500 loss entries, got %d", len(trace))
	}
	for i := 1; i < len(trace); i++ {
		if trace[i] > trace[i-1]+1e-12 {
			t.Fatalf("loss increased at iteration %d: %v -> %v", i, trace[i-1], trace[i])
		}
	}
	if trace[len(trace)-1] >= trace[0] {
		t.Errorf("loss made no progress: first=%v last=%v", trace[0], trace[len(trace)-1])
	}
}

// TestLinearRegression_Determinism verifies bit-identical parameter
// trajectories for identical inputs.
func TestLinearRegression_Determinism(t *testing.T) {
	X, y := lineData(30)

	a := NewLinearRegression(WithMaxIter(300), WithLearningRate(0.05))
	b := NewLinearRegression(WithMaxIter(300), WithLearningRate(0.05))
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("first Fit failed: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("second Fit failed: %v", err)
	}

	if a.Coef()[0] != b.Coef()[0] || a.Intercept() != b.Intercept() {
		t.Errorf("parameter mismatch: (%v, %v) vs (%v, %v)",
			a.Coef()[0], a.Intercept(), b.Coef()[0], b.Intercept())
	}

	ta, tb := a.LossCurve(), b.LossCurve()
	for i := range ta {
		if ta[i] != tb[i] {
			t.Fatalf("loss trace diverged at iteration %d: %v vs %v", i, ta[i], tb[i])
		}
	}
}

// TestLinearRegression_PredictShape checks that Predict preserves the row count.
func TestLinearRegression_PredictShape(t *testing.T) {
	X, y := lineData(20)
	lr := NewLinearRegression(WithMaxIter(10), WithLearningRate(0.05))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for _, m := range []int{1, 5, 17} {
		XTest := mat.NewDense(m, 1, nil)
		for i := 0; i < m; i++ {
			XTest.Set(i, 0, float64(i))
		}
		predictions, err := lr.Predict(XTest)
		if err != nil {
			t.Fatalf("Predict failed for m=%d: %v", m, err)
		}
		rows, cols := predictions.Dims()
		if rows != m || cols != 1 {
			t.Errorf("Predict shape = (%d, %d), want (%d, 1)", rows, cols, m)
		}
	}
}

// TestLinearRegression_MultiFeature trains with two features.
func TestLinearRegression_MultiFeature(t *testing.T) {
	n := 40
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0 := -1.0 + 2.0*float64(i)/float64(n-1)
		x1 := math.Sin(float64(i))
		X.Set(i, 0, x0)
		X.Set(i, 1, x1)
		y.Set(i, 0, 2.0*x0-1.5*x1+0.5)
	}

	lr := NewLinearRegression(WithMaxIter(3000), WithLearningRate(0.1))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coef := lr.Coef()
	if math.Abs(coef[0]-2.0) > 0.1 || math.Abs(coef[1]+1.5) > 0.1 {
		t.Errorf("recovered weights = %v, want [2, -1.5] ± 0.1", coef)
	}
	if math.Abs(lr.Intercept()-0.5) > 0.1 {
		t.Errorf("recovered intercept = %v, want 0.5 ± 0.1", lr.Intercept())
	}
}

func TestLinearRegression_InvalidHyperparams(t *testing.T) {
	X, y := lineData(10)

	tests := []struct {
		name string
		lr   *LinearRegression
	}{
		{name: "negative max_iter", lr: NewLinearRegression(WithMaxIter(-1))},
		{name: "zero learning rate", lr: NewLinearRegression(WithLearningRate(0))},
		{name: "negative learning rate", lr: NewLinearRegression(WithLearningRate(-0.5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lr.Fit(X, y)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
			if tt.lr.IsFitted() {
				t.Error("model must not be fitted after a failed Fit")
			}
		})
	}
}

func TestLinearRegression_ShapeErrors(t *testing.T) {
	lr := NewLinearRegression(WithMaxIter(10), WithLearningRate(0.1))

	// Row mismatch between X and y.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	yShort := mat.NewDense(3, 1, []float64{1, 2, 3})
	err := lr.Fit(X, yShort)
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("expected DimensionError for row mismatch, got %v", err)
	}

	// y must be a column vector.
	yWide := mat.NewDense(4, 2, nil)
	if err := lr.Fit(X, yWide); err == nil {
		t.Error("expected error for non-column y")
	}

	// Feature count mismatch at predict time.
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	XWide := mat.NewDense(4, 2, nil)
	if _, err := lr.Predict(XWide); !errors.As(err, &de) {
		t.Errorf("expected DimensionError for feature mismatch, got %v", err)
	}
}

func TestLinearRegression_PredictBeforeFit(t *testing.T) {
	lr := NewLinearRegression()
	X := mat.NewDense(2, 1, []float64{1, 2})

	_, err := lr.Predict(X)
	var nfe *errors.NotFittedError
	if !errors.As(err, &nfe) {
		t.Errorf("expected NotFittedError, got %v", err)
	}

	if _, err := lr.Score(X, X); err == nil {
		t.Error("expected error scoring an unfitted model")
	}
}

// TestLinearRegression_FailedRefitKeepsState verifies that a rejected Fit on
// an already-trained model does not corrupt the previous parameters.
func TestLinearRegression_FailedRefitKeepsState(t *testing.T) {
	X, y := lineData(20)
	lr := NewLinearRegression(WithMaxIter(500), WithLearningRate(0.1))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	coefBefore := lr.Coef()[0]

	yBad := mat.NewDense(3, 1, nil)
	if err := lr.Fit(X, yBad); err == nil {
		t.Fatal("expected error for mismatched refit")
	}

	if !lr.IsFitted() {
		t.Error("model must stay fitted after a rejected refit")
	}
	if lr.Coef()[0] != coefBefore {
		t.Errorf("parameters changed by failed refit: %v vs %v", lr.Coef()[0], coefBefore)
	}
}

func TestLinearRegression_WeightsRoundTrip(t *testing.T) {
	X, y := lineData(20)
	lr := NewLinearRegression(WithMaxIter(500), WithLearningRate(0.1))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	weights, err := lr.ExportWeights()
	if err != nil {
		t.Fatalf("ExportWeights failed: %v", err)
	}

	restored := NewLinearRegression()
	if err := restored.ImportWeights(weights); err != nil {
		t.Fatalf("ImportWeights failed: %v", err)
	}

	p1, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Predict on original failed: %v", err)
	}
	p2, err := restored.Predict(X)
	if err != nil {
		t.Fatalf("Predict on restored failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		if p1.At(i, 0) != p2.At(i, 0) {
			t.Fatalf("prediction mismatch at row %d: %v vs %v", i, p1.At(i, 0), p2.At(i, 0))
		}
	}
}
