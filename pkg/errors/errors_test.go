package errors

import (
	"math"
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "Predict")

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError in chain, got %T", err)
	}
	if nfe.ModelName != "LinearRegression" || nfe.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", nfe)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name     string
		axis     int
		axisName string
	}{
		{name: "row axis", axis: 0, axisName: "rows"},
		{name: "feature axis", axis: 1, axisName: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("Fit", 3, 5, tt.axis)

			var de *DimensionError
			if !As(err, &de) {
				t.Fatalf("expected DimensionError in chain, got %T", err)
			}
			if de.Expected != 3 || de.Got != 5 {
				t.Errorf("unexpected fields: %+v", de)
			}
			if !strings.Contains(err.Error(), tt.axisName) {
				t.Errorf("expected axis name %q in message: %v", tt.axisName, err)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be positive", -0.1)

	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatalf("expected ValidationError in chain, got %T", err)
	}
	if ve.ParamName != "learning_rate" {
		t.Errorf("unexpected param name: %s", ve.ParamName)
	}
	if !strings.Contains(err.Error(), "-0.1") {
		t.Errorf("expected offending value in message: %v", err)
	}
}

func TestModelErrorUnwrap(t *testing.T) {
	err := NewModelError("LinearRegression.Fit", "empty data", ErrEmptyData)
	if !Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData in chain: %v", err)
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewConvergenceWarning("LinearRegression", 100, "loss did not decrease")
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "100 iterations") {
		t.Errorf("unexpected warning message: %v", captured)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("loss", []float64{1.0, 2.0}, 0); err != nil {
		t.Errorf("finite values should pass: %v", err)
	}

	err := CheckNumericalStability("loss", []float64{1.0, math.NaN()}, 3)
	if err == nil {
		t.Fatal("expected error for NaN value")
	}
	var nie *NumericalInstabilityError
	if !As(err, &nie) {
		t.Fatalf("expected NumericalInstabilityError, got %T", err)
	}
	if nie.Iteration != 3 {
		t.Errorf("expected iteration 3, got %d", nie.Iteration)
	}

	if err := CheckScalar("loss", math.Inf(1), 0); err == nil {
		t.Error("expected error for Inf value")
	}
}

func TestClipValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "below range", value: -1.0, want: 0.0},
		{name: "inside range", value: 0.4, want: 0.4},
		{name: "above range", value: 2.0, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClipValue(tt.value, 0.0, 1.0); got != tt.want {
				t.Errorf("ClipValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestStabilizeLog(t *testing.T) {
	if v := StabilizeLog(0); math.IsInf(v, -1) || math.IsNaN(v) {
		t.Errorf("StabilizeLog(0) must be finite, got %v", v)
	}
	if v := StabilizeLog(1.0); v != 0 {
		t.Errorf("StabilizeLog(1) = %v, want 0", v)
	}
}

func TestStabilizeExp(t *testing.T) {
	if v := StabilizeExp(1000); math.IsInf(v, 1) {
		t.Errorf("StabilizeExp(1000) must be finite, got %v", v)
	}
	if v := StabilizeExp(-1000); v != 0 {
		t.Errorf("StabilizeExp(-1000) = %v, want 0", v)
	}
}
