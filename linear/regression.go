// Package linear implements linear models trained by batch gradient descent.
//
// Both estimators share the same optimization loop: parameters start at zero,
// every iteration computes the gradient over the full training set, and the
// objective value is recorded once per iteration into a loss trace. There is
// no early stopping; the loop always runs the configured iteration budget.
package linear

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mlprimer/mlprimer/core/model"
	"github.com/mlprimer/mlprimer/pkg/errors"
	"github.com/mlprimer/mlprimer/pkg/log"
)

const regressionVersion = "1.0.0"

var (
	_ model.Regressor    = (*LinearRegression)(nil)
	_ model.LossRecorder = (*LinearRegression)(nil)
	_ model.LinearModel  = (*LinearRegression)(nil)
)

// LinearRegression fits y = Xw + b by minimizing half the mean squared error
// with batch gradient descent.
type LinearRegression struct {
	state *model.StateManager

	// Hyperparameters, fixed for the lifetime of the instance.
	maxIter      int
	learningRate float64

	// Learned parameters.
	coef_      []float64
	intercept_ float64
	lossCurve_ []float64

	nFeatures_ int
	nSamples_  int
}

// NewLinearRegression creates a linear regression trainer.
// Defaults: 1000 iterations, learning rate 0.01.
func NewLinearRegression(opts ...RegressionOption) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		maxIter:      1000,
		learningRate: 0.01,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

func (lr *LinearRegression) validateHyperparams() error {
	if lr.maxIter < 0 {
		return errors.NewValidationError("max_iter", "must not be negative", lr.maxIter)
	}
	if lr.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", lr.learningRate)
	}
	return nil
}

// Fit trains the model on X (m×n) and y (m×1). Parameters are zero-initialized
// and updated in place for exactly maxIter iterations; the loss trace records
// half the mean squared error before each update. A failed Fit never corrupts
// the parameters of a previously fitted model.
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	if err := lr.validateHyperparams(); err != nil {
		return err
	}

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != rows {
		return errors.NewDimensionError("LinearRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	log.GetLogger().Debug("training started",
		log.ModelNameKey, "LinearRegression",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.MaxIterKey, lr.maxIter,
		log.LearningRateKey, lr.learningRate,
	)

	lr.state.BeginFit()

	yVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	w := mat.NewVecDense(cols, nil)
	b := 0.0
	resid := mat.NewVecDense(rows, nil)
	grad := mat.NewVecDense(cols, nil)
	trace := make([]float64, 0, lr.maxIter)

	m := float64(rows)
	for iter := 0; iter < lr.maxIter; iter++ {
		// resid = Xw + b - y
		resid.MulVec(X, w)
		var loss float64
		for i := 0; i < rows; i++ {
			r := resid.AtVec(i) + b - yVec.AtVec(i)
			resid.SetVec(i, r)
			loss += r * r
		}
		trace = append(trace, 0.5*loss/m)

		grad.MulVec(X.T(), resid)
		w.AddScaledVec(w, -lr.learningRate/m, grad)
		b -= lr.learningRate * floats.Sum(resid.RawVector().Data) / m
	}

	lr.coef_ = make([]float64, cols)
	copy(lr.coef_, w.RawVector().Data)
	lr.intercept_ = b
	lr.lossCurve_ = trace
	lr.nFeatures_ = cols
	lr.nSamples_ = rows

	lr.state.SetFitted()
	lr.state.SetDimensions(cols, rows)

	if n := len(trace); n > 0 {
		final := trace[n-1]
		if math.IsNaN(final) || math.IsInf(final, 0) || final > trace[0] {
			errors.Warn(errors.NewConvergenceWarning("LinearRegression", lr.maxIter,
				"loss did not decrease; the learning rate may be too large"))
		}
		log.GetLogger().Debug("training finished",
			log.ModelNameKey, "LinearRegression",
			log.IterationKey, n,
			log.LossKey, final,
		)
	}

	return nil
}

// Predict returns ŷ = Xw + b as an m×1 matrix. X must have the same number
// of columns as the training data.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if lr.state.State() != model.Fitted {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	rows, cols := X.Dims()
	if cols != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures_, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := lr.intercept_
		for j := 0; j < cols; j++ {
			pred += X.At(i, j) * lr.coef_[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// LossCurve returns a copy of the per-iteration loss trace of the last Fit.
// Nil before the first successful Fit.
func (lr *LinearRegression) LossCurve() []float64 {
	if lr.lossCurve_ == nil {
		return nil
	}
	trace := make([]float64, len(lr.lossCurve_))
	copy(trace, lr.lossCurve_)
	return trace
}

// Coef returns a copy of the learned weight vector.
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef_ == nil {
		return nil
	}
	coef := make([]float64, len(lr.coef_))
	copy(coef, lr.coef_)
	return coef
}

// Intercept returns the learned bias term.
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept_
}

// Score returns the coefficient of determination R² on the given data.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	yTrue := make([]float64, rows)
	yPred := make([]float64, rows)
	for i := 0; i < rows; i++ {
		yTrue[i] = y.At(i, 0)
		yPred[i] = predictions.At(i, 0)
	}

	return stat.RSquaredFrom(yPred, yTrue, nil), nil
}

// GetParams returns the model's hyperparameters.
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"max_iter":      lr.maxIter,
		"learning_rate": lr.learningRate,
	}
}

// ExportWeights returns a portable snapshot of the trained parameters.
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "ExportWeights")
	}

	return &model.ModelWeights{
		ModelType:       "LinearRegression",
		Version:         regressionVersion,
		Coefficients:    lr.Coef(),
		Intercept:       lr.intercept_,
		IsFitted:        true,
		Hyperparameters: lr.GetParams(),
		Metadata: map[string]interface{}{
			"n_features": lr.nFeatures_,
			"n_samples":  lr.nSamples_,
		},
	}, nil
}

// ImportWeights restores trained parameters from a snapshot.
func (lr *LinearRegression) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("LinearRegression.ImportWeights", "weights must not be nil")
	}
	if weights.ModelType != "LinearRegression" {
		return errors.NewValueError("LinearRegression.ImportWeights",
			fmt.Sprintf("model type mismatch: expected LinearRegression, got %s", weights.ModelType))
	}
	if err := weights.Validate(); err != nil {
		return err
	}

	lr.coef_ = make([]float64, len(weights.Coefficients))
	copy(lr.coef_, weights.Coefficients)
	lr.intercept_ = weights.Intercept
	lr.nFeatures_ = len(weights.Coefficients)

	if v, ok := weights.Metadata["n_samples"].(float64); ok {
		lr.nSamples_ = int(v)
	}

	lr.state.SetFitted()
	lr.state.SetDimensions(lr.nFeatures_, lr.nSamples_)
	return nil
}

// IsFitted reports whether the model has completed a Fit call.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// String returns a short description of the model.
func (lr *LinearRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LinearRegression(max_iter=%d, learning_rate=%g)", lr.maxIter, lr.learningRate)
	}
	return fmt.Sprintf("LinearRegression(max_iter=%d, learning_rate=%g, n_features=%d, fitted=true)",
		lr.maxIter, lr.learningRate, lr.nFeatures_)
}
