package linear

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mlprimer/mlprimer/core/model"
	"github.com/mlprimer/mlprimer/pkg/errors"
	"github.com/mlprimer/mlprimer/pkg/log"
)

const logisticVersion = "1.0.0"

// probEps keeps predicted probabilities away from 0 and 1 inside the
// log-likelihood so the loss trace stays finite when the sigmoid saturates.
// Gradients and predictions use the unclipped probabilities.
const probEps = 1e-15

var (
	_ model.Classifier   = (*LogisticRegression)(nil)
	_ model.LossRecorder = (*LogisticRegression)(nil)
	_ model.LinearModel  = (*LogisticRegression)(nil)
)

// LogisticRegression fits a binary classifier through the logistic link by
// minimizing the mean negative log-likelihood with batch gradient descent.
// Labels must be exactly 0 or 1.
type LogisticRegression struct {
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

// NewLogisticRegression creates a logistic regression trainer.
// Defaults: 1000 iterations, learning rate 0.01.
func NewLogisticRegression(opts ...LogisticOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		maxIter:      1000,
		learningRate: 0.01,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// sigmoid computes 1/(1+e^(-z)). This form is required: it cannot overflow
// for large positive z, unlike e^z/(1+e^z).
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func (lr *LogisticRegression) validateHyperparams() error {
	if lr.maxIter < 0 {
		return errors.NewValidationError("max_iter", "must not be negative", lr.maxIter)
	}
	if lr.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", lr.learningRate)
	}
	return nil
}

// Fit trains the model on X (m×n) and binary labels y (m×1, values 0 or 1).
// Parameters are zero-initialized and updated for exactly maxIter iterations;
// the loss trace records the mean negative log-likelihood before each update.
// The gradient has the same algebraic form as the squared-error gradient
// under this link function.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LogisticRegression.Fit")

	if err := lr.validateHyperparams(); err != nil {
		return err
	}

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != rows {
		return errors.NewDimensionError("LogisticRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}

	yVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v := y.At(i, 0)
		if v != 0 && v != 1 {
			return errors.NewValueError("LogisticRegression.Fit",
				fmt.Sprintf("labels must be 0 or 1, got %g at row %d", v, i))
		}
		yVec.SetVec(i, v)
	}

	log.GetLogger().Debug("training started",
		log.ModelNameKey, "LogisticRegression",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.MaxIterKey, lr.maxIter,
		log.LearningRateKey, lr.learningRate,
	)

	lr.state.BeginFit()

	w := mat.NewVecDense(cols, nil)
	b := 0.0
	resid := mat.NewVecDense(rows, nil)
	grad := mat.NewVecDense(cols, nil)
	trace := make([]float64, 0, lr.maxIter)

	m := float64(rows)
	for iter := 0; iter < lr.maxIter; iter++ {
		// resid = sigmoid(Xw + b) - y, accumulating the clipped log-likelihood
		resid.MulVec(X, w)
		var loss float64
		for i := 0; i < rows; i++ {
			p := sigmoid(resid.AtVec(i) + b)
			yi := yVec.AtVec(i)

			pc := errors.ClipValue(p, probEps, 1-probEps)
			loss += yi*math.Log(pc) + (1-yi)*math.Log(1-pc)

			resid.SetVec(i, p-yi)
		}
		trace = append(trace, -loss/m)

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
			errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter,
				"loss did not decrease; the learning rate may be too large"))
		}
		log.GetLogger().Debug("training finished",
			log.ModelNameKey, "LogisticRegression",
			log.IterationKey, n,
			log.LossKey, final,
		)
	}

	return nil
}

// Predict returns sigmoid(Xw + b) as an m×1 matrix of probabilities in (0,1).
// Callers apply their own decision threshold; see PredictClasses for the
// conventional 0.5 cut.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if lr.state.State() != model.Fitted {
		return nil, errors.NewNotFittedError("LogisticRegression", "Predict")
	}

	rows, cols := X.Dims()
	if cols != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.Predict", lr.nFeatures_, cols, 1)
	}

	probabilities := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		z := lr.intercept_
		for j := 0; j < cols; j++ {
			z += X.At(i, j) * lr.coef_[j]
		}
		probabilities.Set(i, 0, sigmoid(z))
	}
	return probabilities, nil
}

// PredictClasses returns 0/1 labels by thresholding Predict at 0.5.
func (lr *LogisticRegression) PredictClasses(X mat.Matrix) (mat.Matrix, error) {
	probabilities, err := lr.Predict(X)
	if err != nil {
		return nil, err
	}

	rows, _ := probabilities.Dims()
	classes := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		if probabilities.At(i, 0) >= 0.5 {
			classes.Set(i, 0, 1)
		}
	}
	return classes, nil
}

// LossCurve returns a copy of the per-iteration loss trace of the last Fit.
// Nil before the first successful Fit.
func (lr *LogisticRegression) LossCurve() []float64 {
	if lr.lossCurve_ == nil {
		return nil
	}
	trace := make([]float64, len(lr.lossCurve_))
	copy(trace, lr.lossCurve_)
	return trace
}

// Coef returns a copy of the learned weight vector.
func (lr *LogisticRegression) Coef() []float64 {
	if lr.coef_ == nil {
		return nil
	}
	coef := make([]float64, len(lr.coef_))
	copy(coef, lr.coef_)
	return coef
}

// Intercept returns the learned bias term.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept_
}

// Score returns the accuracy at the 0.5 threshold on the given data.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	classes, err := lr.PredictClasses(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	pRows, _ := classes.Dims()
	if rows != pRows {
		return 0, errors.NewDimensionError("LogisticRegression.Score", pRows, rows, 0)
	}

	correct := 0
	for i := 0; i < rows; i++ {
		if classes.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(rows), nil
}

// GetParams returns the model's hyperparameters.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"max_iter":      lr.maxIter,
		"learning_rate": lr.learningRate,
	}
}

// ExportWeights returns a portable snapshot of the trained parameters.
func (lr *LogisticRegression) ExportWeights() (*model.ModelWeights, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "ExportWeights")
	}

	return &model.ModelWeights{
		ModelType:       "LogisticRegression",
		Version:         logisticVersion,
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
func (lr *LogisticRegression) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("LogisticRegression.ImportWeights", "weights must not be nil")
	}
	if weights.ModelType != "LogisticRegression" {
		return errors.NewValueError("LogisticRegression.ImportWeights",
			fmt.Sprintf("model type mismatch: expected LogisticRegression, got %s", weights.ModelType))
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
func (lr *LogisticRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// String returns a short description of the model.
func (lr *LogisticRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LogisticRegression(max_iter=%d, learning_rate=%g)", lr.maxIter, lr.learningRate)
	}
	return fmt.Sprintf("LogisticRegression(max_iter=%d, learning_rate=%g, n_features=%d, fitted=true)",
		lr.maxIter, lr.learningRate, lr.nFeatures_)
}
