package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for trainable estimators.
type Fitter interface {
	// Fit trains the estimator on the design matrix X and target y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for estimators that produce predictions.
type Predictor interface {
	// Predict returns predictions for each row of X as an m×1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for estimators that can evaluate themselves.
type Scorer interface {
	// Score returns a model-appropriate metric: R² for regressors,
	// accuracy for classifiers.
	Score(X, y mat.Matrix) (float64, error)
}

// LossRecorder is the interface for iterative trainers that record the
// objective value once per training iteration.
type LossRecorder interface {
	// LossCurve returns the per-iteration loss trace of the last Fit call,
	// in iteration order. Nil before the first successful Fit.
	LossCurve() []float64
}

// LinearModel is the interface for models parameterized by a weight vector
// and a scalar bias.
type LinearModel interface {
	// Coef returns a copy of the learned weight vector.
	Coef() []float64
	// Intercept returns the learned bias term.
	Intercept() float64
}

// Transformer is the interface for stateful feature transformations that
// learn statistics from training data and apply them to new data.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error
	// Transform applies the learned transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)
	// FitTransform fits the transformer and transforms X in one call.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
	// InverseTransform reverses the transformation.
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// Regressor combines the interfaces a regression estimator satisfies.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// Classifier combines the interfaces a classification estimator satisfies.
type Classifier interface {
	Fitter
	Predictor
	Scorer
}
