package linear

// RegressionOption configures a LinearRegression.
type RegressionOption func(*LinearRegression)

// WithMaxIter sets the number of gradient-descent iterations.
// The trainer always runs exactly this many passes; zero is allowed and
// leaves the parameters at their zero initialization.
func WithMaxIter(maxIter int) RegressionOption {
	return func(lr *LinearRegression) {
		lr.maxIter = maxIter
	}
}

// WithLearningRate sets the gradient-descent step size. Must be positive.
func WithLearningRate(rate float64) RegressionOption {
	return func(lr *LinearRegression) {
		lr.learningRate = rate
	}
}

// LogisticOption configures a LogisticRegression.
type LogisticOption func(*LogisticRegression)

// WithLogisticMaxIter sets the number of gradient-descent iterations.
func WithLogisticMaxIter(maxIter int) LogisticOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithLogisticLearningRate sets the gradient-descent step size. Must be positive.
func WithLogisticLearningRate(rate float64) LogisticOption {
	return func(lr *LogisticRegression) {
		lr.learningRate = rate
	}
}
