package log

// Standard attribute keys for model and operation context. Using these keys
// consistently keeps training logs filterable across estimators.
const (
	// ModelNameKey identifies the estimator type, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "ml.component"

	// OperationKey names the operation: "fit", "predict", "transform", "score".
	OperationKey = "ml.operation"
)

// Data shape attributes.
const (
	// SamplesKey is the number of rows in the dataset being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in the dataset being processed.
	FeaturesKey = "data.features"
)

// Training attributes.
const (
	// IterationKey is the iteration count of an iterative optimizer.
	IterationKey = "training.iteration"

	// LossKey is the objective value at a given point in training.
	LossKey = "metrics.loss"

	// LearningRateKey is the gradient-descent step size.
	LearningRateKey = "hyperparams.learning_rate"

	// MaxIterKey is the configured iteration budget.
	MaxIterKey = "hyperparams.max_iter"

	// DurationMsKey is the wall-clock duration of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Standard operation values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
)
