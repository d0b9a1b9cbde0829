// Package mlprimer provides small, transparent machine learning models for
// Go, built around batch gradient descent.
//
// The library favors predictable, inspectable training over raw speed: every
// model records its full per-iteration loss trace, runs deterministically for
// identical inputs, and exposes its learned parameters directly.
//
// # Quick Start
//
// Training a linear regression model:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/mlprimer/mlprimer/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
//
//	    model := linear.NewLinearRegression(
//	        linear.WithMaxIter(1000),
//	        linear.WithLearningRate(0.1),
//	    )
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := model.Predict(mat.NewDense(2, 1, []float64{5, 6}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("predictions:", mat.Formatted(predictions))
//	    fmt.Println("final loss:", model.LossCurve()[999])
//	}
//
// # Packages
//
//   - linear: LinearRegression and LogisticRegression trained by batch
//     gradient descent
//   - preprocessing: StandardScaler for feature standardization
//   - metrics: regression and binary classification metrics
//   - dataset: seeded synthetic dataset generators and train/test splitting
//   - visualize: loss curve rendering to image files
//   - core/model: estimator lifecycle and weight snapshots
//   - pkg/errors: the error taxonomy shared by all packages
//   - pkg/log: structured logging used during training
package mlprimer
