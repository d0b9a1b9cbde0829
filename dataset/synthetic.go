// Package dataset generates synthetic datasets for examples and tests.
// All generators take an explicit seed, so results are reproducible.
package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/mlprimer/mlprimer/pkg/errors"
)

// MakeRegression generates a random linear regression problem
// y = Xw + b + noise with Gaussian features and noise. It returns the data
// along with the true weights and bias used to generate it.
func MakeRegression(nSamples, nFeatures int, noise float64, seed uint64) (X, y *mat.Dense, coef []float64, bias float64, err error) {
	if nSamples <= 0 || nFeatures <= 0 {
		return nil, nil, nil, 0, errors.NewValueError("MakeRegression", "nSamples and nFeatures must be positive")
	}
	if noise < 0 {
		return nil, nil, nil, 0, errors.NewValueError("MakeRegression", "noise must not be negative")
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	coef = make([]float64, nFeatures)
	for j := range coef {
		coef[j] = rng.NormFloat64() * 2.0
	}
	bias = rng.NormFloat64()

	X = mat.NewDense(nSamples, nFeatures, nil)
	y = mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		sum := bias
		for j := 0; j < nFeatures; j++ {
			v := rng.NormFloat64()
			X.Set(i, j, v)
			sum += v * coef[j]
		}
		y.Set(i, 0, sum+rng.NormFloat64()*noise)
	}
	return X, y, coef, bias, nil
}

// MakeClassification generates a binary classification problem as two
// Gaussian clusters centered at -sep and +sep on every feature. Labels are
// 0 for the first cluster and 1 for the second, interleaved row by row.
func MakeClassification(nSamples, nFeatures int, sep float64, seed uint64) (X, y *mat.Dense, err error) {
	if nSamples <= 0 || nFeatures <= 0 {
		return nil, nil, errors.NewValueError("MakeClassification", "nSamples and nFeatures must be positive")
	}
	if sep <= 0 {
		return nil, nil, errors.NewValueError("MakeClassification", "sep must be positive")
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	X = mat.NewDense(nSamples, nFeatures, nil)
	y = mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		center := -sep
		label := 0.0
		if i%2 == 1 {
			center = sep
			label = 1.0
		}
		for j := 0; j < nFeatures; j++ {
			X.Set(i, j, center+rng.NormFloat64())
		}
		y.Set(i, 0, label)
	}
	return X, y, nil
}

// TrainTestSplit shuffles the rows of X and y together and splits them into
// train and test partitions. testSize is the fraction of rows assigned to the
// test partition and must be in (0, 1).
func TrainTestSplit(X, y mat.Matrix, testSize float64, seed uint64) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	if X == nil || y == nil {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "nil matrix")
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "testSize must be in (0, 1)")
	}

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows != yRows {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", rows, yRows, 0)
	}

	nTest := int(float64(rows) * testSize)
	if nTest == 0 || nTest == rows {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "split leaves an empty partition")
	}
	nTrain := rows - nTest

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(rows)

	XTrain = mat.NewDense(nTrain, cols, nil)
	yTrain = mat.NewDense(nTrain, yCols, nil)
	XTest = mat.NewDense(nTest, cols, nil)
	yTest = mat.NewDense(nTest, yCols, nil)

	for k, src := range perm {
		var dstX, dstY *mat.Dense
		dst := k
		if k < nTrain {
			dstX, dstY = XTrain, yTrain
		} else {
			dstX, dstY = XTest, yTest
			dst = k - nTrain
		}
		for j := 0; j < cols; j++ {
			dstX.Set(dst, j, X.At(src, j))
		}
		for j := 0; j < yCols; j++ {
			dstY.Set(dst, j, y.At(src, j))
		}
	}
	return XTrain, XTest, yTrain, yTest, nil
}
