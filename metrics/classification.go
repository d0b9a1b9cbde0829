package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/mlprimer/mlprimer/pkg/errors"
)

// logLossEps keeps predicted probabilities away from 0 and 1 inside the log.
const logLossEps = 1e-15

// Accuracy computes the fraction of exact label matches.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("Accuracy", "nil vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError computes 1 - Accuracy.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	accuracy, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - accuracy, nil
}

// BinaryLogLoss computes the mean negative log-likelihood of binary labels
// under predicted probabilities. Probabilities are clipped away from 0 and 1
// so the result is always finite.
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("BinaryLogLoss", "nil vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("BinaryLogLoss", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("BinaryLogLoss", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		yi := yTrue.AtVec(i)
		if yi != 0 && yi != 1 {
			return 0, errors.NewValueError("BinaryLogLoss", "labels must be 0 or 1")
		}
		p := errors.ClipValue(yPred.AtVec(i), logLossEps, 1-logLossEps)
		sum += yi*math.Log(p) + (1-yi)*math.Log(1-p)
	}
	return -sum / float64(n), nil
}

// AUC computes the area under the ROC curve by the rank statistic, averaging
// ranks across tied scores. When only one class is present the value is
// undefined and 0.5 is returned.
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	if yTrue == nil || yScore == nil {
		return 0, errors.NewValueError("AUC", "nil vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("AUC", "empty vector")
	}
	if yScore.Len() != n {
		return 0, errors.NewDimensionError("AUC", n, yScore.Len(), 0)
	}

	nPos := 0
	for i := 0; i < n; i++ {
		v := yTrue.AtVec(i)
		if v != 0 && v != 1 {
			return 0, errors.NewValueError("AUC", "labels must be 0 or 1")
		}
		if v == 1 {
			nPos++
		}
	}
	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		return 0.5, nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return yScore.AtVec(idx[a]) < yScore.AtVec(idx[b])
	})

	// Sum the 1-based ranks of positive samples, giving tied scores the
	// average of their rank range.
	var rankSumPos float64
	for i := 0; i < n; {
		j := i
		for j < n && yScore.AtVec(idx[j]) == yScore.AtVec(idx[i]) {
			j++
		}
		avgRank := float64(i+j+1) / 2.0
		for k := i; k < j; k++ {
			if yTrue.AtVec(idx[k]) == 1 {
				rankSumPos += avgRank
			}
		}
		i = j
	}

	return (rankSumPos - float64(nPos)*float64(nPos+1)/2.0) /
		(float64(nPos) * float64(nNeg)), nil
}

// AUCMatrix computes AUC for column-vector matrix inputs; only the first
// column of each matrix is used.
func AUCMatrix(yTrue, yScore mat.Matrix) (float64, error) {
	yTrueVec, yScoreVec, err := columnVectors("AUCMatrix", yTrue, yScore)
	if err != nil {
		return 0, err
	}
	return AUC(yTrueVec, yScoreVec)
}
