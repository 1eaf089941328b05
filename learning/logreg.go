package learning

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"
	"io"
)

// LogisticRegression is an unregularised logistic regression with no intercept, fit by L-BFGS. Any bias must be
// supplied by the feature builder as a constant feature.
type LogisticRegression struct {
	linear
	MaxIterations int
	Tolerance     float64
}

// NewLogisticRegression creates an untrained model.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// Train minimises the mean logistic loss over the dataset.
func (m *LogisticRegression) Train(inputs [][]float64, labels []float64) error {
	dim, err := checkTrainingSet(inputs, labels)
	if err != nil {
		return err
	}
	if dim == 0 {
		return m.fitted([]float64{})
	}

	all := make([]int, len(inputs))
	for i := range all {
		all[i] = i
	}
	problem := optimize.Problem{
		Func: func(w []float64) float64 {
			return logLoss(w, inputs, labels)
		},
		Grad: func(grad, w []float64) {
			logLossGrad(grad, w, inputs, labels, all)
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   m.MaxIterations,
		GradientThreshold: m.Tolerance,
	}
	result, err := optimize.Minimize(problem, make([]float64, dim), settings, &optimize.LBFGS{})
	if err != nil {
		return errors.Wrapf(TrainingError, "optimiser: %v", err)
	}
	switch result.Status {
	case optimize.GradientThreshold, optimize.FunctionConvergence:
	default:
		return errors.Wrapf(TrainingError, "did not converge after %d iterations: %v", result.Stats.MajorIterations, result.Status)
	}
	return m.fitted(result.X)
}

func (m *LogisticRegression) Save(w io.Writer) error {
	return encodeModel(w, modelState{
		Backend:       LogisticRegressionBackend,
		ID:            m.ID,
		Trained:       m.Trained,
		Weights:       m.Weights,
		MaxIterations: m.MaxIterations,
		Tolerance:     m.Tolerance,
	})
}
