package learning

import (
	"github.com/google/uuid"
	"github.com/hscells/buzzer/eval"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"io"
	"math"
)

// BinaryClassifier is a model that decides, for a feature vector, whether to buzz (1) or not (0). A classifier is
// trained once and is read-only afterwards.
type BinaryClassifier interface {
	// Train fits the model to the dataset.
	Train(inputs [][]float64, labels []float64) error
	// Predict returns a 0/1 label for each input.
	Predict(inputs [][]float64) ([]float64, error)
	// AccuracyScore is the fraction of predictions that match labels.
	AccuracyScore(inputs [][]float64, labels []float64) (float64, error)
	// Save writes the full state of the model.
	Save(w io.Writer) error
}

// Hyperparameters configures the training of a backend. Epochs, BatchSize and LearningRate are only consumed by
// the gradient descent backend.
type Hyperparameters struct {
	Epochs        int
	BatchSize     int
	LearningRate  float64
	Seed          int64
	MaxIterations int
	Tolerance     float64
}

// Backend names understood by NewBackend and stored in saved models.
const (
	LogisticRegressionBackend    = "logreg"
	SGDLogisticRegressionBackend = "sgd"
)

// NewBackend creates an untrained classifier by name.
func NewBackend(name string, h Hyperparameters) (BinaryClassifier, error) {
	switch name {
	case LogisticRegressionBackend, "":
		m := NewLogisticRegression()
		if h.MaxIterations > 0 {
			m.MaxIterations = h.MaxIterations
		}
		if h.Tolerance > 0 {
			m.Tolerance = h.Tolerance
		}
		return m, nil
	case SGDLogisticRegressionBackend:
		return NewSGDLogisticRegression(h.Epochs, h.BatchSize, h.LearningRate, h.Seed), nil
	}
	return nil, errors.Errorf("unknown classifier backend %q", name)
}

// linear is the decision function shared by the logistic backends: buzz when w·x > 0. There is no intercept.
type linear struct {
	ID      string
	Weights []float64
	Trained bool
}

func (l *linear) fitted(w []float64) error {
	for _, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrap(TrainingError, "weights diverged")
		}
	}
	l.Weights = w
	l.Trained = true
	l.ID = uuid.New().String()
	return nil
}

// Identifier is the unique id assigned to the model when it was trained.
func (l *linear) Identifier() string {
	return l.ID
}

func (l *linear) Predict(inputs [][]float64) ([]float64, error) {
	if !l.Trained {
		return nil, NotTrainedError
	}
	predictions := make([]float64, len(inputs))
	for i, x := range inputs {
		if len(x) != len(l.Weights) {
			return nil, errors.Wrapf(ShapeMismatchError, "input %d has dimension %d, model has %d", i, len(x), len(l.Weights))
		}
		if floats.Dot(l.Weights, x) > 0 {
			predictions[i] = 1
		}
	}
	return predictions, nil
}

func (l *linear) AccuracyScore(inputs [][]float64, labels []float64) (float64, error) {
	if len(inputs) != len(labels) {
		return 0, errors.Wrapf(ShapeMismatchError, "%d inputs but %d labels", len(inputs), len(labels))
	}
	predictions, err := l.Predict(inputs)
	if err != nil {
		return 0, err
	}
	return eval.Accuracy.Score(predictions, labels), nil
}

// checkTrainingSet validates the preconditions of training and returns the dimension of the inputs.
func checkTrainingSet(inputs [][]float64, labels []float64) (int, error) {
	if len(inputs) != len(labels) {
		return 0, errors.Wrapf(ShapeMismatchError, "%d inputs but %d labels", len(inputs), len(labels))
	}
	if len(inputs) == 0 {
		return 0, errors.Wrap(TrainingError, "empty dataset")
	}
	dim := len(inputs[0])
	for i, x := range inputs {
		if len(x) != dim {
			return 0, errors.Wrapf(ShapeMismatchError, "input %d has dimension %d, expected %d", i, len(x), dim)
		}
	}
	var pos, neg int
	for i, y := range labels {
		switch y {
		case 0:
			neg++
		case 1:
			pos++
		default:
			return 0, errors.Wrapf(TrainingError, "label %d is %v, labels must be 0 or 1", i, y)
		}
	}
	if pos == 0 || neg == 0 {
		return 0, errors.Wrapf(TrainingError, "labels contain a single class (%d positive, %d negative)", pos, neg)
	}
	return dim, nil
}

// softplus is log(1 + e^z) without overflow.
func softplus(z float64) float64 {
	return math.Max(z, 0) + math.Log1p(math.Exp(-math.Abs(z)))
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logLoss is the mean negative log-likelihood of the labels under weights w.
func logLoss(w []float64, inputs [][]float64, labels []float64) float64 {
	var loss float64
	for i, x := range inputs {
		z := floats.Dot(w, x)
		loss += softplus(z) - labels[i]*z
	}
	return loss / float64(len(inputs))
}

// logLossGrad writes the gradient of logLoss over the examples in idx into grad.
func logLossGrad(grad, w []float64, inputs [][]float64, labels []float64, idx []int) {
	for j := range grad {
		grad[j] = 0
	}
	for _, i := range idx {
		floats.AddScaled(grad, sigmoid(floats.Dot(w, inputs[i]))-labels[i], inputs[i])
	}
	if len(idx) > 0 {
		floats.Scale(1/float64(len(idx)), grad)
	}
}
