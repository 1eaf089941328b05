package learning

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/cheggaaa/pb.v1"
	"io"
	"math/rand"
)

// SGDLogisticRegression fits the same model as LogisticRegression with mini-batch gradient descent, for the
// configured number of passes over the data.
type SGDLogisticRegression struct {
	linear
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         int64
	// Progress, if set, receives a progress bar over epochs.
	Progress io.Writer
}

// NewSGDLogisticRegression creates an untrained model. Non-positive settings fall back to 5 epochs, batches of 10
// and a learning rate of 0.1.
func NewSGDLogisticRegression(epochs, batchSize int, learningRate float64, seed int64) *SGDLogisticRegression {
	if epochs <= 0 {
		epochs = 5
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	if learningRate <= 0 {
		learningRate = 0.1
	}
	return &SGDLogisticRegression{
		Epochs:       epochs,
		BatchSize:    batchSize,
		LearningRate: learningRate,
		Seed:         seed,
	}
}

func (m *SGDLogisticRegression) Train(inputs [][]float64, labels []float64) error {
	dim, err := checkTrainingSet(inputs, labels)
	if err != nil {
		return err
	}
	if m.Epochs <= 0 || m.BatchSize <= 0 || m.LearningRate <= 0 {
		return errors.Wrapf(TrainingError, "invalid hyperparameters (epochs %d, batch %d, learning rate %v)", m.Epochs, m.BatchSize, m.LearningRate)
	}

	var bar *pb.ProgressBar
	if m.Progress != nil {
		bar = pb.New(m.Epochs)
		bar.Output = m.Progress
		bar.Start()
	}

	rng := rand.New(rand.NewSource(m.Seed))
	w := make([]float64, dim)
	grad := make([]float64, dim)
	for epoch := 0; epoch < m.Epochs; epoch++ {
		order := rng.Perm(len(inputs))
		for start := 0; start < len(order); start += m.BatchSize {
			end := start + m.BatchSize
			if end > len(order) {
				end = len(order)
			}
			logLossGrad(grad, w, inputs, labels, order[start:end])
			floats.AddScaled(w, -m.LearningRate, grad)
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return m.fitted(w)
}

func (m *SGDLogisticRegression) Save(w io.Writer) error {
	return encodeModel(w, modelState{
		Backend:      SGDLogisticRegressionBackend,
		ID:           m.ID,
		Trained:      m.Trained,
		Weights:      m.Weights,
		Epochs:       m.Epochs,
		BatchSize:    m.BatchSize,
		LearningRate: m.LearningRate,
		Seed:         m.Seed,
	})
}
