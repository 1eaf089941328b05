package learning

import (
	"encoding/gob"
	"github.com/pkg/errors"
	"io"
	"math"
	"os"
)

const (
	modelFormat  = "buzzer-model"
	modelVersion = 1
)

// modelState is the envelope written by Save. Format and Version identify the encoding so that Load can reject
// bytes it does not understand instead of producing wrong predictions.
type modelState struct {
	Format  string
	Version int
	Backend string
	ID      string

	// Dimension is the length of the feature vectors the model was trained on.
	Dimension int
	Trained   bool
	Weights   []float64

	// LogisticRegression.
	MaxIterations int
	Tolerance     float64

	// SGDLogisticRegression.
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         int64
}

func encodeModel(w io.Writer, state modelState) error {
	state.Format = modelFormat
	state.Version = modelVersion
	state.Dimension = len(state.Weights)
	if err := gob.NewEncoder(w).Encode(state); err != nil {
		return errors.Wrapf(IOError, "encoding model: %v", err)
	}
	return nil
}

// Load reads a model written by Save.
func Load(r io.Reader) (BinaryClassifier, error) {
	var state modelState
	if err := gob.NewDecoder(r).Decode(&state); err != nil {
		return nil, errors.Wrapf(CorruptModelError, "decoding model: %v", err)
	}
	if state.Format != modelFormat {
		return nil, errors.Wrapf(CorruptModelError, "unknown format %q", state.Format)
	}
	if state.Version != modelVersion {
		return nil, errors.Wrapf(CorruptModelError, "unsupported version %d", state.Version)
	}
	if state.Trained {
		if state.Weights == nil {
			// gob omits empty slices; a model trained on zero-dimension vectors has no weights.
			state.Weights = []float64{}
		}
		if len(state.Weights) != state.Dimension {
			return nil, errors.Wrapf(CorruptModelError, "%d weights for dimension %d", len(state.Weights), state.Dimension)
		}
		for i, w := range state.Weights {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, errors.Wrapf(CorruptModelError, "weight %d is %v", i, w)
			}
		}
	}

	l := linear{ID: state.ID, Weights: state.Weights, Trained: state.Trained}
	switch state.Backend {
	case LogisticRegressionBackend:
		return &LogisticRegression{
			linear:        l,
			MaxIterations: state.MaxIterations,
			Tolerance:     state.Tolerance,
		}, nil
	case SGDLogisticRegressionBackend:
		return &SGDLogisticRegression{
			linear:       l,
			Epochs:       state.Epochs,
			BatchSize:    state.BatchSize,
			LearningRate: state.LearningRate,
			Seed:         state.Seed,
		}, nil
	}
	return nil, errors.Wrapf(CorruptModelError, "unknown backend %q", state.Backend)
}

// SaveFile writes the model to path. A partially written file is removed.
func SaveFile(c BinaryClassifier, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(IOError, "%v", err)
	}
	if err := c.Save(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.Wrapf(IOError, "%v", err)
	}
	return nil
}

// LoadFile reads a model from path.
func LoadFile(path string) (BinaryClassifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(IOError, "%v", err)
	}
	defer f.Close()
	return Load(f)
}
