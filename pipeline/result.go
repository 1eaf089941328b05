package pipeline

// ResultType is the type of result being returned through a pipeline channel.
type ResultType uint8

const (
	// Accuracy is the accuracy of a model on one split.
	Accuracy ResultType = iota
	// Evaluation is a set of named evaluation measures on one split.
	Evaluation
	// Model indicates a trained model was saved.
	Model
	// Error indicates an error was raised.
	Error
)

// Result is the output of a buzzer pipeline.
type Result struct {
	Type  ResultType
	Stage Stage

	// Split is the name of the dataset an Accuracy or Evaluation result was computed on.
	Split       string
	Accuracy    float64
	Evaluations map[string]float64

	// ModelID and Path describe a saved model.
	ModelID string
	Path    string

	Error error
}
