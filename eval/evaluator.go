// Package eval scores buzz decisions against gold labels.
package eval

// Evaluator scores a sequence of 0/1 predictions against gold labels of the same length.
type Evaluator interface {
	Score(predictions, labels []float64) float64
	Name() string
}

// Evaluate scores predictions using the supplied evaluation measures, keyed by measure name.
func Evaluate(evaluators []Evaluator, predictions, labels []float64) map[string]float64 {
	scores := make(map[string]float64, len(evaluators))
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(predictions, labels)
	}
	return scores
}
