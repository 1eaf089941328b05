package eval

import (
	"fmt"
	"gonum.org/v1/gonum/stat"
	"math"
)

type accuracy struct{}
type precisionEvaluator struct{}
type recallEvaluator struct{}
type numBuzz struct{}
type numCorrectBuzz struct{}

// FMeasure computes f-measure, with the beta parameter controlling the precision and recall trade-off.
type FMeasure struct {
	beta float64
}

var (
	// Accuracy is the fraction of predictions equal to the label.
	Accuracy = accuracy{}
	// PrecisionEvaluator is the fraction of buzzes that were correct.
	PrecisionEvaluator = precisionEvaluator{}
	// RecallEvaluator is the fraction of buzzable decision points that were buzzed on.
	RecallEvaluator = recallEvaluator{}
	// NumBuzz is the number of positive predictions.
	NumBuzz = numBuzz{}
	// NumCorrectBuzz is the number of positive predictions with a positive label.
	NumCorrectBuzz = numCorrectBuzz{}

	// F1Measure is f-measure with beta=1.
	F1Measure = FMeasure{beta: 1}
	// F05Measure is f-measure with beta=0.5.
	F05Measure = FMeasure{beta: 0.5}

	// Measures is every measure reported by the buzzer pipelines.
	Measures = []Evaluator{Accuracy, PrecisionEvaluator, RecallEvaluator, F1Measure, NumBuzz, NumCorrectBuzz}
)

func (accuracy) Name() string {
	return "Accuracy"
}

// Score returns 0 for empty input.
func (accuracy) Score(predictions, labels []float64) float64 {
	n := len(predictions)
	if len(labels) < n {
		n = len(labels)
	}
	if n == 0 {
		return 0
	}
	correct := make([]float64, n)
	for i := 0; i < n; i++ {
		if predictions[i] == labels[i] {
			correct[i] = 1
		}
	}
	return stat.Mean(correct, nil)
}

func (numBuzz) Name() string {
	return "NumBuzz"
}

func (numBuzz) Score(predictions, labels []float64) float64 {
	n := 0.0
	for _, p := range predictions {
		if p > 0 {
			n++
		}
	}
	return n
}

func (numCorrectBuzz) Name() string {
	return "NumCorrectBuzz"
}

func (numCorrectBuzz) Score(predictions, labels []float64) float64 {
	n := 0.0
	for i, p := range predictions {
		if i < len(labels) && p > 0 && labels[i] > 0 {
			n++
		}
	}
	return n
}

func (precisionEvaluator) Name() string {
	return "Precision"
}

func (precisionEvaluator) Score(predictions, labels []float64) float64 {
	buzzes := NumBuzz.Score(predictions, labels)
	if buzzes == 0 {
		return 0
	}
	return NumCorrectBuzz.Score(predictions, labels) / buzzes
}

func (recallEvaluator) Name() string {
	return "Recall"
}

func (recallEvaluator) Score(predictions, labels []float64) float64 {
	numPos := 0.0
	for _, l := range labels {
		if l > 0 {
			numPos++
		}
	}
	if numPos == 0 {
		return 0
	}
	return NumCorrectBuzz.Score(predictions, labels) / numPos
}

// Score uses the beta parameter to compute f-measure.
func (f FMeasure) Score(predictions, labels []float64) float64 {
	precision := PrecisionEvaluator.Score(predictions, labels)
	recall := RecallEvaluator.Score(predictions, labels)
	if precision == 0 || recall == 0 {
		return 0
	}
	betaSquared := math.Pow(f.beta, 2)
	return ((1 + betaSquared) * (precision * recall)) / ((betaSquared * precision) + recall)
}

// Name calculates the name of the f-measure with beta parameter.
func (f FMeasure) Name() string {
	return fmt.Sprintf("F%vMeasure", f.beta)
}
