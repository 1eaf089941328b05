package eval_test

import (
	"github.com/hscells/buzzer/eval"
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	predictions := []float64{1, 0, 1, 1}
	labels := []float64{1, 0, 0, 1}

	if a := eval.Accuracy.Score(predictions, labels); a != 0.75 {
		t.Fatalf("expected accuracy 0.75, got %v", a)
	}
	if a := eval.Accuracy.Score(nil, nil); a != 0 {
		t.Fatalf("expected accuracy 0 for empty input, got %v", a)
	}
}

func TestPrecisionRecall(t *testing.T) {
	predictions := []float64{1, 1, 0, 0, 1}
	labels := []float64{1, 0, 1, 0, 1}

	if p := eval.PrecisionEvaluator.Score(predictions, labels); math.Abs(p-2.0/3.0) > 1e-12 {
		t.Fatalf("expected precision 2/3, got %v", p)
	}
	if r := eval.RecallEvaluator.Score(predictions, labels); math.Abs(r-2.0/3.0) > 1e-12 {
		t.Fatalf("expected recall 2/3, got %v", r)
	}
	if f := eval.F1Measure.Score(predictions, labels); math.Abs(f-2.0/3.0) > 1e-12 {
		t.Fatalf("expected f1 2/3, got %v", f)
	}

	scores := eval.Evaluate(eval.Measures, predictions, labels)
	if scores["NumBuzz"] != 3 || scores["NumCorrectBuzz"] != 2 {
		t.Fatalf("unexpected buzz counts %v", scores)
	}
	t.Log(scores)
}

func TestNoBuzz(t *testing.T) {
	predictions := []float64{0, 0}
	labels := []float64{1, 0}
	if p := eval.PrecisionEvaluator.Score(predictions, labels); p != 0 {
		t.Fatalf("expected precision 0 with no buzzes, got %v", p)
	}
	if f := eval.F1Measure.Score(predictions, labels); f != 0 {
		t.Fatalf("expected f1 0 with no buzzes, got %v", f)
	}
}
