package buzzer_test

import (
	"github.com/hscells/buzzer"
	"github.com/hscells/buzzer/eval"
	"github.com/hscells/buzzer/learning"
	"github.com/hscells/buzzer/pipeline"
	"github.com/pkg/errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "buzzer_pipeline")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func collect(execute func(c chan pipeline.Result)) []pipeline.Result {
	c := make(chan pipeline.Result)
	go execute(c)
	var results []pipeline.Result
	for r := range c {
		results = append(results, r)
	}
	return results
}

func TestPipeline(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	modelPath := filepath.Join(dir, "lr_buzzer.model")
	store := learning.NewModelStore(filepath.Join(dir, "store"))
	p := buzzer.NewPipeline("testdata/guess.vocab", "testdata/guess.buzztrain.jsonl", "testdata/guess.buzzdev.jsonl", modelPath,
		buzzer.ModelStore(store, "lr_buzzer"))

	results := collect(p.Execute)
	if len(results) != 3 {
		t.Fatalf("expected a model and two accuracies, got %+v", results)
	}
	if results[0].Type != pipeline.Model || results[0].Path != modelPath || len(results[0].ModelID) == 0 {
		t.Fatalf("unexpected model result %+v", results[0])
	}
	for i, split := range []string{"train", "heldout"} {
		r := results[i+1]
		if r.Type != pipeline.Accuracy || r.Split != split {
			t.Fatalf("unexpected result %+v", r)
		}
		if r.Accuracy < 0 || r.Accuracy > 1 {
			t.Fatalf("accuracy out of range: %v", r.Accuracy)
		}
		t.Log(split, r.Accuracy)
	}

	// The saved model reproduces the reported held-out accuracy.
	model, err := learning.LoadFile(modelPath)
	if err != nil {
		t.Fatal(err)
	}
	vocab, err := learning.LoadVocabularyFile("testdata/guess.vocab")
	if err != nil {
		t.Fatal(err)
	}
	fb, err := learning.NewVocabularyFeatureBuilder(16)
	if err != nil {
		t.Fatal(err)
	}
	d, err := learning.BuildTrainingDatasetFile(vocab, "testdata/guess.buzzdev.jsonl", fb)
	if err != nil {
		t.Fatal(err)
	}
	accuracy, err := model.AccuracyScore(d.Inputs, d.Labels)
	if err != nil {
		t.Fatal(err)
	}
	if accuracy != results[2].Accuracy {
		t.Fatalf("reloaded model scored %v, pipeline reported %v", accuracy, results[2].Accuracy)
	}

	if _, err := store.Get("lr_buzzer"); err != nil {
		t.Fatal(err)
	}

	// Evaluate the stored model on decision points.
	e := buzzer.EvalPipeline{
		VocabularyPath: "testdata/guess.vocab",
		EvalPath:       "testdata/guess.buzzdev.jsonl",
		ModelStore:     &store,
		ModelKey:       "lr_buzzer",
		Evaluators:     eval.Measures,
	}
	results = collect(e.Execute)
	if len(results) != 2 {
		t.Fatalf("expected an accuracy and an evaluation, got %+v", results)
	}
	if results[0].Type != pipeline.Accuracy || results[0].Split != "eval" {
		t.Fatalf("unexpected result %+v", results[0])
	}
	if results[1].Type != pipeline.Evaluation || results[1].Evaluations["Accuracy"] != results[0].Accuracy {
		t.Fatalf("unexpected evaluation %+v", results[1])
	}
}

func TestPipelineSGD(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	modelPath := filepath.Join(dir, "sgd_buzzer.model")
	p := buzzer.NewPipeline("testdata/guess.vocab", "testdata/guess.buzztrain.jsonl", "testdata/guess.buzzdev.jsonl", modelPath,
		buzzer.Backend(learning.SGDLogisticRegressionBackend, learning.Hyperparameters{Epochs: 5, BatchSize: 10, LearningRate: 0.1}))

	results := collect(p.Execute)
	for _, r := range results {
		if r.Type == pipeline.Error {
			t.Fatal(r.Error)
		}
	}
	model, err := learning.LoadFile(modelPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := model.(*learning.SGDLogisticRegression); !ok {
		t.Fatalf("expected an sgd model, got %T", model)
	}
}

func expectFailure(t *testing.T, results []pipeline.Result, stage pipeline.Stage, cause error) {
	if len(results) == 0 {
		t.Fatal("expected an error result")
	}
	r := results[len(results)-1]
	if r.Type != pipeline.Error || r.Stage != stage {
		t.Fatalf("expected a %s failure, got %+v", stage, r)
	}
	if errors.Cause(r.Error) != cause {
		t.Fatalf("expected %v, got %v", cause, r.Error)
	}
}

func TestPipelineSingleClass(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	modelPath := filepath.Join(dir, "lr_buzzer.model")
	p := buzzer.NewPipeline("testdata/guess.vocab", "testdata/single_class.buzztrain.jsonl", "testdata/guess.buzzdev.jsonl", modelPath)
	results := collect(p.Execute)
	expectFailure(t, results, pipeline.Train, learning.TrainingError)

	if _, err := os.Stat(modelPath); !os.IsNotExist(err) {
		t.Fatalf("expected no model file to be written, got %v", err)
	}
}

func TestPipelineMalformed(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	modelPath := filepath.Join(dir, "lr_buzzer.model")
	p := buzzer.NewPipeline("testdata/guess.vocab", "testdata/malformed.buzztrain.jsonl", "testdata/guess.buzzdev.jsonl", modelPath)
	expectFailure(t, collect(p.Execute), pipeline.DatasetBuild, learning.FormatError)

	if _, err := os.Stat(modelPath); !os.IsNotExist(err) {
		t.Fatalf("expected no model file to be written, got %v", err)
	}
}

func TestPipelineMissingVocabulary(t *testing.T) {
	p := buzzer.NewPipeline("testdata/missing.vocab", "testdata/guess.buzztrain.jsonl", "testdata/guess.buzzdev.jsonl", "unused.model")
	expectFailure(t, collect(p.Execute), pipeline.VocabularyLoad, learning.IOError)
}

func TestEvalPipelineMissingModel(t *testing.T) {
	e := buzzer.EvalPipeline{
		VocabularyPath: "testdata/guess.vocab",
		EvalPath:       "testdata/guess.buzzdev.jsonl",
		ModelPath:      "testdata/missing.model",
	}
	expectFailure(t, collect(e.Execute), pipeline.ModelLoad, learning.IOError)
}
