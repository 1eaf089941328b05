// Package buzzer trains and evaluates the models that decide when to buzz in on a quiz bowl question.
package buzzer

import (
	"fmt"
	"github.com/hscells/buzzer/eval"
	"github.com/hscells/buzzer/learning"
	"github.com/hscells/buzzer/pipeline"
	"github.com/hscells/headway"
	"github.com/pkg/errors"
	"io"
	"log"
	"os"
	"time"
)

// Pipeline trains a buzzer: it loads a vocabulary, builds training examples for the training and held-out
// splits, trains a fresh model, saves it and reports its accuracy on both splits.
type Pipeline struct {
	VocabularyPath string
	TrainPath      string
	HeldOutPath    string
	ModelPath      string

	Backend         string
	Hyperparameters learning.Hyperparameters
	FeatureBuilder  learning.FeatureBuilder

	// ModelStore, if set, receives a copy of the saved model under ModelKey (or the model id when empty).
	ModelStore *learning.ModelStore
	ModelKey   string

	// FeaturesPath, if set, receives the training dataset in LIBSVM format.
	FeaturesPath string

	HeadwayServer string
	Progress      io.Writer
}

// NewPipeline creates a training pipeline. Optional components are configured via the functional arguments.
func NewPipeline(vocabularyPath, trainPath, heldOutPath, modelPath string, options ...func(p *Pipeline)) Pipeline {
	p := &Pipeline{
		VocabularyPath: vocabularyPath,
		TrainPath:      trainPath,
		HeldOutPath:    heldOutPath,
		ModelPath:      modelPath,
		Backend:        learning.LogisticRegressionBackend,
	}
	for _, o := range options {
		o(p)
	}
	return *p
}

// Backend selects the classifier backend and its hyperparameters.
func Backend(name string, h learning.Hyperparameters) func(p *Pipeline) {
	return func(p *Pipeline) {
		p.Backend = name
		p.Hyperparameters = h
	}
}

// FeatureBuilder replaces the default vocabulary feature builder.
func FeatureBuilder(fb learning.FeatureBuilder) func(p *Pipeline) {
	return func(p *Pipeline) {
		p.FeatureBuilder = fb
	}
}

// ModelStore additionally stores the trained model in s under key.
func ModelStore(s learning.ModelStore, key string) func(p *Pipeline) {
	return func(p *Pipeline) {
		p.ModelStore = &s
		p.ModelKey = key
	}
}

// Features writes the training dataset to path in LIBSVM format.
func Features(path string) func(p *Pipeline) {
	return func(p *Pipeline) {
		p.FeaturesPath = path
	}
}

// Headway reports progress to a headway server.
func Headway(server string) func(p *Pipeline) {
	return func(p *Pipeline) {
		p.HeadwayServer = server
	}
}

// Progress draws progress bars to w.
func Progress(w io.Writer) func(p *Pipeline) {
	return func(p *Pipeline) {
		p.Progress = w
	}
}

// progress forwards stage messages to headway when a server is configured.
type progress struct {
	hw    *headway.Client
	total float64
}

func newProgress(server, name string, total int) progress {
	pr := progress{total: float64(total)}
	if len(server) > 0 {
		pr.hw = headway.NewClient(server, fmt.Sprintf("%s [#%d]", name, time.Now().Unix()))
	}
	return pr
}

func (pr progress) send(step int, message string) {
	log.Println(message)
	if pr.hw == nil {
		return
	}
	if err := pr.hw.Send(float64(step), pr.total, message, ""); err != nil {
		log.Printf("could not send progress to headway: %v\n", err)
	}
}

func featureBuilder(fb learning.FeatureBuilder) (learning.FeatureBuilder, error) {
	if fb != nil {
		return fb, nil
	}
	return learning.NewVocabularyFeatureBuilder(learning.DefaultTokenCacheSize)
}

func datasetOptions(w io.Writer) []learning.DatasetOption {
	if w == nil {
		return nil
	}
	return []learning.DatasetOption{learning.WithProgress(w)}
}

func writeLibSVM(d learning.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(learning.IOError, "%v", err)
	}
	defer f.Close()
	return d.WriteLibSVM(f)
}

type identifier interface {
	Identifier() string
}

// Execute runs the training pipeline, sending results to c. Stages run one after another and the first failure
// stops the pipeline. c is closed when Execute returns.
func (p Pipeline) Execute(c chan pipeline.Result) {
	defer close(c)
	pr := newProgress(p.HeadwayServer, "buzzer training pipeline", 6)

	pr.send(0, "loading vocabulary...")
	vocab, err := learning.LoadVocabularyFile(p.VocabularyPath)
	if err != nil {
		c <- pipeline.Failure(pipeline.VocabularyLoad, err)
		return
	}

	fb, err := featureBuilder(p.FeatureBuilder)
	if err != nil {
		c <- pipeline.Failure(pipeline.DatasetBuild, err)
		return
	}

	pr.send(1, "building training dataset...")
	train, err := learning.BuildTrainingDatasetFile(vocab, p.TrainPath, fb, datasetOptions(p.Progress)...)
	if err != nil {
		c <- pipeline.Failure(pipeline.DatasetBuild, err)
		return
	}

	if len(p.FeaturesPath) > 0 {
		if err := writeLibSVM(train, p.FeaturesPath); err != nil {
			c <- pipeline.Failure(pipeline.DatasetBuild, err)
			return
		}
	}

	// The held-out split is built the same way as the training split: one example per guess.
	pr.send(2, "building held-out dataset...")
	heldOut, err := learning.BuildTrainingDatasetFile(vocab, p.HeldOutPath, fb, datasetOptions(p.Progress)...)
	if err != nil {
		c <- pipeline.Failure(pipeline.DatasetBuild, err)
		return
	}

	pr.send(3, fmt.Sprintf("training %s model on %d examples...", p.Backend, train.Len()))
	model, err := learning.NewBackend(p.Backend, p.Hyperparameters)
	if err != nil {
		c <- pipeline.Failure(pipeline.Train, err)
		return
	}
	if sgd, ok := model.(*learning.SGDLogisticRegression); ok {
		sgd.Progress = p.Progress
	}
	if err := model.Train(train.Inputs, train.Labels); err != nil {
		c <- pipeline.Failure(pipeline.Train, err)
		return
	}

	pr.send(4, "saving model...")
	if err := learning.SaveFile(model, p.ModelPath); err != nil {
		c <- pipeline.Failure(pipeline.Save, err)
		return
	}
	var id string
	if m, ok := model.(identifier); ok {
		id = m.Identifier()
	}
	if p.ModelStore != nil {
		key := p.ModelKey
		if len(key) == 0 {
			key = id
		}
		if err := p.ModelStore.Put(key, model); err != nil {
			c <- pipeline.Failure(pipeline.Save, err)
			return
		}
	}
	c <- pipeline.Result{
		Type:    pipeline.Model,
		Stage:   pipeline.Save,
		ModelID: id,
		Path:    p.ModelPath,
	}

	pr.send(5, "scoring model...")
	for _, split := range []struct {
		name string
		d    learning.Dataset
	}{{"train", train}, {"heldout", heldOut}} {
		accuracy, err := model.AccuracyScore(split.d.Inputs, split.d.Labels)
		if err != nil {
			c <- pipeline.Failure(pipeline.Score, err)
			return
		}
		c <- pipeline.Result{
			Type:     pipeline.Accuracy,
			Stage:    pipeline.Score,
			Split:    split.name,
			Accuracy: accuracy,
		}
	}
	pr.send(6, "done!")
}

// EvalPipeline scores a saved model on an evaluation split where every decision point is one example.
type EvalPipeline struct {
	VocabularyPath string
	EvalPath       string

	// The model is read from ModelPath, or from ModelStore under ModelKey when a store is set.
	ModelPath  string
	ModelStore *learning.ModelStore
	ModelKey   string

	FeatureBuilder learning.FeatureBuilder
	Evaluators     []eval.Evaluator
	Progress       io.Writer
}

func (p EvalPipeline) loadModel() (learning.BinaryClassifier, error) {
	if p.ModelStore != nil {
		return p.ModelStore.Get(p.ModelKey)
	}
	return learning.LoadFile(p.ModelPath)
}

// Execute runs the evaluation pipeline, sending results to c. c is closed when Execute returns.
func (p EvalPipeline) Execute(c chan pipeline.Result) {
	defer close(c)

	log.Println("loading vocabulary...")
	vocab, err := learning.LoadVocabularyFile(p.VocabularyPath)
	if err != nil {
		c <- pipeline.Failure(pipeline.VocabularyLoad, err)
		return
	}

	log.Println("loading model...")
	model, err := p.loadModel()
	if err != nil {
		c <- pipeline.Failure(pipeline.ModelLoad, err)
		return
	}

	fb, err := featureBuilder(p.FeatureBuilder)
	if err != nil {
		c <- pipeline.Failure(pipeline.DatasetBuild, err)
		return
	}

	log.Println("building evaluation dataset...")
	d, err := learning.BuildEvalDatasetFile(vocab, p.EvalPath, fb, datasetOptions(p.Progress)...)
	if err != nil {
		c <- pipeline.Failure(pipeline.DatasetBuild, err)
		return
	}

	log.Printf("scoring %d decision points...\n", d.Len())
	accuracy, err := model.AccuracyScore(d.Inputs, d.Labels)
	if err != nil {
		c <- pipeline.Failure(pipeline.Score, err)
		return
	}
	c <- pipeline.Result{
		Type:     pipeline.Accuracy,
		Stage:    pipeline.Score,
		Split:    "eval",
		Accuracy: accuracy,
	}

	if len(p.Evaluators) > 0 {
		predictions, err := model.Predict(d.Inputs)
		if err != nil {
			c <- pipeline.Failure(pipeline.Score, err)
			return
		}
		c <- pipeline.Result{
			Type:        pipeline.Evaluation,
			Stage:       pipeline.Score,
			Split:       "eval",
			Evaluations: eval.Evaluate(p.Evaluators, predictions, d.Labels),
		}
	}
}
