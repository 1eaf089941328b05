// Command buzz_train trains a buzzer on guesses and reports its accuracy on the training and held-out splits.
package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/hscells/buzzer"
	"github.com/hscells/buzzer/cmd"
	"github.com/hscells/buzzer/learning"
	"github.com/hscells/buzzer/pipeline"
	"log"
	"os"
)

type args struct {
	BuzzTrain  string  `arg:"--buzztrain,help:guesses to train on (one JSON object per line)"`
	BuzzDev    string  `arg:"--buzzdev,help:held-out guesses to score the model on"`
	Vocab      string  `arg:"--vocab,help:vocabulary of tokens that can be features"`
	ModelPath  string  `arg:"--model_path,help:path to save the model to"`
	Epochs     int     `arg:"--n_epochs,help:number of passes through the training data (sgd only)"`
	Batch      int     `arg:"--batch,help:number of examples in each batch (sgd only)"`
	LearnRate  float64 `arg:"--learnrate,help:learning rate (sgd only)"`
	Backend    string  `arg:"--backend,help:classifier backend: logreg or sgd"`
	ModelStore string  `arg:"--model_store,help:directory of a model store to also save the model into"`
	ModelKey   string  `arg:"--model_key,help:key of the model in the model store (defaults to the model id)"`
	Features   string  `arg:"--features,help:write the training features to this file in LIBSVM format"`
	Headway    string  `arg:"--headway,help:headway server to report progress to"`
	Progress   bool    `arg:"--progress,help:draw progress bars"`
	Config     string  `arg:"--config,help:properties file with default settings"`
}

func (args) Version() string {
	return "buzz_train 19.Oct.2026"
}

func (args) Description() string {
	return `Train a logistic regression buzzer from guesses and save it.`
}

func main() {
	// Parse the command line arguments.
	var args args
	arg.MustParse(&args)

	conf, err := cmd.LoadConfig(args.Config)
	if err != nil {
		cmd.Fatal(err)
	}

	options := []func(p *buzzer.Pipeline){
		buzzer.Backend(conf.String(cmd.BackendKey, args.Backend, learning.LogisticRegressionBackend), learning.Hyperparameters{
			Epochs:       conf.Int(cmd.EpochsKey, args.Epochs, 5),
			BatchSize:    conf.Int(cmd.BatchKey, args.Batch, 10),
			LearningRate: conf.Float(cmd.LearnRateKey, args.LearnRate, 0.1),
		}),
		buzzer.Headway(conf.String(cmd.HeadwayKey, args.Headway, "")),
		buzzer.Features(conf.String(cmd.FeaturesPathKey, args.Features, "")),
	}
	if store := conf.String(cmd.ModelStoreKey, args.ModelStore, ""); len(store) > 0 {
		options = append(options, buzzer.ModelStore(learning.NewModelStore(store), conf.String(cmd.ModelKeyKey, args.ModelKey, "")))
	}
	if args.Progress {
		options = append(options, buzzer.Progress(os.Stderr))
	}

	p := buzzer.NewPipeline(
		conf.String(cmd.VocabKey, args.Vocab, "data/small_guess.vocab"),
		conf.String(cmd.TrainKey, args.BuzzTrain, "data/small_guess.buzztrain.jsonl"),
		conf.String(cmd.DevKey, args.BuzzDev, "data/small_guess.buzzdev.jsonl"),
		conf.String(cmd.ModelPathKey, args.ModelPath, "models/lr_buzzer.model"),
		options...)

	c := make(chan pipeline.Result)
	go p.Execute(c)
	for r := range c {
		switch r.Type {
		case pipeline.Error:
			cmd.Fatal(r.Error)
		case pipeline.Model:
			log.Printf("saved model %s to %s\n", r.ModelID, r.Path)
		case pipeline.Accuracy:
			fmt.Println(r.Accuracy)
		}
	}
}
