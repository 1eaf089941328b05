// Command buzz_eval scores a saved buzzer on held-out guesses, with one decision per question and run length.
package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/hscells/buzzer"
	"github.com/hscells/buzzer/cmd"
	"github.com/hscells/buzzer/eval"
	"github.com/hscells/buzzer/learning"
	"github.com/hscells/buzzer/output"
	"github.com/hscells/buzzer/pipeline"
	"github.com/pkg/errors"
	"os"
)

type args struct {
	BuzzDev    string `arg:"--buzzdev,help:guesses to evaluate on (sorted by id then run_length)"`
	Vocab      string `arg:"--vocab,help:vocabulary the model was trained with"`
	ModelPath  string `arg:"--model_path,help:path of a saved model"`
	ModelStore string `arg:"--model_store,help:directory of a model store to read the model from"`
	ModelKey   string `arg:"--model_key,help:key of the model in the model store"`
	Format     string `arg:"--format,help:evaluation output format: text json or csv"`
	Progress   bool   `arg:"--progress,help:draw progress bars"`
	Config     string `arg:"--config,help:properties file with default settings"`
}

func (args) Version() string {
	return "buzz_eval 19.Oct.2026"
}

func (args) Description() string {
	return `Evaluate a saved buzzer at every decision point of held-out questions.`
}

func main() {
	// Parse the command line arguments.
	var args args
	arg.MustParse(&args)

	conf, err := cmd.LoadConfig(args.Config)
	if err != nil {
		cmd.Fatal(err)
	}

	format := conf.String(cmd.FormatKey, args.Format, "text")
	formatter, ok := output.Formatters[format]
	if !ok {
		cmd.Fatal(errors.Errorf("unknown output format %q", format))
	}

	p := buzzer.EvalPipeline{
		VocabularyPath: conf.String(cmd.VocabKey, args.Vocab, "data/small_guess.vocab"),
		EvalPath:       conf.String(cmd.DevKey, args.BuzzDev, "data/small_guess.buzzdev.jsonl"),
		ModelPath:      conf.String(cmd.ModelPathKey, args.ModelPath, "models/lr_buzzer.model"),
		Evaluators:     eval.Measures,
	}
	if store := conf.String(cmd.ModelStoreKey, args.ModelStore, ""); len(store) > 0 {
		s := learning.NewModelStore(store)
		p.ModelStore = &s
		p.ModelKey = conf.String(cmd.ModelKeyKey, args.ModelKey, "")
	}
	if args.Progress {
		p.Progress = os.Stderr
	}

	c := make(chan pipeline.Result)
	go p.Execute(c)
	for r := range c {
		switch r.Type {
		case pipeline.Error:
			cmd.Fatal(r.Error)
		case pipeline.Accuracy:
			fmt.Println(r.Accuracy)
		case pipeline.Evaluation:
			s, err := formatter(r.Split, r.Evaluations)
			if err != nil {
				cmd.Fatal(err)
			}
			fmt.Println(s)
		}
	}
}
