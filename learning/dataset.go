package learning

import (
	"fmt"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	"io"
	"log"
)

// Dataset is a pair of aligned sequences: Labels[i] is the gold label of Inputs[i].
type Dataset struct {
	Inputs [][]float64
	Labels []float64
}

// Len is the number of examples in the dataset.
func (d Dataset) Len() int {
	return len(d.Inputs)
}

// WriteLibSVM writes the dataset in LIBSVM format, one example per line.
func (d Dataset) WriteLibSVM(writer io.Writer) error {
	if len(d.Inputs) != len(d.Labels) {
		return errors.Wrapf(ShapeMismatchError, "%d inputs but %d labels", len(d.Inputs), len(d.Labels))
	}
	for i, x := range d.Inputs {
		var ff Features
		for j, v := range x {
			if v != 0 {
				// LIBSVM feature ids start at 1.
				ff = append(ff, NewFeature(j+1, v))
			}
		}
		line := fmt.Sprintf("%v", d.Labels[i])
		if len(ff) > 0 {
			line += " " + ff.String()
		}
		if _, err := writer.Write([]byte(line + "\n")); err != nil {
			return errors.Wrapf(IOError, "%v", err)
		}
	}
	return nil
}

type datasetOptions struct {
	progress io.Writer
}

// DatasetOption configures how a dataset is built.
type DatasetOption func(o *datasetOptions)

// WithProgress draws a progress bar to w while examples are built.
func WithProgress(w io.Writer) DatasetOption {
	return func(o *datasetOptions) {
		o.progress = w
	}
}

func newBar(o datasetOptions, n int) *pb.ProgressBar {
	if o.progress == nil {
		return nil
	}
	bar := pb.New(n)
	bar.Output = o.progress
	bar.Start()
	return bar
}

// BuildTrainingDataset creates one example per record, in input order. Records are never grouped, even when they
// share a decision point.
func BuildTrainingDataset(v Vocabulary, records []GuessRecord, fb FeatureBuilder, options ...DatasetOption) (Dataset, error) {
	var o datasetOptions
	for _, option := range options {
		option(&o)
	}

	d := Dataset{
		Inputs: make([][]float64, len(records)),
		Labels: make([]float64, len(records)),
	}
	bar := newBar(o, len(records))
	for i, r := range records {
		x, y, err := fb.Build(v, r)
		if err != nil {
			return Dataset{}, errors.Wrapf(err, "record %d (id %s)", i+1, r.ID)
		}
		d.Inputs[i] = x
		d.Labels[i] = y
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return d, nil
}

// DecisionPoints is the result of grouping records by consecutive decision key.
type DecisionPoints struct {
	Groups [][]GuessRecord
	// Reappeared counts groups whose key was already seen in an earlier, non-adjacent group.
	Reappeared int
}

// GroupDecisionPoints collects maximal runs of consecutive records that share a decision key. Records are not
// re-sorted: a key that comes back after a different key starts a new group. Callers should order records by id
// and then run length.
func GroupDecisionPoints(records []GuessRecord) DecisionPoints {
	var dp DecisionPoints
	seen := make(map[DecisionKey]struct{})
	for i, r := range records {
		k := r.Key()
		if i > 0 && k == records[i-1].Key() {
			last := len(dp.Groups) - 1
			dp.Groups[last] = append(dp.Groups[last], r)
			continue
		}
		if _, ok := seen[k]; ok {
			dp.Reappeared++
			log.Printf("warning: decision point (id %s, run_length %v) reappears at record %d; records are not grouped contiguously", k.ID, k.RunLength, i+1)
		}
		seen[k] = struct{}{}
		dp.Groups = append(dp.Groups, []GuessRecord{r})
	}
	return dp
}

// BuildEvalDataset creates one example per decision point, in the order decision points are encountered.
func BuildEvalDataset(v Vocabulary, records []GuessRecord, fb FeatureBuilder, options ...DatasetOption) (Dataset, error) {
	var o datasetOptions
	for _, option := range options {
		option(&o)
	}

	dp := GroupDecisionPoints(records)
	d := Dataset{
		Inputs: make([][]float64, len(dp.Groups)),
		Labels: make([]float64, len(dp.Groups)),
	}
	bar := newBar(o, len(dp.Groups))
	for i, group := range dp.Groups {
		x, y, err := fb.BuildGroup(v, group)
		if err != nil {
			k := group[0].Key()
			return Dataset{}, errors.Wrapf(err, "decision point (id %s, run_length %v)", k.ID, k.RunLength)
		}
		d.Inputs[i] = x
		d.Labels[i] = y
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return d, nil
}

// BuildTrainingDatasetFile reads every record in path before building a training dataset.
func BuildTrainingDatasetFile(v Vocabulary, path string, fb FeatureBuilder, options ...DatasetOption) (Dataset, error) {
	records, err := LoadGuessRecordsFile(path)
	if err != nil {
		return Dataset{}, errors.Wrap(err, path)
	}
	return BuildTrainingDataset(v, records, fb, options...)
}

// BuildEvalDatasetFile reads every record in path before building an evaluation dataset.
func BuildEvalDatasetFile(v Vocabulary, path string, fb FeatureBuilder, options ...DatasetOption) (Dataset, error) {
	records, err := LoadGuessRecordsFile(path)
	if err != nil {
		return Dataset{}, errors.Wrap(err, path)
	}
	return BuildEvalDataset(v, records, fb, options...)
}
