// Package pipeline contains the results emitted by the buzzer pipelines.
package pipeline

import "github.com/pkg/errors"

// Stage names a step of a pipeline, so that a failure can say where it happened.
type Stage string

const (
	VocabularyLoad Stage = "vocabulary load"
	DatasetBuild   Stage = "dataset build"
	Train          Stage = "train"
	Save           Stage = "save"
	ModelLoad      Stage = "model load"
	Score          Stage = "score"
)

// Failure creates an error result whose message is prefixed with the stage that failed.
func Failure(stage Stage, err error) Result {
	return Result{
		Type:  Error,
		Stage: stage,
		Error: errors.Wrap(err, string(stage)),
	}
}
