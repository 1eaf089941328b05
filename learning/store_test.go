package learning_test

import (
	"github.com/hscells/buzzer/learning"
	"github.com/pkg/errors"
	"io/ioutil"
	"os"
	"reflect"
	"testing"
)

func TestModelStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "buzzer_store")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store := learning.NewModelStore(dir)

	m := learning.NewLogisticRegression()
	if err := m.Train(overlappingInputs, overlappingLabels); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(m.Identifier(), m); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Get(m.Identifier())
	if err != nil {
		t.Fatal(err)
	}
	expected, _ := m.Predict(overlappingInputs)
	actual, err := loaded.Predict(overlappingInputs)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("predictions changed after storing: %v != %v", expected, actual)
	}

	if keys := store.Keys(); len(keys) != 1 || keys[0] != m.Identifier() {
		t.Fatalf("unexpected keys %v", keys)
	}

	if _, err := store.Get("missing_model"); errors.Cause(err) != learning.IOError {
		t.Fatalf("expected io error, got %v", err)
	}
}
