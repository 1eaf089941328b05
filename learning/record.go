package learning

import (
	"bufio"
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxRecordLine bounds a single NDJSON line; records carry the revealed question text.
const maxRecordLine = 16 * 1024 * 1024

// GuessRecord is one candidate answer produced by the guesser for a partially revealed question.
type GuessRecord struct {
	// ID identifies the question. Numeric ids are kept in their decimal form and flagged by NumericID, so that
	// 1 and "1" remain different questions.
	ID        string
	NumericID bool
	// RunLength is how much of the question had been revealed when the guess was made.
	RunLength float64
	Guess     string
	Score     float64
	Label     float64
	Text      string
	// Fields holds every decoded field of the record, for feature builders that need more than the above.
	Fields map[string]interface{}
}

// DecisionKey identifies a decision point: all the guesses made for a question at one run length.
type DecisionKey struct {
	ID        string
	NumericID bool
	RunLength float64
}

// Key returns the decision point the record belongs to.
func (r GuessRecord) Key() DecisionKey {
	return DecisionKey{ID: r.ID, NumericID: r.NumericID, RunLength: r.RunLength}
}

// ParseGuessRecord decodes a single JSON object.
func ParseGuessRecord(line []byte) (GuessRecord, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(line, &m); err != nil {
		return GuessRecord{}, errors.Wrap(FormatError, err.Error())
	}
	if m == nil {
		return GuessRecord{}, errors.Wrap(FormatError, "record is not a JSON object")
	}

	r := GuessRecord{Fields: m}

	switch id := m["id"].(type) {
	case string:
		r.ID = id
	case float64:
		r.ID = strconv.FormatFloat(id, 'f', -1, 64)
		r.NumericID = true
	case nil:
		return GuessRecord{}, errors.Wrap(FormatError, "record has no id")
	default:
		return GuessRecord{}, errors.Wrapf(FormatError, "id has unsupported type %T", id)
	}

	switch rl := m["run_length"].(type) {
	case float64:
		r.RunLength = rl
	case nil:
		return GuessRecord{}, errors.Wrap(FormatError, "record has no run_length")
	default:
		return GuessRecord{}, errors.Wrapf(FormatError, "run_length has unsupported type %T", rl)
	}

	if g, ok := m["guess"].(string); ok {
		r.Guess = g
	}
	if s, ok := m["score"].(float64); ok {
		r.Score = s
	}
	if t, ok := m["text"].(string); ok {
		r.Text = t
	}

	label, err := parseLabel(m["label"])
	if err != nil {
		return GuessRecord{}, err
	}
	r.Label = label

	return r, nil
}

// parseLabel accepts booleans, the numbers 0 and 1, and the strings accepted by strconv.ParseBool.
func parseLabel(v interface{}) (float64, error) {
	switch l := v.(type) {
	case nil:
		return 0, nil
	case bool:
		if l {
			return 1, nil
		}
		return 0, nil
	case float64:
		if l != 0 && l != 1 {
			return 0, errors.Wrapf(FormatError, "label %v is not 0 or 1", l)
		}
		return l, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(l))
		if err != nil {
			return 0, errors.Wrapf(FormatError, "label %q is not boolean", l)
		}
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errors.Wrapf(FormatError, "label has unsupported type %T", v)
}

// LoadGuessRecords reads newline delimited JSON records. Blank lines are skipped. The first malformed line stops
// the read and is reported with its line number.
func LoadGuessRecords(reader io.Reader) ([]GuessRecord, error) {
	var records []GuessRecord
	s := bufio.NewScanner(reader)
	s.Buffer(make([]byte, 64*1024), maxRecordLine)
	n := 0
	for s.Scan() {
		n++
		line := bytes.TrimSpace(s.Bytes())
		if len(line) == 0 {
			continue
		}
		r, err := ParseGuessRecord(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		records = append(records, r)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(IOError, "reading records: %v", err)
	}
	return records, nil
}

// LoadGuessRecordsFile opens path and reads all of its records.
func LoadGuessRecordsFile(path string) ([]GuessRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(IOError, "%v", err)
	}
	defer f.Close()
	return LoadGuessRecords(f)
}
