package learning

import (
	"bufio"
	"github.com/pkg/errors"
	"io"
	"os"
	"strings"
)

// Vocabulary is the ordered list of tokens that may become features. The position of a token is the position of
// its value in a feature vector, so the same vocabulary must be used to train and to apply a model.
type Vocabulary []string

// Index maps each token to the position of its first occurrence.
func (v Vocabulary) Index() map[string]int {
	idx := make(map[string]int, len(v))
	for i, tok := range v {
		if _, ok := idx[tok]; !ok {
			idx[tok] = i
		}
	}
	return idx
}

// LoadVocabulary reads one token per line. Whitespace around a token is stripped and blank lines are skipped.
// Duplicate tokens are kept.
func LoadVocabulary(reader io.Reader) (Vocabulary, error) {
	var v Vocabulary
	s := bufio.NewScanner(reader)
	for s.Scan() {
		tok := strings.TrimSpace(s.Text())
		if len(tok) == 0 {
			continue
		}
		v = append(v, tok)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(IOError, "reading vocabulary: %v", err)
	}
	return v, nil
}

// LoadVocabularyFile opens path and reads a vocabulary from it.
func LoadVocabularyFile(path string) (Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(IOError, "%v", err)
	}
	defer f.Close()
	return LoadVocabulary(f)
}
