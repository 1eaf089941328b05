package learning

import (
	"fmt"
	"github.com/hashicorp/golang-lru"
	"github.com/hscells/go-unidecode"
	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"github.com/xtgo/set"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vocabulary tokens that take a value from the record rather than from the guess tokens.
const (
	BiasFeature      = "BIAS_CONSTANT"
	ScoreFeature     = "score"
	RunLengthFeature = "run_length"
	// GuessPrefix is prepended to the whole guess to form a single identity token.
	GuessPrefix = "guess:"
)

// DefaultTokenCacheSize is the number of distinct guesses whose tokens are memoised.
const DefaultTokenCacheSize = 4096

// Feature is a single position of a feature vector.
type Feature struct {
	ID    int
	Score float64
}

// NewFeature creates a new feature with the specified ID and `Score`.
func NewFeature(id int, score float64) Feature {
	return Feature{id, score}
}

// Features is a sparse feature vector.
type Features []Feature

func (ff Features) Len() int           { return len(ff) }
func (ff Features) Swap(i, j int)      { ff[i], ff[j] = ff[j], ff[i] }
func (ff Features) Less(i, j int) bool { return ff[i].ID < ff[j].ID }

// Scores expands the features into a dense vector of length max. Features past max are dropped.
func (ff Features) Scores(max int) []float64 {
	v := make([]float64, max)
	for _, f := range ff {
		if f.ID < 0 || f.ID >= len(v) {
			continue
		}
		v[f.ID] = f.Score
	}
	return v
}

// String returns the features as space separated id:score pairs.
func (ff Features) String() string {
	sort.Sort(ff)
	size := set.Uniq(ff)
	tmp := ff[:size]
	s := make([]string, len(tmp))
	for i, f := range tmp {
		s[i] = fmt.Sprintf("%v:%v", f.ID, f.Score)
	}
	return strings.Join(s, " ")
}

// FeatureBuilder turns guess records into feature vectors and labels. Build is used for training examples, where
// every record stands alone. BuildGroup is used for evaluation, where all guesses of one decision point produce a
// single example.
type FeatureBuilder interface {
	Build(v Vocabulary, record GuessRecord) ([]float64, float64, error)
	BuildGroup(v Vocabulary, group []GuessRecord) ([]float64, float64, error)
}

// VocabularyFeatureBuilder produces vectors with one position per vocabulary token. The special tokens
// BIAS_CONSTANT, score and run_length take values from the record; every other token is an indicator of whether
// it appears among the tokens of the guess.
type VocabularyFeatureBuilder struct {
	cache *lru.Cache
}

// NewVocabularyFeatureBuilder creates a builder that memoises the tokens of up to cacheSize guesses.
func NewVocabularyFeatureBuilder(cacheSize int) (*VocabularyFeatureBuilder, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultTokenCacheSize
	}
	c, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &VocabularyFeatureBuilder{cache: c}, nil
}

// Tokens returns the sorted, unique tokens of a guess: the guess itself prefixed with GuessPrefix, and the
// lower-cased ASCII words of the guess with underscores treated as spaces.
func (b *VocabularyFeatureBuilder) Tokens(guess string) ([]string, error) {
	if v, ok := b.cache.Get(guess); ok {
		return v.([]string), nil
	}

	toks := []string{GuessPrefix + guess}
	text := unidecode.Unidecode(strings.ToLower(strings.Replace(guess, "_", " ", -1)))
	if len(strings.TrimSpace(text)) > 0 {
		doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false), prose.WithSegmentation(false))
		if err != nil {
			return nil, err
		}
		for _, tok := range doc.Tokens() {
			if isWord(tok.Text) {
				toks = append(toks, tok.Text)
			}
		}
	}

	sort.Strings(toks)
	toks = toks[:set.Uniq(sort.StringSlice(toks))]

	b.cache.Add(guess, toks)
	return toks, nil
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// Features computes the non-zero features of a record. A token that occurs more than once in the vocabulary is
// set at each of its positions.
func (b *VocabularyFeatureBuilder) Features(v Vocabulary, record GuessRecord) (Features, error) {
	toks, err := b.Tokens(record.Guess)
	if err != nil {
		return nil, errors.Wrapf(err, "tokenising guess %q", record.Guess)
	}

	var ff Features
	for i, tok := range v {
		var score float64
		switch tok {
		case BiasFeature:
			score = 1
		case ScoreFeature:
			score = record.Score
		case RunLengthFeature:
			score = math.Log1p(math.Max(record.RunLength, 0))
		default:
			j := sort.SearchStrings(toks, tok)
			if j < len(toks) && toks[j] == tok {
				score = 1
			}
		}
		if score != 0 {
			ff = append(ff, NewFeature(i, score))
		}
	}
	return ff, nil
}

// Build creates the dense vector and label for one record.
func (b *VocabularyFeatureBuilder) Build(v Vocabulary, record GuessRecord) ([]float64, float64, error) {
	ff, err := b.Features(v, record)
	if err != nil {
		return nil, 0, err
	}
	return ff.Scores(len(v)), record.Label, nil
}

// BuildGroup represents a decision point by its highest scoring guess; the first guess wins ties.
func (b *VocabularyFeatureBuilder) BuildGroup(v Vocabulary, group []GuessRecord) ([]float64, float64, error) {
	if len(group) == 0 {
		return nil, 0, errors.New("cannot build features for an empty group")
	}
	best := group[0]
	for _, r := range group[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return b.Build(v, best)
}
