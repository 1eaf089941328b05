package learning

import (
	"bytes"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"path/filepath"
)

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// ModelStore keeps saved models on disk under string keys.
type ModelStore struct {
	*diskv.Diskv
}

// NewModelStore creates a gzip compressed store rooted at dir.
func NewModelStore(dir string) ModelStore {
	return ModelStore{diskv.New(diskv.Options{
		BasePath:     filepath.Clean(dir),
		Transform:    BlockTransform(8),
		CacheSizeMax: 4096 * 1024,
		Compression:  diskv.NewGzipCompression(),
	})}
}

// Put saves c under key, replacing any existing model.
func (s ModelStore) Put(key string, c BinaryClassifier) error {
	var buff bytes.Buffer
	if err := c.Save(&buff); err != nil {
		return err
	}
	if err := s.Write(key, buff.Bytes()); err != nil {
		return errors.Wrapf(IOError, "storing model %s: %v", key, err)
	}
	return nil
}

// Get loads the model stored under key.
func (s ModelStore) Get(key string) (BinaryClassifier, error) {
	if !s.Has(key) {
		return nil, errors.Wrapf(IOError, "no model stored under %s", key)
	}
	b, err := s.Read(key)
	if err != nil {
		return nil, errors.Wrapf(IOError, "reading model %s: %v", key, err)
	}
	return Load(bytes.NewReader(b))
}

// Keys returns the keys of every stored model.
func (s ModelStore) Keys() []string {
	var keys []string
	for k := range s.Diskv.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}
