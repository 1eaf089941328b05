package cmd

import (
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// Keys understood in a buzzer properties file.
const (
	TrainKey        = "buzzer.train"
	DevKey          = "buzzer.dev"
	VocabKey        = "buzzer.vocab"
	ModelPathKey    = "buzzer.model.path"
	ModelStoreKey   = "buzzer.model.store"
	ModelKeyKey     = "buzzer.model.key"
	BackendKey      = "buzzer.backend"
	EpochsKey       = "buzzer.epochs"
	BatchKey        = "buzzer.batch"
	LearnRateKey    = "buzzer.learnrate"
	HeadwayKey      = "buzzer.headway"
	FeaturesPathKey = "buzzer.features"
	FormatKey       = "buzzer.format"
)

// Config resolves a setting from, in order, a command line flag, a properties file and a default.
type Config struct {
	p *properties.Properties
}

// LoadConfig reads a properties file. An empty path gives a Config that only knows flags and defaults.
func LoadConfig(path string) (Config, error) {
	if len(path) == 0 {
		return Config{}, nil
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, errors.Wrap(err, "loading configuration")
	}
	return Config{p: p}, nil
}

// String returns flag unless it is empty.
func (c Config) String(key, flag, def string) string {
	if len(flag) > 0 {
		return flag
	}
	if c.p == nil {
		return def
	}
	return c.p.GetString(key, def)
}

// Int returns flag unless it is zero.
func (c Config) Int(key string, flag, def int) int {
	if flag != 0 {
		return flag
	}
	if c.p == nil {
		return def
	}
	return c.p.GetInt(key, def)
}

// Float returns flag unless it is zero.
func (c Config) Float(key string, flag, def float64) float64 {
	if flag != 0 {
		return flag
	}
	if c.p == nil {
		return def
	}
	return c.p.GetFloat64(key, def)
}
