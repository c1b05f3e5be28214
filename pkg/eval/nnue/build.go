package eval

import (
	"sync"
)

// ModelEnv names a model file that takes precedence over the default locations.
const ModelEnv = "COUNTEREVAL_MODEL"

var (
	once         sync.Once
	defaultModel *Model
	defaultErr   error
)

// DefaultModel loads the built-in model once per process.
func DefaultModel() (*Model, error) {
	once.Do(func() {
		defaultModel, defaultErr = loadDefaultModel()
	})
	return defaultModel, defaultErr
}

// NewDefaultEvaluationService panics if the default model cannot be loaded.
func NewDefaultEvaluationService() *EvaluationService {
	var m, err = DefaultModel()
	if err != nil {
		panic(err)
	}
	return NewEvaluationService(m)
}
