//go:build !embed
// +build !embed

package eval

import (
	"os"

	"github.com/rs/zerolog/log"
)

const defaultModelFile = "counter.nn"

func loadDefaultModel() (*Model, error) {
	var paths = []string{"./" + defaultModelFile, "~/chess/" + defaultModelFile}
	if path := os.Getenv(ModelEnv); path != "" {
		paths = append([]string{path}, paths...)
	}
	var err error
	for _, path := range paths {
		var m *Model
		m, err = LoadModelFile(path)
		if err == nil {
			log.Info().Str("path", path).Msg("loaded nnue model")
			return m, nil
		}
		log.Debug().Err(err).Str("path", path).Msg("nnue model not loaded")
	}
	return nil, err
}
