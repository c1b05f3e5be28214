//go:build embed
// +build embed

package eval

import (
	"embed"

	"github.com/rs/zerolog/log"
)

const defaultModelFile = "counter.nn"

//go:embed counter.nn
var content embed.FS

func loadDefaultModel() (*Model, error) {
	var f, err = content.Open(defaultModelFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := LoadModel(f)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("loaded embed nnue model")
	return m, nil
}
