package tuner

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// RunTuner trains starting from mg/eg and returns the tuned vectors.
func RunTuner(
	samples []Sample,
	mg, eg []float64,
	config Config,
) (tunedMg, tunedEg []float64) {
	log.Info().Int("samples", len(samples)).Msg("train started")
	defer log.Info().Msg("train finished")

	var validationSize = min(config.ValidationSize, len(samples)/5)
	var validation = samples[:validationSize]
	var training = samples[validationSize:]

	var mainModel = NewModelHCE(mg, eg, config.LearningRate)

	var models = make([]*Model, max(1, config.Threads))
	models[0] = mainModel
	for i := 1; i < len(models); i++ {
		models[i] = mainModel.ThreadCopy()
	}

	var batchSize = max(1, config.BatchSize)
	for epoch := 1; epoch <= config.Epochs; epoch++ {
		shuffle(training)
		for i := 0; i < len(training); i += batchSize {
			var batch = training[i:min(i+batchSize, len(training))]
			trainBatch(batch, models)
			applyGradients(models)
		}
		var event = log.Info().Int("epoch", epoch)
		if len(validation) != 0 {
			event = event.Float64("validationCost", calcAverageCost(validation, models))
		}
		event.Msg("finished epoch")
	}

	return mainModel.Weights()
}

func shuffle(training []Sample) {
	frand.Shuffle(len(training), func(i, j int) {
		training[i], training[j] = training[j], training[i]
	})
}

func trainBatch(samples []Sample, models []*Model) {
	var index int32 = -1
	var wg = &sync.WaitGroup{}
	for i := range models {
		wg.Add(1)
		go func(m *Model) {
			defer wg.Done()
			for {
				var i = int(atomic.AddInt32(&index, 1))
				if i >= len(samples) {
					break
				}
				m.Train(&samples[i])
			}
		}(models[i])
	}
	wg.Wait()
}

func applyGradients(models []*Model) {
	for i := 1; i < len(models); i++ {
		models[i].AddGradients(models[0])
	}
	models[0].ApplyGradients()
}

func calcAverageCost(samples []Sample, models []*Model) float64 {
	var index int32 = -1
	var wg = &sync.WaitGroup{}
	var totalCost float64
	var mu = &sync.Mutex{}
	for i := range models {
		wg.Add(1)
		go func(m *Model) {
			defer wg.Done()
			var localCost float64
			for {
				var i = int(atomic.AddInt32(&index, 1))
				if i >= len(samples) {
					break
				}
				localCost += m.CalcCost(&samples[i])
			}
			mu.Lock()
			totalCost += localCost
			mu.Unlock()
		}(models[i])
	}
	wg.Wait()
	return totalCost / float64(len(samples))
}
