package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"strconv"

	"github.com/countereval/countereval/internal/dataset"
	"github.com/countereval/countereval/internal/quality"
	"github.com/countereval/countereval/internal/tuner"
	tapered "github.com/countereval/countereval/pkg/eval/tapered"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	var err = run()
	if err != nil {
		log.Fatal().Err(err).Msg("tuner failed")
	}
}

func run() error {
	var (
		datasetPath    string
		gamesPath      string
		validationPath string
		startPath      string
		outputPath     string
		maxPosCount    int
		skipPlies      int
		config         = tuner.DefaultConfig
	)
	config.Threads = runtime.NumCPU()
	if n, err := strconv.Atoi(os.Getenv("COUNTEREVAL_THREADS")); err == nil {
		config.Threads = n
	}

	flag.StringVar(&datasetPath, "td", "", "Path to labelled EPD training dataset")
	flag.StringVar(&gamesPath, "games", "", "PGN file or folder to extract a training dataset from")
	flag.StringVar(&validationPath, "vd", "", "Path to labelled EPD validation dataset")
	flag.StringVar(&startPath, "start", "", "Weights to start from, built-in weights by default")
	flag.StringVar(&outputPath, "out", os.Getenv("COUNTEREVAL_WEIGHTS"), "Path of the tuned weights, .zst for compression")
	flag.IntVar(&maxPosCount, "maxpos", 0, "Maximum number of positions taken from games")
	flag.IntVar(&skipPlies, "skipplies", 8, "Opening plies skipped in every game")
	flag.IntVar(&config.Epochs, "epochs", config.Epochs, "Number of epochs")
	flag.IntVar(&config.Threads, "threads", config.Threads, "Number of threads")
	flag.IntVar(&config.BatchSize, "batch", config.BatchSize, "Samples per gradient step")
	flag.Float64Var(&config.LearningRate, "lr", config.LearningRate, "Learning rate in centipawns")
	flag.Parse()

	if outputPath == "" {
		return errors.New("output path is required")
	}

	var provider tuner.IDatasetProvider
	switch {
	case datasetPath != "":
		provider = &dataset.ZurichessDatasetProvider{FilePath: datasetPath}
	case gamesPath != "":
		provider = &dataset.PgnDatasetProvider{
			GamesPath:   gamesPath,
			MaxPosCount: maxPosCount,
			Threads:     config.Threads,
			SkipPlies:   skipPlies,
		}
	default:
		return errors.New("training dataset or games are required")
	}

	var start = tapered.DefaultWeights()
	if startPath != "" {
		var err error
		start, err = tapered.LoadWeightsFile(startPath)
		if err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	mg, eg, err := tuner.Run(ctx, provider, tapered.NewTunableEvaluator(start), config)
	if err != nil {
		return err
	}
	w, err := tapered.WeightsFromVectors(mg, eg)
	if err != nil {
		return err
	}
	if err := tapered.SaveWeightsFile(outputPath, w); err != nil {
		return err
	}
	log.Info().Str("path", outputPath).Msg("saved weights")

	if validationPath != "" {
		_, err = quality.RunQuality(ctx, tapered.NewEvaluationServiceWithWeights(w), validationPath)
		return err
	}
	return nil
}
