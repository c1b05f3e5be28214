package main

import (
	"os"
	"runtime"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	envWeights = "COUNTEREVAL_WEIGHTS"
	envThreads = "COUNTEREVAL_THREADS"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var cli = NewCommandArgs(os.Args)
	var ch = NewCommandHandler()
	ch.Add("eval", func() error {
		return evalCommand(cli.GetString("eval", ""), cli.GetString("weights", os.Getenv(envWeights)),
			cli.GetString("fen", ""), cli.GetString("moves", ""))
	})
	ch.Add("trace", func() error {
		return traceCommand(cli.GetString("weights", os.Getenv(envWeights)), cli.GetString("fen", ""))
	})
	ch.Add("quality", func() error {
		return qualityCommand(cli.GetString("eval", ""), cli.GetString("weights", os.Getenv(envWeights)),
			cli.GetString("vd", ""))
	})
	ch.Add("batch", func() error {
		return batchCommand(cli.GetString("eval", ""), cli.GetString("weights", os.Getenv(envWeights)),
			cli.GetString("input", ""), cli.GetInt("threads", envInt(envThreads, runtime.NumCPU())))
	})

	var err = ch.Execute(cli.CommandName())
	if err != nil {
		log.Fatal().Err(err).Str("command", cli.CommandName()).Msg("evaltool failed")
	}
}
