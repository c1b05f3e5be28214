package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/countereval/countereval/internal/blobio"
	"github.com/countereval/countereval/internal/dataset"
	"github.com/countereval/countereval/internal/evalbuilder"
	"github.com/countereval/countereval/internal/quality"
	"github.com/countereval/countereval/pkg/common"
	nnue "github.com/countereval/countereval/pkg/eval/nnue"
	tapered "github.com/countereval/countereval/pkg/eval/tapered"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func parseFen(fen string) (common.Position, error) {
	if fen == "" {
		fen = common.InitialPositionFen
	}
	return common.NewPositionFromFEN(fen)
}

// evalCommand prints the score of fen and of every position after moves.
func evalCommand(evalName, weightsPath, fen, moves string) error {
	newEvaluator, err := evalbuilder.Get(evalName, weightsPath)
	if err != nil {
		return err
	}
	pos, err := parseFen(fen)
	if err != nil {
		return err
	}
	return evalLine(os.Stdout, newEvaluator(), pos, strings.Fields(moves))
}

// evalLine plays moves from pos and prints a score after each of them.
// The nnue evaluator is updated incrementally along the moves.
func evalLine(w io.Writer, e evalbuilder.Evaluator, pos common.Position, moves []string) error {
	var incremental, isNnue = e.(*nnue.EvaluationService)
	if isNnue {
		incremental.Init(&pos)
	}
	var score = func() int {
		if isNnue {
			return incremental.EvaluateQuick(&pos)
		}
		return e.Evaluate(&pos)
	}
	fmt.Fprintf(w, "%v\t%v\n", pos.String(), score())
	for _, lan := range moves {
		m, err := pos.ParseMove(lan)
		if err != nil {
			return err
		}
		var child common.Position
		pos.MakeMove(m, &child)
		if isNnue {
			incremental.MakeMove(&pos, m)
		}
		pos = child
		fmt.Fprintf(w, "%v\t%v\t%v\n", lan, pos.String(), score())
	}
	return nil
}

func traceCommand(weightsPath, fen string) error {
	var w = tapered.DefaultWeights()
	if weightsPath != "" {
		var err error
		w, err = tapered.LoadWeightsFile(weightsPath)
		if err != nil {
			return err
		}
	}
	pos, err := parseFen(fen)
	if err != nil {
		return err
	}
	var score, trace = tapered.EvaluateWithTrace(&pos, w)
	fmt.Printf("score\t%v\n", score)
	fmt.Printf("phase\t%v\n", tapered.GamePhase(&pos))
	fmt.Printf("terms\t%v\n", tapered.Dot(&trace, w))
	for _, f := range tapered.Features(&trace) {
		fmt.Printf("feature\t%v\t%v\n", f.Index, f.Value)
	}
	return nil
}

func qualityCommand(evalName, weightsPath, validationPath string) error {
	newEvaluator, err := evalbuilder.Get(evalName, weightsPath)
	if err != nil {
		return err
	}
	_, err = quality.RunQuality(context.Background(), newEvaluator(), validationPath)
	return err
}

// batchCommand scores every FEN or EPD line of inputPath on threads workers
// and prints the results in input order.
func batchCommand(evalName, weightsPath, inputPath string, threads int) error {
	newEvaluator, err := evalbuilder.Get(evalName, weightsPath)
	if err != nil {
		return err
	}
	fens, err := readFens(inputPath)
	if err != nil {
		return err
	}
	log.Info().Int("positions", len(fens)).Int("threads", threads).Msg("batch started")

	var scores = make([]int, len(fens))
	var indices = make(chan int)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		defer close(indices)
		for i := range fens {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case indices <- i:
			}
		}
		return nil
	})
	for i := 0; i < max(1, threads); i++ {
		g.Go(func() error {
			var e = newEvaluator()
			for i := range indices {
				pos, err := common.NewPositionFromFEN(fens[i])
				if err != nil {
					return err
				}
				scores[i] = e.Evaluate(&pos)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var w = bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for i, fen := range fens {
		fmt.Fprintf(w, "%v\t%v\n", fen, scores[i])
	}
	return nil
}

func readFens(path string) ([]string, error) {
	f, err := blobio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var result []string
	var scanner = bufio.NewScanner(f)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if item, err := dataset.ParseEntry(line); err == nil {
			line = item.Fen
		}
		result = append(result, line)
	}
	return result, scanner.Err()
}
