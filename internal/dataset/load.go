package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/countereval/countereval/internal/blobio"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

func loadGames(
	ctx context.Context,
	gamesPath string,
	games chan<- *chess.Game,
) error {
	files, err := pgnFiles(blobio.MapPath(gamesPath))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("at least one PGN file is expected in %v", gamesPath)
	}
	var gamesCount int
	for _, path := range files {
		log.Info().Str("path", path).Msg("loadGames")
		n, err := walkPgnFile(ctx, path, games)
		gamesCount += n
		if err != nil {
			return err
		}
	}
	log.Info().Int("gamesCount", gamesCount).Msg("loadGames")
	return nil
}

func walkPgnFile(ctx context.Context, path string, games chan<- *chess.Game) (int, error) {
	f, err := blobio.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var count int
	var scanner = chess.NewScanner(f)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		case games <- scanner.Next():
			count++
		}
	}
	// the scanner reports io.EOF once the file is consumed
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return count, fmt.Errorf("read %v: %w", path, err)
	}
	return count, nil
}

func isPgnFile(name string) bool {
	return strings.HasSuffix(name, ".pgn") || strings.HasSuffix(name, ".pgn.zst")
}

func pgnFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	dirs, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var result []string
	for _, de := range dirs {
		if !de.IsDir() && isPgnFile(de.Name()) {
			result = append(result, filepath.Join(path, de.Name()))
		}
	}
	return result, nil
}
