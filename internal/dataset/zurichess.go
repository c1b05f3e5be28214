package dataset

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/countereval/countereval/internal/blobio"
	"github.com/countereval/countereval/internal/domain"
)

// ZurichessDatasetProvider reads labelled EPD lines such as
// `rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - c9 "1/2-1/2";`.
// A separate validation file gives a common unit of measurement for cost.
type ZurichessDatasetProvider struct {
	FilePath string
}

func (dp *ZurichessDatasetProvider) Load(
	ctx context.Context,
	dataset chan<- domain.DatasetItem,
) error {
	file, err := blobio.Open(dp.FilePath)
	if err != nil {
		return err
	}
	defer file.Close()

	var scanner = bufio.NewScanner(file)
	for scanner.Scan() {
		var s = scanner.Text()
		if strings.TrimSpace(s) == "" {
			continue
		}
		item, err := ParseEntry(s)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case dataset <- item:
		}
	}
	return scanner.Err()
}

// ParseEntry parses a FEN followed by a quoted or bracketed game result.
func ParseEntry(s string) (domain.DatasetItem, error) {
	var index = strings.IndexAny(s, "\"[")
	if index < 0 {
		return domain.DatasetItem{}, fmt.Errorf("zurichessParser failed %v", s)
	}

	var fen = strings.TrimSpace(s[:index])
	fen = strings.TrimSuffix(fen, " c9")
	var strScore = s[index+1:]

	var prob float64
	switch {
	case strings.HasPrefix(strScore, "1/2-1/2"), strings.HasPrefix(strScore, "0.5"):
		prob = 0.5
	case strings.HasPrefix(strScore, "1-0"), strings.HasPrefix(strScore, "1.0"):
		prob = 1.0
	case strings.HasPrefix(strScore, "0-1"), strings.HasPrefix(strScore, "0.0"):
		prob = 0.0
	default:
		return domain.DatasetItem{}, fmt.Errorf("zurichessParser failed %v", s)
	}
	return domain.DatasetItem{Fen: fen, Target: prob}, nil
}
