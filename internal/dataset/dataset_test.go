package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/countereval/countereval/internal/domain"
	"github.com/notnil/chess"
)

const testPgn = `[Event "test"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "a"]
[Black "b"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Nf6 4. Ng5 d5 5. exd5 Nxd5 6. Nxf7 Kxf7 7. Qf3+ Ke6 8. Nc3 1-0

[Event "unfinished"]
[Site "?"]
[Date "2024.01.01"]
[Round "2"]
[White "a"]
[Black "b"]
[Result "*"]

1. d4 d5 *
`

func TestParseEntry(t *testing.T) {
	tests := []struct {
		line    string
		fen     string
		target  float64
		wantErr bool
	}{
		{`4k3/8/8/8/8/8/8/4K3 w - - c9 "1/2-1/2";`, "4k3/8/8/8/8/8/8/4K3 w - -", 0.5, false},
		{`4k3/8/8/8/8/8/8/R3K3 w - - c9 "1-0";`, "4k3/8/8/8/8/8/8/R3K3 w - -", 1, false},
		{`4k3/8/8/8/8/8/8/r3K3 w - - 0 1 [0.0]`, "4k3/8/8/8/8/8/8/r3K3 w - - 0 1", 0, false},
		{`4k3/8/8/8/8/8/8/4K3 w - -`, "", 0, true},
		{`4k3/8/8/8/8/8/8/4K3 w - - "2-0"`, "", 0, true},
	}
	for _, tt := range tests {
		item, err := ParseEntry(tt.line)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEntry(%q) error = %v", tt.line, err)
			continue
		}
		if !tt.wantErr && (item.Fen != tt.fen || item.Target != tt.target) {
			t.Errorf("ParseEntry(%q) = %+v", tt.line, item)
		}
	}
}

func collect(t *testing.T, load func(context.Context, chan<- domain.DatasetItem) error) []domain.DatasetItem {
	t.Helper()
	var ch = make(chan domain.DatasetItem, 1024)
	if err := load(context.Background(), ch); err != nil {
		t.Fatal(err)
	}
	close(ch)
	var result []domain.DatasetItem
	for item := range ch {
		result = append(result, item)
	}
	return result
}

func TestZurichessDatasetProvider(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "quiet.epd")
	var content = "4k3/8/8/8/8/8/8/R3K3 w - - c9 \"1-0\";\n\n4k3/8/8/8/8/8/8/r3K3 b - - c9 \"0-1\";\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	var dp = &ZurichessDatasetProvider{FilePath: path}
	var items = collect(t, dp.Load)
	if len(items) != 2 || items[0].Target != 1 || items[1].Target != 0 {
		t.Errorf("got %+v", items)
	}
}

func TestPgnDatasetProvider(t *testing.T) {
	var dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "games.pgn"), []byte(testPgn), 0o644); err != nil {
		t.Fatal(err)
	}

	var dp = &PgnDatasetProvider{GamesPath: dir, Threads: 2}
	var items = collect(t, dp.Load)
	// captures and the position in check are skipped, the unfinished game is ignored
	if len(items) != 10 {
		t.Errorf("got %v positions, want 10", len(items))
	}
	for _, item := range items {
		if item.Target != 1 {
			t.Errorf("%v: target %v", item.Fen, item.Target)
		}
	}

	dp = &PgnDatasetProvider{GamesPath: dir, Threads: 2, MaxPosCount: 3, SkipPlies: 2}
	items = collect(t, dp.Load)
	if len(items) != 3 {
		t.Errorf("got %v positions, want 3", len(items))
	}
}

func TestWalkPgnFileReadsToEnd(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "one.pgn")
	if err := os.WriteFile(path, []byte(testPgn), 0o644); err != nil {
		t.Fatal(err)
	}
	var games = make(chan *chess.Game, 8)
	n, err := walkPgnFile(context.Background(), path, games)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("got %v games, want 2", n)
	}

	var dp = &PgnDatasetProvider{GamesPath: path, Threads: 1}
	if items := collect(t, dp.Load); len(items) != 10 {
		t.Errorf("got %v positions from a single file, want 10", len(items))
	}
}
