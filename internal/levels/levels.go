// internal/levels/levels.go
//
// Level pack loading and access.
//
// Behavior:
//   1. If LEVELS_FILE is set, load levels from that file.
//   2. Otherwise use the pack embedded in assets/levels.txt.
//
// Format: one level per line, "<rows> <scheme>"; blank lines and lines
// starting with '#' are ignored. Lines whose scheme does not load are
// skipped with a warning.
//
// Initialization is run once (sync.Once).

package levels

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/flow/assets"
	"github.com/robalobadob/flow/internal/game"
)

// Level is one bundled puzzle.
type Level struct {
	Rows   int    `json:"rows"`
	Scheme string `json:"scheme"`
}

var (
	initOnce   sync.Once
	levels     []Level
	initialErr error
)

// ErrNoLevels is returned by Init when nothing could be loaded.
var ErrNoLevels = errors.New("levels: pack is empty")

// Init loads the level pack exactly once.
func Init() error {
	initOnce.Do(func() {
		var lines []string
		if path := os.Getenv("LEVELS_FILE"); path != "" {
			lines, initialErr = readFile(path)
		} else {
			lines, initialErr = assets.LevelLines()
		}
		if initialErr != nil {
			return
		}
		levels = Parse(lines)
		if len(levels) == 0 {
			initialErr = ErrNoLevels
		}
	})
	return initialErr
}

// Parse turns "<rows> <scheme>" lines into levels, skipping invalid ones.
func Parse(lines []string) []Level {
	out := make([]Level, 0, len(lines))
	for i, line := range lines {
		lv, err := parseLine(line)
		if err != nil {
			log.Warn().Err(err).Int("line", i+1).Msg("skip level")
			continue
		}
		out = append(out, lv)
	}
	return out
}

func parseLine(line string) (Level, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Level{}, fmt.Errorf("want \"<rows> <scheme>\", got %q", line)
	}
	rows, err := strconv.Atoi(fields[0])
	if err != nil {
		return Level{}, fmt.Errorf("rows %q: %w", fields[0], err)
	}
	scheme := strings.Join(fields[1:], "")
	if _, err := game.ParseScheme(rows, scheme); err != nil {
		return Level{}, err
	}
	return Level{Rows: rows, Scheme: scheme}, nil
}

// readFile loads the non-empty, non-comment lines of a level file.
func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// Count returns the number of loaded levels.
func Count() int { return len(levels) }

// Get returns level i (0-based).
func Get(i int) (Level, bool) {
	if i < 0 || i >= len(levels) {
		return Level{}, false
	}
	return levels[i], true
}

// Random returns a random level; ok is false when the pack is empty.
func Random() (Level, bool) {
	if len(levels) == 0 {
		return Level{}, false
	}
	return levels[rand.IntN(len(levels))], true
}
