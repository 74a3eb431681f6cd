// assets/embed.go
//
// Files compiled into the binary:
//   - levels.txt: the bundled level pack ("rows scheme" per line).
//   - sql/*.sql:  database migrations, applied in lexical order.

package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed levels.txt sql/*.sql
var FS embed.FS

// readLines returns the trimmed non-empty, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
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

// LevelLines returns the raw lines of the bundled level pack.
func LevelLines() ([]string, error) {
	return readLines("levels.txt")
}

// Migrations exposes the sql directory as its own filesystem root.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
