package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Tail returns at most maxLines entries from the end of the log at path,
// keeping only entries at minLevel or more severe. A missing file yields no
// lines. maxLines <= 0 returns every matching entry.
func Tail(path string, maxLines int, minLevel logrus.Level) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	var kept []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !atLeast(line, minLevel) {
			continue
		}
		kept = append(kept, line)
		if maxLines > 0 && len(kept) > 2*maxLines {
			kept = append(kept[:0], kept[len(kept)-maxLines:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if maxLines > 0 && len(kept) > maxLines {
		kept = kept[len(kept)-maxLines:]
	}
	return kept, nil
}

// atLeast reports whether a text-formatted entry is at least as severe as
// min. Lines without a level field, such as wrapped output, are kept.
func atLeast(line string, min logrus.Level) bool {
	if min >= logrus.TraceLevel {
		return true
	}
	level, ok := LevelOf(line)
	if !ok {
		return true
	}
	return level <= min
}

// LevelOf returns the level field of a text-formatted entry.
func LevelOf(line string) (logrus.Level, bool) {
	idx := strings.Index(line, "level=")
	if idx < 0 {
		return 0, false
	}
	field := line[idx+len("level="):]
	if end := strings.IndexByte(field, ' '); end >= 0 {
		field = field[:end]
	}
	level, err := logrus.ParseLevel(strings.Trim(field, `"`))
	if err != nil {
		return 0, false
	}
	return level, true
}
