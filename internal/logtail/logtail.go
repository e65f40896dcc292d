package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Tail returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields nothing.
func Tail(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	return TailReader(file, maxLines)
}

// TailReader is Tail over an arbitrary reader.
func TailReader(r io.Reader, maxLines int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// LineLevel extracts the level of a line written by shelf's logger, in
// either the console or the JSON encoding. ok is false for lines that
// carry no recognizable level, such as stack traces.
func LineLevel(line string) (zapcore.Level, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return zapcore.InfoLevel, false
	}

	if strings.HasPrefix(trimmed, "{") {
		var entry struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal([]byte(trimmed), &entry); err != nil || entry.Level == "" {
			return zapcore.InfoLevel, false
		}
		lvl, err := zapcore.ParseLevel(entry.Level)
		if err != nil {
			return zapcore.InfoLevel, false
		}
		return lvl, true
	}

	// console encoding: timestamp<TAB>LEVEL<TAB>...
	fields := strings.SplitN(trimmed, "\t", 3)
	if len(fields) < 2 {
		return zapcore.InfoLevel, false
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(fields[1])))
	if err != nil {
		return zapcore.InfoLevel, false
	}
	return lvl, true
}

// Filter keeps lines at or above min. Lines without a level follow the
// decision made for the line before them, so multi-line entries stay whole.
func Filter(lines []string, min zapcore.Level) []string {
	var out []string
	keep := false
	for _, line := range lines {
		if lvl, ok := LineLevel(line); ok {
			keep = lvl >= min
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}
