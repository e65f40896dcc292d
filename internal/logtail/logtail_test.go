package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestTail(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "shelf.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: all},
		{name: "read all (negative)", maxLines: -1, expected: all},
		{name: "read partial (5)", maxLines: 5, expected: all[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: all},
		{name: "read more than exists (20)", maxLines: 20, expected: all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Tail() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tail() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTail_MissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Tail() error = %v, want nil", err)
	}
	if got != nil {
		t.Fatalf("Tail() = %v, want nil", got)
	}
}

func TestLineLevel(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   zapcore.Level
		wantOK bool
	}{
		{name: "console info", line: "2026-01-02T10:00:00.000Z\tINFO\treading list loaded\t{\"books\": 3}", want: zapcore.InfoLevel, wantOK: true},
		{name: "console warn", line: "2026-01-02T10:00:00.000Z\tWARN\tstored reading list unreadable", want: zapcore.WarnLevel, wantOK: true},
		{name: "json error", line: `{"level":"error","ts":1.7e9,"msg":"save failed"}`, want: zapcore.ErrorLevel, wantOK: true},
		{name: "json debug", line: `{"level":"debug","msg":"search"}`, want: zapcore.DebugLevel, wantOK: true},
		{name: "stack trace", line: "\tgithub.com/five82/shelf/internal/app.Run", wantOK: false},
		{name: "empty", line: "", wantOK: false},
		{name: "bad json", line: `{"level":`, wantOK: false},
		{name: "unknown level", line: "ts\tLOUD\tmsg", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineLevel(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("LineLevel() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("LineLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_KeepsContinuationLines(t *testing.T) {
	lines := []string{
		"t\tINFO\tstarted",
		"t\tERROR\tsave failed",
		"goroutine 1 [running]:",
		"t\tDEBUG\tnoise",
		"t\tWARN\tcorrupt list",
	}

	got := Filter(lines, zapcore.WarnLevel)
	want := []string{
		"t\tERROR\tsave failed",
		"goroutine 1 [running]:",
		"t\tWARN\tcorrupt list",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
}
