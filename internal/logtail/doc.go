// Package logtail reads the end of shelf's log file.
//
// Tail keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) however large the log grows. Lines come back in
// chronological order. A missing file is not an error; it simply has no lines.
//
//	lines, err := logtail.Tail(cfg.LogPath(), 200)
//	lines = logtail.Filter(lines, zapcore.WarnLevel)
//
// LineLevel understands both encodings the logging package writes: the
// tab-separated console format and one JSON object per line. Filter uses it
// to drop entries below a level while keeping unlevelled continuation lines
// (stack traces) attached to the entry above them.
package logtail
