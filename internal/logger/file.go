package logger

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file.
const (
	maxFileSizeMB = 5
	maxBackups    = 3
	maxAgeDays    = 14
)

// OpenFile returns a rotating writer for path. The terminal belongs to the
// UI, so logs go to a file unless path is "" or "stderr".
// The returned closer must be closed on exit.
func OpenFile(path string) (io.WriteCloser, error) {
	if path == "" || path == "stderr" {
		return nopCloser{os.Stderr}, nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   false,
	}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
