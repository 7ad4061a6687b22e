package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// formatWriter wraps output for format. Console output is colored unless noColor is set.
func formatWriter(format LogFormat, output io.Writer, noColor bool) io.Writer {
	if format == FormatJSON {
		return output
	}
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
}

// consoleWriter writes to output, stderr when nil. Colors are only used on stderr.
func consoleWriter(format LogFormat, output io.Writer) io.Writer {
	if output == nil {
		return formatWriter(format, os.Stderr, false)
	}
	return formatWriter(format, output, true)
}

// fileWriter creates a rotating file writer. The returned closer releases
// the underlying file.
func fileWriter(cfg LoggerConfig) (io.Writer, io.Closer) {
	// If directory creation fails lumberjack reports it on first write
	_ = os.MkdirAll(filepath.Dir(cfg.FilePath), 0755)

	rotating := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: cfg.MaxBackups,
	}
	return formatWriter(cfg.Format, rotating, true), rotating
}
