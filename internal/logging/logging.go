package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Name  string
	Level string
	// File, when set, receives a rotated copy of everything written to Output.
	File   string
	Output io.Writer
	JSON   bool
}

// New builds the root logger. Components derive their own with Named.
func New(options Options) (hclog.Logger, io.Closer) {
	output := options.Output
	if output == nil {
		output = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if options.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   options.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		output = io.MultiWriter(output, rotated)
		closer = rotated
	}

	level := hclog.LevelFromString(options.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       options.Name,
		Output:     output,
		Level:      level,
		JSONFormat: options.JSON,
	})
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
