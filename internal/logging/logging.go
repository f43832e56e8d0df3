// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger output.
type Options struct {
	Level string
	// File enables rotated file output in addition to stdout.
	File string
	JSON bool
}

// Setup applies opts to the standard logrus logger and returns the writer in use.
func Setup(opts Options) io.Writer {
	level, err := log.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if opts.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		})
	}
	log.SetOutput(out)
	return out
}
