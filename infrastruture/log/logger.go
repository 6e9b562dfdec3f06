// Package log provides the prefixed, coloured console logger every subsystem
// writes through.
package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/rs/zerolog"
)

const colorReset = "\033[0m"

var ErrEmptyPrefix = errors.New("logger prefix must not be empty")

// Logger writes one line per entry: time, level and the message behind a
// coloured [PREFIX] tag.
type Logger struct {
	z zerolog.Logger
}

var _ i.Logger = &Logger{}

// New creates a logger that writes to w. An empty color disables colouring.
func New(prefix, color string, w io.Writer) (i.Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	tag := fmt.Sprintf("[%s]", prefix)
	if color != "" {
		tag = color + tag + colorReset
	}

	output := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.NoColor = color == ""
		cw.TimeFormat = time.RFC3339
		cw.FormatMessage = func(m interface{}) string {
			return fmt.Sprintf("%s %v", tag, m)
		}
	})

	return &Logger{z: zerolog.New(output).With().Timestamp().Logger()}, nil
}

// SetLevel sets the threshold of every logger. Unknown levels select info.
func SetLevel(level string) {
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
}

func (l *Logger) Info(message string) { l.z.Info().Msg(message) }

func (l *Logger) Warning(message string) { l.z.Warn().Msg(message) }

func (l *Logger) Error(message string) { l.z.Error().Msg(message) }

func (l *Logger) Debug(message string) { l.z.Debug().Msg(message) }
