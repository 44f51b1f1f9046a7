package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger. Level acepta trace, debug, info, warn y error;
// un valor desconocido cae en info.
type Config struct {
	Env   string // development -> consola legible; cualquier otro -> JSON
	Level string
}

// Logger wrapper delgado sobre zerolog, pensado para inyectarse en los casos
// de uso en lugar del logger global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger y redirige también el logger global de zerolog,
// de modo que las librerías que lo usen escriban por la misma salida.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos (por ejemplo el módulo).
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}
