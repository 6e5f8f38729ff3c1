// Package logger builds the structured zap logger shared by the companyform
// binaries.
//
// Events are written as JSON to <dir>/companyform-YYYY-MM-DD.log, rotated and
// compressed by lumberjack. With tee (or without a log directory) the same
// events are mirrored to stderr through a console encoder so stdout stays
// free for command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects sinks and verbosity.
type Options struct {
	Dir   string
	Level string
	Tee   bool
	// Console overrides stderr for the console core.
	Console io.Writer
}

// New returns a logger for opts and installs it with zap.ReplaceGlobals.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		level = parsed
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	errOut := zapcore.Lock(os.Stderr)

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, err
		}
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, "companyform-"+time.Now().Format("2006-01-02")+".log"),
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     14, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level))
		errOut = sink
	}

	if opts.Tee || opts.Dir == "" {
		var console zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
		if opts.Console != nil {
			console = zapcore.AddSync(opts.Console)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), console, level))
	}

	z := zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(errOut))
	zap.ReplaceGlobals(z)

	z.Debug("logger online", zap.String("dir", opts.Dir), zap.Bool("tee", opts.Tee))
	return z, nil
}
