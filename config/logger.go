package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"chanfmt/misc"
)

// Field keys used across the program to identify what is being parsed. On
// console they are folded into a single "post" reference.
const (
	BoardKey  = "board"
	ThreadKey = "thread"
	PostKey   = "post"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare returns program logger: console output split between stdout and
// stderr plus optional file log. When debug report is requested file log is
// always at debug level and both log and panic output end up in the report.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	stdout, stderr := consoleCores(conf.ConsoleLogger.Level)

	level, mode := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		level, mode = "debug", "overwrite"
	}
	file, redirected, err := fileCore(conf.FileLogger.Destination, level, mode, rpt)
	if err != nil {
		return nil, err
	}

	log := zap.New(zapcore.NewTee(stderr, stdout, file), zap.AddCaller())
	if len(redirected) != 0 {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

// colorRequested honors NO_COLOR convention, see https://no-color.org.
func colorRequested() bool {
	return len(os.Getenv("NO_COLOR")) == 0
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	}
	return ec
}

// consoleCores returns cores for informational (stdout) and error (stderr)
// messages.
func consoleCores(level string) (stdout, stderr zapcore.Core) {
	var lowest zapcore.Level
	switch level {
	case "normal":
		lowest = zapcore.InfoLevel
	case "debug":
		lowest = zapcore.DebugLevel
	default:
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}

	stdout = zapcore.NewCore(newConsoleEncoder(consoleEncoderConfig(os.Stdout), false), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lowest <= lvl && lvl < zapcore.ErrorLevel
		}))
	stderr = zapcore.NewCore(newConsoleEncoder(consoleEncoderConfig(os.Stderr), true), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return stdout, stderr
}

func openLogFile(name, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(name, flags, 0644)
}

// fileCore prepares file logging. When destination cannot be opened log goes
// to temporary file and its name is returned as "redirected".
func fileCore(destination, level, mode string, rpt *Report) (core zapcore.Core, redirected string, err error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zap.DebugLevel
	case "normal":
		lvl = zap.InfoLevel
	default:
		return zapcore.NewNopCore(), "", nil
	}

	capturePanics(filepath.Dir(destination), mode, rpt)

	f, err := openLogFile(destination, mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
			return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", destination, err)
		}
		redirected = f.Name()
	}
	rpt.Store("final.log", f.Name())

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(lvl)), redirected, nil
}

// capturePanics sends runtime crash output next to the log when possible.
func capturePanics(dir, mode string, rpt *Report) {
	f, err := openLogFile(filepath.Join(dir, misc.GetAppName()+"-panic.log"), mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			return
		}
	}
	defer f.Close()
	debug.SetCrashOutput(f, debug.CrashOptions{})
	rpt.Store("panic.log", f.Name())
}

// consoleEnc shortens what goes to console: board, thread and post fields
// become single "/board/thread#post" reference and, for errors, verbose error
// details are dropped.
type consoleEnc struct {
	zapcore.Encoder
	plainErrors bool
}

func newConsoleEncoder(cfg zapcore.EncoderConfig, plainErrors bool) zapcore.Encoder {
	return consoleEnc{Encoder: zapcore.NewConsoleEncoder(cfg), plainErrors: plainErrors}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{Encoder: c.Encoder.Clone(), plainErrors: c.plainErrors}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	return c.Encoder.EncodeEntry(ent, c.rewriteFields(fields))
}

func (c consoleEnc) rewriteFields(fields []zapcore.Field) []zapcore.Field {
	var (
		board, thread, post string
		at                  = -1
	)
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		switch {
		case f.Key == BoardKey && f.Type == zapcore.StringType:
			board = f.String
		case f.Key == ThreadKey && isInteger(f.Type):
			thread = strconv.FormatInt(f.Integer, 10)
		case f.Key == PostKey && isInteger(f.Type):
			post = strconv.FormatInt(f.Integer, 10)
		default:
			if c.plainErrors && f.Type == zapcore.ErrorType {
				if e, ok := f.Interface.(error); ok {
					f.Interface = errors.New(e.Error())
				}
			}
			out = append(out, f)
			continue
		}
		if at < 0 {
			at = len(out)
		}
	}
	if at < 0 {
		return out
	}
	return slices.Insert(out, at, zap.String(PostKey, postRef(board, thread, post)))
}

func isInteger(t zapcore.FieldType) bool {
	switch t {
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return true
	}
	return false
}

// postRef formats "/g/100#101" or "/g/101" when thread is not known, missing
// parts are omitted.
func postRef(board, thread, post string) string {
	var ref string
	if len(board) > 0 {
		ref = "/" + board + "/"
	}
	switch {
	case len(thread) > 0 && len(post) > 0:
		ref += thread + "#" + post
	case len(thread) > 0:
		ref += thread
	default:
		ref += post
	}
	return ref
}
