// Package state defines shared program state.
package state

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"chanfmt/common"
	"chanfmt/config"
	"chanfmt/savedreply"
	"chanfmt/theme"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by parse subcommand
	NoDirs    bool
	Overwrite bool
	Board     string
	Format    common.OutputFmt
	Theme     *theme.Theme
	Saved     savedreply.Lookup

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// BoardFor returns board requested on command line, or "inferred" when
// there was none.
func (e *LocalEnv) BoardFor(inferred string) string {
	if len(e.Board) > 0 {
		return e.Board
	}
	return inferred
}

// Workers returns how many posts could be parsed at the same time.
func (e *LocalEnv) Workers() int {
	if e.Cfg != nil && e.Cfg.Parser.Workers > 0 {
		return e.Cfg.Parser.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
