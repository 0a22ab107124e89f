package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"chanfmt/common"
	"chanfmt/config"
	"chanfmt/convert"
	"chanfmt/misc"
	"chanfmt/state"
	"chanfmt/theme"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "formats imageboard thread dumps into styled text runs",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive with dropped comments"},
		},
		Commands: []*cli.Command{
			parseCommand(),
			markCommand(),
			dumpConfigCommand(),
		},
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:         "parse",
		Usage:        "Parses thread dump(s) and writes formatted posts",
		OnUsageError: usageErrorHandler,
		Action:       convert.Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Value: common.OutputFmtJson.String(),
				Usage: "output `TYPE` (supported types: " + strings.Join(common.OutputFmtNames(), ", ") + ")"},
			&cli.StringFlag{Name: "board", Aliases: []string{"b"}, Usage: "board `CODE` for all threads, by default taken from the name of directory holding dump"},
			&cli.StringFlag{Name: "theme", Usage: "color theme `NAME` (" + strings.Join(theme.Names(), ", ") + "), overrides configuration"},
			&cli.StringFlag{Name: "saved-replies", Aliases: []string{"sr"}, Usage: "SQLite `DB` with own posts, overrides configuration"},
			&cli.StringFlag{Name: "name-template", Aliases: []string{"nt"}, Usage: "output file name `TEMPLATE`, overrides configuration"},
			&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "when producing output do not keep input directory structure"},
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exits, overwrite files"},
		},
		ArgsUsage: "SOURCE [DESTINATION]",
		CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to thread dump(s) to process (JSON as served by the read API: {"posts": [...]}), following formats are supported:
        path to a file: "[path_to_file]thread.json"
        path to a directory: "[path_to_directory]directory" - recursively process all files under directory (symbolic links are not followed)
        path to archive with path inside archive to a particular dump: "[path_to_archive]archive.zip[path_in_archive]/thread.json"
        path to archive with path inside archive: "[path_to_archive]archive.zip[path_in_archive]" - recursively process all dumps under archive path

	Files are processed in natural order of their names, processing of
	archives inside archives is not supported.

DESTINATION:
    always a path, output file name(s) will be "<board>-<thread>[-<subject>].<ext>"
    unless name template is configured, if absent - current working directory

NAME TEMPLATE:
    Go text/template with slim-sprig functions, available fields are
    .Board, .Thread, .Subject, .Slug, .Format, .SourceFile and .Time (OP post
    time), "/" in expanded name creates subdirectories, extension is added
`, cli.CommandHelpTemplate),
	}
}

func markCommand() *cli.Command {
	return &cli.Command{
		Name:         "mark",
		Usage:        "Records posts as own replies in saved replies database",
		OnUsageError: usageErrorHandler,
		Action:       markReplies,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "SQLite `DB` to update, by default one from configuration"},
			&cli.StringFlag{Name: "board", Aliases: []string{"b"}, Required: true, Usage: "board `CODE` of the posts"},
		},
		ArgsUsage: "NO [NO...]",
	}
}

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Dumps either default or actual configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		OnUsageError: usageErrorHandler,
		Action:       outputConfiguration,
		ArgsUsage:    "DESTINATION",
		CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
	}
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var out io.Writer = os.Stdout
	fname := cmd.Args().Get(0)
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	} else {
		fname = "STDOUT"
	}

	defaults := cmd.Bool("default")
	env.Log.Info("Outputing configuration", zap.Bool("default", defaults), zap.String("file", fname))
	return writeConfiguration(out, defaults, env.Cfg)
}

// writeConfiguration outputs either embedded default configuration or
// "cfg".
func writeConfiguration(w io.Writer, defaults bool, cfg *config.Config) error {
	var (
		data []byte
		err  error
	)
	if defaults {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
