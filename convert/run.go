package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chanfmt/archive"
	"chanfmt/comment"
	"chanfmt/common"
	"chanfmt/config"
	"chanfmt/post"
	"chanfmt/savedreply"
	"chanfmt/state"
	"chanfmt/theme"
	"chanfmt/thread"
)

const unknownBoard = "unknown"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Format, err = common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to json", zap.Error(err))
		env.Format = common.OutputFmtJson
	}

	if name := cmd.String("theme"); len(name) > 0 {
		env.Cfg.Theme.Palette = name
	}
	if env.Theme, err = theme.FromConfig(&env.Cfg.Theme); err != nil {
		return fmt.Errorf("unable to prepare theme: %w", err)
	}

	db := env.Cfg.SavedReplies.Database
	if path := cmd.String("saved-replies"); len(path) > 0 {
		db = path
	}
	if len(db) > 0 {
		set, err := savedreply.Load(ctx, db, log)
		if err != nil {
			return fmt.Errorf("unable to load saved replies: %w", err)
		}
		env.Saved = set
	}

	if tmpl := cmd.String("name-template"); len(tmpl) > 0 {
		env.Cfg.Output.NameTemplate = tmpl
	}

	env.Board = strings.Trim(cmd.String("board"), "/")
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process handles the core logic independently of CLI framework. It
// determines the input type (directory, archive, or single file) and
// processes accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		isThread, err := isThreadFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if isThread && len(tail) == 0 {
			// thread dump cannot have tail
			if file, err := os.Open(head); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			} else {
				defer file.Close()
				if err := processThread(ctx, file, filepath.Base(head), boardFromPath(head), dst, log); err != nil {
					log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
				}
			}
			break
		}
		return fmt.Errorf("input was not recognized as thread dump (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding thread dumps and archives and
// processes them in natural order of their paths.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortStableFunc(files, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	count := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if processDirEntry(ctx, dir, path, dst, log) {
			count++
		}
	}
	if count == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return nil
}

// processDirEntry returns true when path was recognized as something to
// process.
func processDirEntry(ctx context.Context, dir, path, dst string, log *zap.Logger) bool {
	isArchive, err := isArchiveFile(path)
	if err != nil {
		// checking format - but cannot open target file
		log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
		return false
	}
	if isArchive {
		if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, log); err != nil {
			log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
		}
		return true
	}

	isThread, err := isThreadFile(path)
	if err != nil {
		log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
		return false
	}
	if !isThread {
		log.Debug("Skipping file, not recognized as thread dump or archive", zap.String("file", path))
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		return true
	}
	defer file.Close()

	src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
	if err := processThread(ctx, file, src, boardFromPath(path), dst, log); err != nil {
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
	}
	return true
}

// processArchive walks all files inside archive, finds thread dumps under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	// entries in archive root get board from archive name
	root := strings.TrimSuffix(path, filepath.Ext(path))

	err = archive.Walk(path, pathIn, func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		isThread, err := isThreadInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		if !isThread {
			log.Debug("Skipping file, not recognized as thread dump", zap.String("archive", archive), zap.String("file", f.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		name := filepath.FromSlash(f.Name)
		board := boardFromPath(filepath.Join(root, name))
		if err := processThread(ctx, r, filepath.Join(pathOut, name), board, dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

// processThread processes single thread dump. "src" is part of the source
// path (always including file name) relative to the original path, "board"
// is used when board was not set on command line. "dst" is the destination
// directory.
func processThread(ctx context.Context, r io.Reader, src, board, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)
	board = env.BoardFor(board)

	var outputName string

	log.Info("Parsing starting", zap.String("from", src), zap.String(config.BoardKey, board))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Parsing ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("parsing panic: %v", r)
		} else if rerr == nil {
			log.Info("Parsing completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	th, err := thread.Decode(r, board)
	if err != nil {
		return fmt.Errorf("unable to read thread (%s): %w", src, err)
	}

	posts, err := parsePosts(ctx, th.Builders(), env, log)
	if err != nil {
		return err
	}

	doc := newDocument(th.Board, th.OpID(), posts)
	outputName = buildOutputPath(doc, src, dst, env.Format, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := writeDocument(&buf, env.Format, doc); err != nil {
		return fmt.Errorf("unable to generate output: %w", err)
	}
	if err := os.WriteFile(outputName, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store result for debugging
	name := filepath.Base(outputName)
	if rel, err := filepath.Rel(dst, outputName); err == nil {
		name = filepath.ToSlash(rel)
	}
	env.Rpt.Store("result/"+name, outputName)
	return nil
}

// parsePosts parses comments concurrently, results keep thread order.
// Bodies which could not be parsed are stored in debug report.
func parsePosts(ctx context.Context, builders []*post.Builder, env *state.LocalEnv, log *zap.Logger) ([]*post.Post, error) {
	p := comment.NewParser(log,
		comment.WithTheme(env.Theme),
		comment.WithSettings(comment.SettingsFromConfig(&env.Cfg.Parser)),
		comment.WithSavedReplies(env.Saved),
	)

	// keep raw bodies, parser unescapes header fields in place only
	raw := make([]string, len(builders))
	for i, b := range builders {
		raw[i] = b.Comment
	}

	posts := make([]*post.Post, len(builders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(env.Workers())
	for i, b := range builders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			posts[i] = p.Parse(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, res := range posts {
		if res.BodyDropped {
			env.Rpt.StoreComment(res.Board, res.No, raw[i])
		}
	}
	return posts, nil
}

// boardFromPath guesses board code from the name of directory holding the
// thread dump.
func boardFromPath(path string) string {
	dir := filepath.Base(filepath.Dir(path))
	if dir == "." || dir == string(filepath.Separator) || len(dir) == 0 {
		return unknownBoard
	}
	return dir
}
