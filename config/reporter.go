package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"chanfmt/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{entries: make(map[string]entry), file: f}, nil
}

// entry is either a file system path (file or directory) or data kept in
// memory.
type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

func (e entry) inMemory() bool {
	return e.data != nil
}

func (e entry) source() string {
	if e.inMemory() {
		return fmt.Sprintf("<%d bytes>", len(e.data))
	}
	return e.original + " : " + e.actual
}

// Report accumulates information necessary to prepare debug report: logs,
// configuration, produced documents and comment bodies parser had to drop.
// It is safe to use from parsing workers. Nil report quietly ignores
// everything, this is what happens when no report has been requested.
type Report struct {
	mu      sync.Mutex
	entries map[string]entry
	file    *os.File
}

// Close writes out the report archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.finalize()
	return multierr.Append(err, r.file.Close())
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store saves path to file or directory to be put in the final archive later.
// Storing different path under the same name is a programming error.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}

	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData saves data to be put in the final archive later under requested
// name. Repeated names get numeric suffix, actual name is returned.
func (r *Report) StoreData(name string, data []byte) string {
	if r == nil {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if data == nil {
		data = []byte{}
	}
	stored := name
	ext := filepath.Ext(name)
	for i := 1; ; i++ {
		if _, exists := r.entries[stored]; !exists {
			break
		}
		stored = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), i, ext)
	}
	r.entries[stored] = entry{data: data, stamp: time.Now()}
	return stored
}

// StoreComment keeps raw body of the comment which could not be parsed.
func (r *Report) StoreComment(board string, no int, body string) string {
	return r.StoreData(fmt.Sprintf("dropped/%s-%d.html", board, no), []byte(body))
}

func (r *Report) finalize() (err error) {
	arc := zip.NewWriter(r.file)
	defer func() {
		err = multierr.Append(err, arc.Close())
	}()

	names := slices.Sorted(maps.Keys(r.entries))

	now := time.Now()
	if err := writeZipFile(arc, "MANIFEST", now, bytes.NewReader(manifest(names, r.entries, now))); err != nil {
		return err
	}
	// in the same order as in manifest
	for _, name := range names {
		if err := writeEntry(arc, name, r.entries[name]); err != nil {
			return err
		}
	}
	return nil
}

func manifest(names []string, entries map[string]entry, now time.Time) []byte {
	buf := new(bytes.Buffer)
	for _, name := range names {
		e := entries[name]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(buf, "%s\t%s\t%s\n", stamp.UTC().Format(time.UnixDate), name, e.source())
	}
	return buf.Bytes()
}

func writeEntry(arc *zip.Writer, name string, e entry) error {
	if e.inMemory() {
		return writeZipFile(arc, name, e.stamp, bytes.NewReader(e.data))
	}

	info, err := os.Stat(e.actual)
	if err != nil {
		// files which never appeared are skipped
		return nil
	}
	switch {
	case info.Mode().IsRegular():
		return copyFile(arc, name, e.actual, info.ModTime())
	case info.IsDir():
		return copyDir(arc, name, e.actual)
	}
	return nil
}

func writeZipFile(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func copyFile(arc *zip.Writer, name, path string, t time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeZipFile(arc, name, t, f)
}

// copyDir puts regular files from directory tree under "name".
func copyDir(arc *zip.Writer, name, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		return copyFile(arc, filepath.ToSlash(filepath.Join(name, rel)), p, info.ModTime())
	})
}
