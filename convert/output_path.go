package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"chanfmt/common"
	"chanfmt/config"
	"chanfmt/state"
)

const maxSubjectSlug = 48

// nameValues holds variables available for output name template expansion.
type nameValues struct {
	Board      string
	Thread     int
	Subject    string
	Slug       string
	Format     string
	SourceFile string
	Time       time.Time
}

// buildOutputPath returns output file path for a thread. It uses either
// default naming scheme or user-defined template and unless NoDirs is
// requested keeps directory structure of "src" (relative to processed
// source) on output.
func buildOutputPath(doc *document, src, dst string, format common.OutputFmt, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	defaultFile := buildFileName(doc.Board, doc.Thread, doc.Subject, format)

	if env.Cfg == nil || env.Cfg.Output.NameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expandedName := expandOutputNameTemplate(doc, src, format, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, defaultFile)
	}
	return assemblePathWithSubdirs(outDir, expandedName, format)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

// buildFileName produces "<board>-<thread>[-<subject slug>]<ext>".
func buildFileName(board string, thread int, subject string, format common.OutputFmt) string {
	name := board + "-" + strconv.Itoa(thread)
	if s := subjectSlug(subject); s != "" {
		name += "-" + s
	}
	return config.CleanFileName(name) + format.Ext()
}

func subjectSlug(subject string) string {
	s := slug.Make(subject)
	if len(s) <= maxSubjectSlug {
		return s
	}
	s = s[:maxSubjectSlug]
	// do not leave partial word behind when possible
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "-")
}

func expandOutputNameTemplate(doc *document, src string, format common.OutputFmt, env *state.LocalEnv) string {
	expanded, err := expandNameTemplate(env.Cfg.Output.NameTemplate, newNameValues(doc, src, format))
	if err != nil {
		if env.Log != nil {
			env.Log.Warn("Unable to prepare output filename", zap.String(config.BoardKey, doc.Board), zap.Int(config.ThreadKey, doc.Thread), zap.Error(err))
		}
		return ""
	}
	return filepath.FromSlash(strings.TrimSpace(expanded))
}

func newNameValues(doc *document, src string, format common.OutputFmt) nameValues {
	v := nameValues{
		Board:      doc.Board,
		Thread:     doc.Thread,
		Subject:    doc.Subject,
		Slug:       subjectSlug(doc.Subject),
		Format:     format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
	}
	if len(doc.Posts) > 0 && doc.Posts[0].Time > 0 {
		v.Time = time.Unix(doc.Posts[0].Time, 0).UTC()
	}
	return v
}

func expandNameTemplate(field string, values nameValues) (string, error) {
	tmpl, err := template.New(config.OutputNameTemplateFieldName).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.OutputNameTemplateFieldName, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output
// path, cleaning segments as needed.
func assemblePathWithSubdirs(outDir, expandedName string, format common.OutputFmt) string {
	segments := splitPath(expandedName)
	if len(segments) == 0 {
		return outDir
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments[:len(segments)-1] {
		parts = append(parts, config.CleanFileName(segment))
	}
	parts = append(parts, config.CleanFileName(segments[len(segments)-1])+format.Ext())
	return filepath.Join(parts...)
}

// splitPath breaks path into its non-empty segments, parent references are
// dropped so expanded names cannot escape destination directory.
func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)
	for head, tail := filepath.Split(path); ; head, tail = filepath.Split(head) {
		if tail != "" && tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" || head == path {
			break
		}
		path = head
	}
	return segments
}
