package convert

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"chanfmt/common"
	"chanfmt/post"
	"chanfmt/utils/debug"
)

// document is written for every processed thread.
type document struct {
	Board   string       `json:"board" yaml:"board"`
	Thread  int          `json:"thread" yaml:"thread"`
	Subject string       `json:"subject,omitempty" yaml:"subject,omitempty"`
	Posts   []*post.Post `json:"posts" yaml:"posts"`
}

func newDocument(board string, thread int, posts []*post.Post) *document {
	doc := &document{Board: board, Thread: thread, Posts: posts}
	if len(posts) > 0 && posts[0].IsOP() {
		doc.Subject = posts[0].Subject
	}
	return doc
}

func writeDocument(w io.Writer, format common.OutputFmt, doc *document) error {
	switch format {
	case common.OutputFmtJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("unable to encode json: %w", err)
		}
	case common.OutputFmtYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("unable to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("unable to encode yaml: %w", err)
		}
	case common.OutputFmtText:
		if _, err := dumpDocument(doc).WriteTo(w); err != nil {
			return fmt.Errorf("unable to write text dump: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

func dumpDocument(doc *document) *debug.TreeWriter {
	tw := debug.NewTreeWriter()
	tw.Line(0, "thread /%s/%d", doc.Board, doc.Thread)
	if doc.Subject != "" {
		tw.TextBlock(1, "subject", doc.Subject)
	}
	for _, p := range doc.Posts {
		dumpPost(tw, 1, p)
	}
	return tw
}

func dumpPost(tw *debug.TreeWriter, depth int, p *post.Post) {
	op := ""
	if p.IsOP() {
		op = " op"
	}
	tw.Line(depth, "post no=%d time=%d%s", p.No, p.Time, op)
	if p.BodyDropped {
		tw.Line(depth+1, "body dropped")
	}
	dumpRuns(tw, depth+1, "subject", p.SubjectRuns)
	dumpRuns(tw, depth+1, "header", p.HeaderRuns)
	dumpRuns(tw, depth+1, "comment", p.Comment)
	if len(p.ReplyTo) > 0 {
		tw.Line(depth+1, "reply to %v", p.ReplyTo)
	}
}

func dumpRuns(tw *debug.TreeWriter, depth int, label string, runs []post.Run) {
	if len(runs) == 0 {
		return
	}
	tw.Line(depth, "%s (%d runs)", label, len(runs))
	for _, r := range runs {
		tw.TextBlock(depth+1, "run", r.Text)
		dumpStyle(tw, depth+2, r.Style)
		for _, l := range r.Links {
			tw.Line(depth+2, "%s [%d:%d] %q => %v", l.Linkable.Kind, l.Start, l.End, l.Linkable.Key, l.Linkable.Value())
		}
	}
}

func dumpStyle(tw *debug.TreeWriter, depth int, s post.Style) {
	if s.IsZero() {
		return
	}
	flag := func(set bool, name string) string {
		if set {
			return name
		}
		return ""
	}
	color := func(c post.Color, name string) string {
		if c.IsSet() {
			return name + "=" + c.String()
		}
		return ""
	}
	size := ""
	if s.Size > 0 {
		size = fmt.Sprintf("size=%d", s.Size)
	}
	tw.Flags(depth, "style",
		color(s.Foreground, "fg"),
		color(s.Background, "bg"),
		flag(s.Bold, "bold"),
		flag(s.Underline, "underline"),
		flag(s.Strikethrough, "strikethrough"),
		flag(s.Monospace, "monospace"),
		size,
	)
}
