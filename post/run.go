package post

import (
	"strings"
)

// Style is a set of visual attributes applied to the whole Run. Zero value
// is default (unstyled) text.
type Style struct {
	Foreground    Color `json:"fg,omitempty" yaml:"fg,omitempty"`
	Background    Color `json:"bg,omitempty" yaml:"bg,omitempty"`
	Bold          bool  `json:"bold,omitempty" yaml:"bold,omitempty"`
	Underline     bool  `json:"underline,omitempty" yaml:"underline,omitempty"`
	Strikethrough bool  `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Monospace     bool  `json:"monospace,omitempty" yaml:"monospace,omitempty"`
	// Size is absolute text size in px, 0 keeps default size.
	Size int `json:"size,omitempty" yaml:"size,omitempty"`
}

func (s Style) IsZero() bool {
	return s == Style{}
}

// LinkSpan places Linkable over [Start, End) byte range of the owning Run
// text.
type LinkSpan struct {
	Start    int      `json:"start" yaml:"start"`
	End      int      `json:"end" yaml:"end"`
	Linkable Linkable `json:"linkable" yaml:"linkable"`
}

// Run is a piece of text sharing a single Style, the unit of parser output.
// Order of runs in a sequence is reading order.
type Run struct {
	Text  string     `json:"text" yaml:"text"`
	Style Style      `json:"style,omitzero" yaml:"style,omitempty"`
	Links []LinkSpan `json:"links,omitempty" yaml:"links,omitempty"`
}

func Plain(text string) Run {
	return Run{Text: text}
}

func Styled(text string, style Style) Run {
	return Run{Text: text, Style: style}
}

// Linked returns copy of the run with l covering all of its text.
func (r Run) Linked(l Linkable) Run {
	links := make([]LinkSpan, 0, len(r.Links)+1)
	links = append(links, r.Links...)
	r.Links = append(links, LinkSpan{Start: 0, End: len(r.Text), Linkable: l})
	return r
}

// IsEmpty reports runs which contribute nothing to the output.
func (r Run) IsEmpty() bool {
	return r.Text == "" && len(r.Links) == 0
}

// Text concatenates texts of all runs.
func Text(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
