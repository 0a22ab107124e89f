// Package debug produces indented human readable dumps of parsed posts.
package debug

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const defaultIndent = "  "

type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return NewTreeWriterIndent(defaultIndent)
}

// NewTreeWriterIndent uses indent for every depth level, empty indent falls
// back to two spaces.
func NewTreeWriterIndent(indent string) *TreeWriter {
	if indent == "" {
		indent = defaultIndent
	}
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: indent,
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) Len() int {
	return tw.w.Len()
}

func (tw *TreeWriter) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, tw.w.String())
	return int64(n), err
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes "label: value" with value quoted so control characters
// and trailing spaces stay visible.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Flags writes "label [a b]" listing non-empty flags only. Nothing is written
// when all flags are empty.
func (tw *TreeWriter) Flags(depth int, label string, flags ...string) {
	set := make([]string, 0, len(flags))
	for _, f := range flags {
		if f != "" {
			set = append(set, f)
		}
	}
	if len(set) == 0 {
		return
	}
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(" [")
	tw.w.WriteString(strings.Join(set, " "))
	tw.w.WriteString("]\n")
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
