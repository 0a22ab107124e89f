package comment

import (
	"iter"
	"regexp"

	"mvdan.cc/xurls/v2"

	"chanfmt/post"
)

// Span is [Start, End) byte range of a detected URL.
type Span struct {
	Start, End int
}

// URLExtractor finds absolute URLs in plain text. Spans must be ordered,
// non-overlapping and lie within text.
type URLExtractor interface {
	Extract(text string) iter.Seq[Span]
}

// only URLs with explicit scheme, bare "www." hosts are not links
var schemeURL = func() *regexp.Regexp {
	re, err := xurls.StrictMatchingScheme(`[a-zA-Z][a-zA-Z0-9.+-]*://`)
	if err != nil {
		panic(err)
	}
	return re
}()

type regexpExtractor struct {
	re *regexp.Regexp
}

func (e regexpExtractor) Extract(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for _, loc := range e.re.FindAllStringIndex(text, -1) {
			if !yield(Span{Start: loc[0], End: loc[1]}) {
				return
			}
		}
	}
}

// DefaultURLExtractor detects URLs with a scheme followed by "://".
func DefaultURLExtractor() URLExtractor {
	return regexpExtractor{re: schemeURL}
}

// linkify produces a run for text with every detected URL annotated as a link.
func (t *transducer) linkify(text string, style post.Style) post.Run {
	run := post.Styled(text, style)
	for span := range t.p.urls.Extract(text) {
		url := text[span.Start:span.End]
		l := post.NewLink(url, url)
		run.Links = append(run.Links, post.LinkSpan{Start: span.Start, End: span.End, Linkable: l})
		t.refs.AddLinkable(l)
	}
	return run
}
