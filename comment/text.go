package comment

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockTags are elements rendered as blocks. Text extraction separates their
// content from the surrounding text with a space. Unknown elements are inline.
var blockTags = map[atom.Atom]bool{
	atom.Html: true, atom.Head: true, atom.Body: true, atom.Frameset: true,
	atom.Script: true, atom.Noscript: true, atom.Style: true, atom.Meta: true,
	atom.Link: true, atom.Title: true, atom.Frame: true, atom.Noframes: true,
	atom.Section: true, atom.Nav: true, atom.Aside: true, atom.Hgroup: true,
	atom.Header: true, atom.Footer: true, atom.P: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Pre: true, atom.Div: true,
	atom.Blockquote: true, atom.Hr: true, atom.Address: true, atom.Figure: true,
	atom.Figcaption: true, atom.Form: true, atom.Fieldset: true, atom.Ins: true,
	atom.Del: true, atom.S: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Li: true, atom.Table: true, atom.Caption: true, atom.Thead: true,
	atom.Tfoot: true, atom.Tbody: true, atom.Colgroup: true, atom.Col: true,
	atom.Tr: true, atom.Th: true, atom.Td: true, atom.Video: true,
	atom.Audio: true, atom.Canvas: true, atom.Details: true, atom.Menu: true,
	atom.Plaintext: true, atom.Template: true, atom.Article: true,
	atom.Main: true, atom.Svg: true, atom.Math: true,
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockTags[n.DataAtom]
}

// preservesWhitespace looks at the element and its parent only.
func preservesWhitespace(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if keepsWhitespace(n) {
		return true
	}
	return n.Parent != nil && n.Parent.Type == html.ElementNode && keepsWhitespace(n.Parent)
}

func keepsWhitespace(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Pre, atom.Plaintext, atom.Title, atom.Textarea:
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func endsWithSpace(sb *strings.Builder) bool {
	s := sb.String()
	return len(s) > 0 && s[len(s)-1] == ' '
}

// appendNormalized writes text collapsing every whitespace run into a single
// space, leading whitespace is dropped when stripLeading is set.
func appendNormalized(sb *strings.Builder, text string, stripLeading bool) {
	lastWasSpace, reachedText := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isSpace(c) {
			if (stripLeading && !reachedText) || lastWasSpace {
				continue
			}
			sb.WriteByte(' ')
			lastWasSpace = true
			continue
		}
		sb.WriteByte(c)
		lastWasSpace, reachedText = false, true
	}
}

func normalizeWhitespace(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	appendNormalized(&sb, text, false)
	return sb.String()
}

// trimControl removes leading and trailing characters up to and including
// space, non-breaking spaces are kept.
func trimControl(s string) string {
	start, end := 0, len(s)
	for start < end && s[start] <= ' ' {
		start++
	}
	for end > start && s[end-1] <= ' ' {
		end--
	}
	return s[start:end]
}

// collectText renders human readable text of the subtree rooted at n. Block
// elements are separated by a space. With keepBreaks set br produces a line
// feed instead of a space.
func collectText(n *html.Node, keepBreaks bool) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			if preservesWhitespace(c.Parent) {
				sb.WriteString(c.Data)
				return
			}
			appendNormalized(&sb, c.Data, endsWithSpace(&sb))
		case html.ElementNode:
			isBr := c.DataAtom == atom.Br
			spaced := isBlock(c) || (isBr && !keepBreaks)
			if sb.Len() > 0 && spaced && !endsWithSpace(&sb) {
				sb.WriteByte(' ')
			}
			if isBr && keepBreaks {
				sb.WriteByte('\n')
			}
		}
	})
	return trimControl(sb.String())
}

// elementText is the text of an element as a browser would select it.
func elementText(n *html.Node) string {
	return collectText(n, false)
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// elementsByTag returns n and its descendants with given tag in document
// order.
func elementsByTag(n *html.Node, a atom.Atom) []*html.Node {
	var res []*html.Node
	walk(n, func(c *html.Node) {
		if c.Type == html.ElementNode && c.DataAtom == a {
			res = append(res, c)
		}
	})
	return res
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, name string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == name {
			return true
		}
	}
	return false
}
