package comment

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"chanfmt/post"
	"chanfmt/theme"
)

// Fixed size for tables and code blocks.
const smallSize = 12

type nodeKind int

const (
	kindIgnored nodeKind = iota
	kindText
	kindBreak
	kindDeadLink
	kindFortune
	kindAbbr
	kindInlineQuote
	kindTable
	kindStrong
	kindAnchor
	kindSpoiler
	kindCode
	kindPre
	kindElement
)

func classify(n *html.Node) nodeKind {
	switch n.Type {
	case html.TextNode:
		return kindText
	case html.ElementNode:
	default:
		return kindIgnored
	}

	switch n.DataAtom {
	case atom.Br:
		return kindBreak
	case atom.Span:
		switch {
		case hasClass(n, "deadlink"):
			return kindDeadLink
		case hasClass(n, "fortune"):
			return kindFortune
		case hasClass(n, "abbr"):
			return kindAbbr
		}
		return kindInlineQuote
	case atom.Table:
		return kindTable
	case atom.Strong:
		return kindStrong
	case atom.A:
		return kindAnchor
	case atom.S:
		return kindSpoiler
	case atom.Pre:
		if hasClass(n, "prettyprint") {
			return kindCode
		}
		return kindPre
	}
	return kindElement
}

// transducer converts body nodes of a single comment into runs. Discovered
// references go to refs, meta is read only.
type transducer struct {
	p     *Parser
	theme *theme.Theme
	meta  *post.Builder
	refs  *post.Refs
}

// node returns runs for n, nil means the node produces nothing.
func (t *transducer) node(n *html.Node) []post.Run {
	switch classify(n) {
	case kindText:
		return []post.Run{t.linkify(normalizeWhitespace(n.Data), post.Style{})}
	case kindBreak:
		return []post.Run{post.Plain("\n")}
	case kindDeadLink:
		return []post.Run{post.Styled(elementText(n), post.Style{
			Foreground:    t.theme.QuoteColor,
			Strikethrough: true,
		})}
	case kindFortune:
		return []post.Run{t.fortune(n)}
	case kindAbbr:
		return nil
	case kindInlineQuote:
		return []post.Run{t.linkify(elementText(n), post.Style{Foreground: t.theme.InlineQuoteColor})}
	case kindTable:
		return t.table(n)
	case kindStrong:
		return []post.Run{post.Styled(elementText(n), post.Style{
			Foreground: t.theme.QuoteColor,
			Bold:       true,
		})}
	case kindAnchor:
		if l, ok := t.classifyAnchor(n); ok {
			t.refs.AddLinkable(l)
			return []post.Run{post.Plain(l.Key).Linked(l)}
		}
		return []post.Run{post.Plain(elementText(n))}
	case kindSpoiler:
		text := elementText(n)
		l := post.NewSpoiler(text)
		t.refs.AddLinkable(l)
		return []post.Run{post.Plain(text).Linked(l)}
	case kindCode:
		return []post.Run{post.Styled(flatten(n), post.Style{Monospace: true, Size: smallSize})}
	case kindPre, kindElement:
		return []post.Run{post.Plain(elementText(n))}
	}
	return nil
}

// fortune is rendered below the comment, colored and bold when style carries
// a valid color.
func (t *transducer) fortune(n *html.Node) post.Run {
	run := post.Plain("\n\n" + elementText(n))
	if c, ok := decodeColor(attr(n, "style")); ok {
		run.Style = post.Style{Foreground: c, Bold: true}
	}
	return run
}
