package comment

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"chanfmt/post"
)

const (
	opSuffix    = " (OP)"
	savedSuffix = " (You)"
	threadArrow = " →"
)

// classifyAnchor decides what an anchor points to. Same thread quotes are
// registered as replies. When href does not have the expected shape false is
// returned and anchor should be rendered as plain text.
func (t *transducer) classifyAnchor(n *html.Node) (post.Linkable, bool) {
	href := attr(n, "href")
	text := elementText(n)

	if !hasClass(n, "quotelink") {
		return post.NewLink(text, href), true
	}

	if strings.Contains(href, "/thread/") {
		link, ok := parseThreadLink(href)
		if !ok {
			return post.Linkable{}, false
		}
		return post.NewThreadLink(text+threadArrow, link), true
	}

	parts := split(href, "#p")
	if len(parts) != 2 {
		return post.Linkable{}, false
	}
	id, ok := parseID(parts[1])
	if !ok {
		return post.Linkable{}, false
	}

	t.refs.AddReplyTo(id)
	key := text
	if id == t.meta.OpID {
		key += opSuffix
	}
	if t.p.saved.IsSaved(t.meta.Board, id) {
		key += savedSuffix
	}
	return post.NewQuote(key, id), true
}

// parseThreadLink expects "/board/thread/123#p456".
func parseThreadLink(href string) (post.ThreadLink, bool) {
	segments := split(href, "/")
	if len(segments) != 4 {
		return post.ThreadLink{}, false
	}
	nums := split(segments[3], "#p")
	if len(nums) != 2 {
		return post.ThreadLink{}, false
	}
	threadID, ok := parseID(nums[0])
	if !ok {
		return post.ThreadLink{}, false
	}
	postID, ok := parseID(nums[1])
	if !ok {
		return post.ThreadLink{}, false
	}
	return post.ThreadLink{Board: segments[1], ThreadID: threadID, PostID: postID}, true
}

// split works as strings.Split with trailing empty parts removed, so "/a/b/"
// has the same three parts as "/a/b".
func split(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// parseID accepts non-negative 32-bit decimal numbers.
func parseID(s string) (int, bool) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 0 {
		return 0, false
	}
	return int(v), true
}
