package comment

import (
	"golang.org/x/net/html"
)

// flatten renders preformatted code block text keeping line breaks.
func flatten(n *html.Node) string {
	return collectText(n, true)
}
