package comment

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"chanfmt/post"
)

// table flattens rows into "cell: cell" lines. Rows without text are skipped,
// cells with bold content are emphasized.
func (t *transducer) table(n *html.Node) []post.Run {
	base := post.Style{Foreground: t.theme.InlineQuoteColor, Size: smallSize}

	var runs []post.Run
	for _, row := range elementsByTag(n, atom.Tr) {
		if elementText(row) == "" {
			continue
		}
		if len(runs) > 0 {
			runs = append(runs, post.Styled("\n", base))
		}
		for i, cell := range elementsByTag(row, atom.Td) {
			if i > 0 {
				runs = append(runs, post.Styled(": ", base))
			}
			style := base
			if len(elementsByTag(cell, atom.B)) > 0 {
				style.Bold, style.Underline = true, true
			}
			runs = append(runs, post.Styled(elementText(cell), style))
		}
	}
	return runs
}
