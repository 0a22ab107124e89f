package comment

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	tdparse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"chanfmt/post"
)

// decodeColor looks for the first declaration ending in "color" (so
// "background-color" counts too) with a hex value in inline style text.
// Broken declarations are skipped. Only #rrggbb range is accepted, anything
// else results in no color.
func decodeColor(style string) (post.Color, bool) {
	style = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, style)
	if len(style) == 0 {
		return 0, false
	}

	parser := css.NewParser(tdparse.NewInputString(style), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			var perr *tdparse.Error
			if !errors.As(parser.Err(), &perr) {
				// io.EOF, input exhausted
				return 0, false
			}
		case css.DeclarationGrammar:
			if !strings.HasSuffix(strings.ToLower(string(data)), "color") {
				continue
			}
			values := parser.Values()
			if len(values) == 0 || values[0].TokenType != css.HashToken {
				continue
			}
			return hexColor(string(values[0].Data))
		}
	}
}

// hexColor parses leading hex digits following '#'.
func hexColor(hash string) (post.Color, bool) {
	digits := strings.TrimPrefix(hash, "#")
	end := strings.IndexFunc(digits, func(r rune) bool {
		return !strings.ContainsRune("0123456789abcdefABCDEF", r)
	})
	if end >= 0 {
		digits = digits[:end]
	}
	if len(digits) == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || v > 0xffffff {
		return 0, false
	}
	return post.RGB(uint32(v)), true
}
