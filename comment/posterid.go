package comment

import (
	"github.com/cespare/xxhash/v2"

	"chanfmt/post"
	"chanfmt/theme"
)

// PosterIDColors returns foreground and background colors for the poster id
// badge. Foreground comes from the upper three bytes of the low 32 bits of
// XXH64 (seed 0) over UTF-8 bytes of id, background is picked from the theme
// by foreground luminance.
func PosterIDColors(th *theme.Theme, id string) (fg, bg post.Color) {
	hash := uint32(xxhash.Sum64String(id))

	r := (hash >> 24) & 0xff
	g := (hash >> 16) & 0xff
	b := (hash >> 8) & 0xff

	fg = post.RGB(r<<16 | g<<8 | b)
	if luminance(r, g, b) > 125 {
		return fg, th.IDBackgroundLight
	}
	return fg, th.IDBackgroundDark
}

func luminance(r, g, b uint32) float64 {
	return float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114
}
