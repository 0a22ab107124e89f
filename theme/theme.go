// Package theme defines color palettes used to style parsed posts.
package theme

import (
	"fmt"
	"maps"
	"slices"

	"chanfmt/config"
	"chanfmt/post"
)

const DefaultName = "light"

// Theme is an immutable palette, safe to share between goroutines.
type Theme struct {
	Name              string
	QuoteColor        post.Color
	NameColor         post.Color
	SubjectColor      post.Color
	InlineQuoteColor  post.Color
	CapcodeColor      post.Color
	IDBackgroundLight post.Color
	IDBackgroundDark  post.Color
}

var builtin = map[string]Theme{
	"light": {
		Name:              "light",
		QuoteColor:        post.RGB(0xdd0000),
		NameColor:         post.RGB(0x117743),
		SubjectColor:      post.RGB(0x0f0c5d),
		InlineQuoteColor:  post.RGB(0x789922),
		CapcodeColor:      post.RGB(0xff0000),
		IDBackgroundLight: post.RGB(0x333333),
		IDBackgroundDark:  post.RGB(0xeeeeee),
	},
	"dark": {
		Name:              "dark",
		QuoteColor:        post.RGB(0xff5252),
		NameColor:         post.RGB(0x4fc3f7),
		SubjectColor:      post.RGB(0xce93d8),
		InlineQuoteColor:  post.RGB(0x9ccc65),
		CapcodeColor:      post.RGB(0xff5252),
		IDBackgroundLight: post.RGB(0x212121),
		IDBackgroundDark:  post.RGB(0xbdbdbd),
	},
}

// Names lists built-in palettes.
func Names() []string {
	return slices.Sorted(maps.Keys(builtin))
}

// Default returns copy of the default built-in palette.
func Default() *Theme {
	t := builtin[DefaultName]
	return &t
}

// Named returns copy of the requested built-in palette.
func Named(name string) (*Theme, error) {
	t, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (known: %v)", name, Names())
	}
	return &t, nil
}

// FromConfig starts with named built-in palette and applies color overrides
// from configuration.
func FromConfig(conf *config.ThemeConfig) (*Theme, error) {
	t, err := Named(conf.Palette)
	if err != nil {
		return nil, err
	}
	c := &conf.Colors
	overrides := []struct {
		value string
		dst   *post.Color
	}{
		{c.Quote, &t.QuoteColor},
		{c.Name, &t.NameColor},
		{c.Subject, &t.SubjectColor},
		{c.InlineQuote, &t.InlineQuoteColor},
		{c.Capcode, &t.CapcodeColor},
		{c.IDBackgroundLight, &t.IDBackgroundLight},
		{c.IDBackgroundDark, &t.IDBackgroundDark},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		v, err := post.ParseColor(o.value)
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", conf.Palette, err)
		}
		*o.dst = v
	}
	return t, nil
}
