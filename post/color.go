package post

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 32-bit ARGB value. Zero means "not set" - every color produced
// by this module is opaque.
type Color uint32

// RGB returns opaque color for 24-bit rgb value.
func RGB(rgb uint32) Color {
	return Color(0xff000000 | rgb&0xffffff)
}

func (c Color) IsSet() bool {
	return c != 0
}

// RGB returns color without alpha channel.
func (c Color) RGB() uint32 {
	return uint32(c) & 0xffffff
}

func (c Color) String() string {
	if !c.IsSet() {
		return ""
	}
	if c>>24 == 0xff {
		return fmt.Sprintf("#%06x", c.RGB())
	}
	return fmt.Sprintf("#%08x", uint32(c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColor accepts "#rrggbb" (opaque) and "#aarrggbb". Empty string is
// unset color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, fmt.Errorf("color %q must start with '#'", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	switch len(hex) {
	case 6:
		return RGB(uint32(v)), nil
	case 8:
		return Color(v), nil
	default:
		return 0, fmt.Errorf("color %q must have 6 or 8 hex digits", s)
	}
}
