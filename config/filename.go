package config

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Thread subjects can be long, most file systems limit name to 255 bytes and
// we need room for extension.
const maxFileNameBytes = 200

const badFileName = "_bad_file_name_"

// CleanFileName makes file name out of arbitrary text: characters the
// platform does not allow and control characters are dropped, name is
// trimmed according to platform rules and cut on rune boundary.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(reservedRunes+string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in)
	out = trimFileName(truncateName(out, maxFileNameBytes))
	if len(out) == 0 {
		out = badFileName
	}
	return out
}

func truncateName(in string, limit int) string {
	if len(in) <= limit {
		return in
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(in[cut]) {
		cut--
	}
	return in[:cut]
}

