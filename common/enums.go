// Package common keeps enums shared by the library packages and the command
// line front end, so neither has to import the other.
package common

// Kind of interactive annotation attached to a piece of comment text.
// ENUM(quote, thread, link, spoiler)
type LinkableKind int

// Requested output type.
// ENUM(json, yaml, text)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtJson:
		return ".json"
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtText:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
