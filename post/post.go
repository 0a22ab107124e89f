// Package post defines the model comment parsing works with: the raw post
// record supplied by the caller (Builder), the styled runs produced for it and
// the linkable annotations collected along the way.
package post

import (
	"maps"
	"slices"
)

// Refs accumulates references discovered while parsing one post: ids of
// quoted posts and every linkable in the order it was produced.
type Refs struct {
	replyTo   map[int]struct{}
	linkables []Linkable
}

func (r *Refs) AddReplyTo(id int) {
	if r.replyTo == nil {
		r.replyTo = make(map[int]struct{})
	}
	r.replyTo[id] = struct{}{}
}

func (r *Refs) AddLinkable(l Linkable) {
	r.linkables = append(r.linkables, l)
}

// Merge appends everything collected in o.
func (r *Refs) Merge(o *Refs) {
	for id := range o.replyTo {
		r.AddReplyTo(id)
	}
	r.linkables = append(r.linkables, o.linkables...)
}

// ReplyTo returns sorted quoted post ids.
func (r *Refs) ReplyTo() []int {
	return slices.Sorted(maps.Keys(r.replyTo))
}

func (r *Refs) HasReplyTo(id int) bool {
	_, ok := r.replyTo[id]
	return ok
}

func (r *Refs) Linkables() []Linkable {
	return slices.Clone(r.linkables)
}

// Builder is the raw post record as delivered by data acquisition. It is
// owned by the caller: parser modifies header fields in place (entity
// unescaping, anonymization) and appends to Refs, it never replaces the
// Builder. One Builder must not be parsed concurrently.
type Builder struct {
	Board      string
	No         int
	OpID       int
	Time       int64
	Name       string
	Subject    string
	Tripcode   string
	PosterID   string
	Capcode    string
	Comment    string
	FilterStub bool

	Refs
}

func (b *Builder) IsOP() bool {
	return b.No == b.OpID
}

// Build assembles final post from the builder state and the parsed runs.
func (b *Builder) Build(subject, header, comment []Run, bodyDropped bool) *Post {
	return &Post{
		Board:       b.Board,
		No:          b.No,
		OpID:        b.OpID,
		Time:        b.Time,
		Name:        b.Name,
		Subject:     b.Subject,
		Tripcode:    b.Tripcode,
		PosterID:    b.PosterID,
		Capcode:     b.Capcode,
		SubjectRuns: subject,
		HeaderRuns:  header,
		Comment:     comment,
		BodyDropped: bodyDropped,
		ReplyTo:     b.ReplyTo(),
		Linkables:   b.Linkables(),
	}
}

// Post is the parsed post ready for presentation.
type Post struct {
	Board    string `json:"board" yaml:"board"`
	No       int    `json:"no" yaml:"no"`
	OpID     int    `json:"op" yaml:"op"`
	Time     int64  `json:"time,omitempty" yaml:"time,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Subject  string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Tripcode string `json:"tripcode,omitempty" yaml:"tripcode,omitempty"`
	PosterID string `json:"id,omitempty" yaml:"id,omitempty"`
	Capcode  string `json:"capcode,omitempty" yaml:"capcode,omitempty"`

	SubjectRuns []Run `json:"subject_runs,omitempty" yaml:"subject_runs,omitempty"`
	HeaderRuns  []Run `json:"header_runs,omitempty" yaml:"header_runs,omitempty"`
	Comment     []Run `json:"comment" yaml:"comment"`
	// BodyDropped is set when comment markup could not be processed and
	// Comment was left empty.
	BodyDropped bool `json:"body_dropped,omitempty" yaml:"body_dropped,omitempty"`

	ReplyTo   []int      `json:"reply_to,omitempty" yaml:"reply_to,omitempty"`
	Linkables []Linkable `json:"linkables,omitempty" yaml:"linkables,omitempty"`
}

func (p *Post) IsOP() bool {
	return p.No == p.OpID
}
