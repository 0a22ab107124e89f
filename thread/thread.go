// Package thread reads thread dumps in the format of the public 4chan read
// API ({"posts": [...]}) and turns them into post builders ready for parsing.
package thread

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"chanfmt/post"
)

var ErrNoPosts = errors.New("thread has no posts")

// Record is a single post as served by the API. Only fields used by the
// parser are kept, the rest is ignored.
type Record struct {
	No      int    `json:"no"`
	Resto   int    `json:"resto"`
	Time    int64  `json:"time"`
	Name    string `json:"name"`
	Trip    string `json:"trip"`
	ID      string `json:"id"`
	Capcode string `json:"capcode"`
	Sub     string `json:"sub"`
	Com     string `json:"com"`
}

type Thread struct {
	Board string
	Posts []Record
}

// Decode reads a thread dump. First post is expected to be the opening post.
func Decode(r io.Reader, board string) (*Thread, error) {
	var doc struct {
		Posts []Record `json:"posts"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode thread: %w", err)
	}
	if len(doc.Posts) == 0 {
		return nil, ErrNoPosts
	}
	for i, p := range doc.Posts {
		if p.No <= 0 {
			return nil, fmt.Errorf("post %d has invalid number %d", i, p.No)
		}
	}
	return &Thread{Board: board, Posts: doc.Posts}, nil
}

// OpID is the number of the opening post.
func (t *Thread) OpID() int {
	first := t.Posts[0]
	if first.Resto != 0 {
		return first.Resto
	}
	return first.No
}

// Subject is the subject of the opening post.
func (t *Thread) Subject() string {
	if t.Posts[0].Resto == 0 {
		return t.Posts[0].Sub
	}
	return ""
}

// Builders returns a fresh builder for every post in thread order.
func (t *Thread) Builders() []*post.Builder {
	op := t.OpID()
	res := make([]*post.Builder, 0, len(t.Posts))
	for _, p := range t.Posts {
		res = append(res, &post.Builder{
			Board:    t.Board,
			No:       p.No,
			OpID:     op,
			Time:     p.Time,
			Name:     p.Name,
			Subject:  p.Sub,
			Tripcode: p.Trip,
			PosterID: p.ID,
			Capcode:  p.Capcode,
			Comment:  p.Com,
		})
	}
	return res
}
