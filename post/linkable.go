package post

import (
	"fmt"

	"chanfmt/common"
)

// ThreadLink identifies a post in another thread.
type ThreadLink struct {
	Board    string `json:"board" yaml:"board"`
	ThreadID int    `json:"thread" yaml:"thread"`
	PostID   int    `json:"post" yaml:"post"`
}

func (t ThreadLink) String() string {
	return fmt.Sprintf("/%s/%d#p%d", t.Board, t.ThreadID, t.PostID)
}

// Linkable is an interactive annotation. Key is the text shown to the user,
// the value lives in the field matching Kind: PostID for quotes, Thread for
// cross-thread links, URL for links. Spoiler value is its Key.
type Linkable struct {
	Kind   common.LinkableKind `json:"kind" yaml:"kind"`
	Key    string              `json:"key" yaml:"key"`
	PostID int                 `json:"post,omitempty" yaml:"post,omitempty"`
	Thread ThreadLink          `json:"thread,omitzero" yaml:"thread,omitempty"`
	URL    string              `json:"url,omitempty" yaml:"url,omitempty"`
}

func NewQuote(key string, id int) Linkable {
	return Linkable{Kind: common.LinkableKindQuote, Key: key, PostID: id}
}

func NewThreadLink(key string, link ThreadLink) Linkable {
	return Linkable{Kind: common.LinkableKindThread, Key: key, Thread: link}
}

func NewLink(key, url string) Linkable {
	return Linkable{Kind: common.LinkableKindLink, Key: key, URL: url}
}

func NewSpoiler(text string) Linkable {
	return Linkable{Kind: common.LinkableKindSpoiler, Key: text}
}

// Value returns kind specific payload: int, ThreadLink or string.
func (l Linkable) Value() any {
	switch l.Kind {
	case common.LinkableKindQuote:
		return l.PostID
	case common.LinkableKindThread:
		return l.Thread
	case common.LinkableKindLink:
		return l.URL
	case common.LinkableKindSpoiler:
		return l.Key
	default:
		return nil
	}
}
