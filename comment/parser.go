// Package comment turns imageboard post markup into styled runs and collects
// the references (quotes, cross-thread links, URLs, spoilers) found in it.
package comment

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"chanfmt/config"
	"chanfmt/post"
	"chanfmt/savedreply"
	"chanfmt/theme"
)

// ErrMalformedComment is returned when comment body cannot be processed.
var ErrMalformedComment = errors.New("malformed comment")

// Settings are user preferences affecting header rendering.
type Settings struct {
	FontSize          int
	Anonymize         bool
	AnonymizeIDs      bool
	ShowAnonymousName bool
}

func DefaultSettings() Settings {
	return Settings{FontSize: 16}
}

func SettingsFromConfig(conf *config.ParserConfig) Settings {
	return Settings{
		FontSize:          conf.FontSize,
		Anonymize:         conf.Anonymize,
		AnonymizeIDs:      conf.AnonymizeIDs,
		ShowAnonymousName: conf.ShowAnonymousName,
	}
}

// FragmentFunc parses markup in body context. Malformed markup should produce
// a best effort tree rather than an error.
type FragmentFunc func(text string) ([]*nethtml.Node, error)

func parseFragment(text string) ([]*nethtml.Node, error) {
	body := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	return nethtml.ParseFragment(strings.NewReader(text), body)
}

type Option func(*Parser)

// WithTheme sets palette used when none is passed to ParseWithTheme.
func WithTheme(th *theme.Theme) Option {
	return func(p *Parser) {
		if th != nil {
			p.theme = th
		}
	}
}

func WithSettings(s Settings) Option {
	return func(p *Parser) {
		p.settings = s
	}
}

func WithSavedReplies(l savedreply.Lookup) Option {
	return func(p *Parser) {
		if l != nil {
			p.saved = l
		}
	}
}

func WithURLExtractor(e URLExtractor) Option {
	return func(p *Parser) {
		if e != nil {
			p.urls = e
		}
	}
}

func WithFragmentParser(f FragmentFunc) Option {
	return func(p *Parser) {
		if f != nil {
			p.fragment = f
		}
	}
}

// WithUnescaper replaces entity decoding of header fields.
func WithUnescaper(f func(string) string) Option {
	return func(p *Parser) {
		if f != nil {
			p.unescape = f
		}
	}
}

// Parser is immutable once created and could be shared between goroutines as
// long as every goroutine parses its own post.Builder.
type Parser struct {
	log      *zap.Logger
	theme    *theme.Theme
	settings Settings
	saved    savedreply.Lookup
	urls     URLExtractor
	fragment FragmentFunc
	unescape func(string) string
}

func NewParser(log *zap.Logger, options ...Option) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{
		log:      log.Named("comment"),
		theme:    theme.Default(),
		settings: DefaultSettings(),
		saved:    savedreply.None,
		urls:     DefaultURLExtractor(),
		fragment: parseFragment,
		unescape: html.UnescapeString,
	}
	for _, setOpt := range options {
		setOpt(p)
	}
	return p
}

// Parse is ParseWithTheme with parser's default theme.
func (p *Parser) Parse(b *post.Builder) *post.Post {
	return p.ParseWithTheme(nil, b)
}

// ParseWithTheme renders header and comment of b. Header fields of b are
// updated in place, references found in the comment are added to b. Comment
// which cannot be processed is logged and results in empty body, it never
// fails the post.
func (p *Parser) ParseWithTheme(th *theme.Theme, b *post.Builder) *post.Post {
	if th == nil {
		th = p.theme
	}

	b.Name = p.unescapeField("name", b.Name)
	b.Subject = p.unescapeField("subject", b.Subject)
	p.anonymize(b)

	subject := p.subjectRuns(th, b)
	header := p.headerRuns(th, b)

	runs, err := p.ParseComment(th, b)
	if err != nil {
		p.log.Warn("Unable to parse comment, body dropped",
			zap.String(config.BoardKey, b.Board), zap.Int(config.PostKey, b.No), zap.Error(err))
	}
	if runs == nil {
		runs = []post.Run{}
	}
	return b.Build(subject, header, runs, err != nil)
}

// ParseComment transduces comment markup of b into runs. References are added
// to b only when the whole comment was processed.
func (p *Parser) ParseComment(th *theme.Theme, b *post.Builder) (runs []post.Run, err error) {
	if th == nil {
		th = p.theme
	}
	if !utf8.ValidString(b.Comment) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedComment)
	}

	defer func() {
		if r := recover(); r != nil {
			runs, err = nil, fmt.Errorf("%w: %v", ErrMalformedComment, r)
		}
	}()

	nodes, err := p.fragment(strings.ReplaceAll(b.Comment, "<wbr>", ""))
	if err != nil {
		return nil, fmt.Errorf("unable to parse comment markup: %w", err)
	}

	var refs post.Refs
	t := &transducer{p: p, theme: th, meta: b, refs: &refs}
	for _, n := range nodes {
		for _, r := range t.node(n) {
			if !r.IsEmpty() {
				runs = append(runs, r)
			}
		}
	}
	b.Merge(&refs)
	return runs, nil
}

func (p *Parser) unescapeField(name, value string) (res string) {
	if value == "" {
		return value
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Debug("Unable to unescape header field", zap.String("field", name), zap.Any("reason", r))
			res = value
		}
	}()
	return p.unescape(value)
}
