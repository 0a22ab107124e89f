package comment

import (
	"chanfmt/post"
	"chanfmt/theme"
)

const anonymousName = "Anonymous"

// anonymize applies privacy settings to the header fields of b.
func (p *Parser) anonymize(b *post.Builder) {
	if p.settings.Anonymize {
		b.Name = anonymousName
		b.Tripcode = ""
	}
	if p.settings.AnonymizeIDs {
		b.PosterID = ""
	}
}

func (p *Parser) subjectRuns(th *theme.Theme, b *post.Builder) []post.Run {
	if b.Subject == "" {
		return nil
	}
	// stubs keep default color
	if b.FilterStub {
		return []post.Run{post.Plain(b.Subject)}
	}
	return []post.Run{post.Styled(b.Subject, post.Style{Foreground: th.SubjectColor})}
}

// headerRuns renders name, tripcode, poster id and capcode, each followed by
// a space.
func (p *Parser) headerRuns(th *theme.Theme, b *post.Builder) []post.Run {
	details := p.settings.FontSize - 4

	var runs []post.Run
	add := func(r post.Run) {
		runs = append(runs, r, post.Plain(" "))
	}

	if b.Name != "" && (b.Name != anonymousName || p.settings.ShowAnonymousName) {
		add(post.Styled(b.Name, post.Style{Foreground: th.NameColor}))
	}
	if b.Tripcode != "" {
		add(post.Styled(b.Tripcode, post.Style{Foreground: th.NameColor, Size: details}))
	}
	if b.PosterID != "" {
		fg, bg := PosterIDColors(th, b.PosterID)
		add(post.Styled("  ID: "+b.PosterID+"  ", post.Style{Foreground: fg, Background: bg, Size: details}))
	}
	if b.Capcode != "" {
		add(post.Styled("Capcode: "+b.Capcode, post.Style{Foreground: th.CapcodeColor, Size: details}))
	}
	return runs
}
