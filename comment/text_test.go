package comment

import (
	"testing"

	"golang.org/x/net/html"
)

func mustFragment(t *testing.T, markup string) []*html.Node {
	t.Helper()
	nodes, err := parseFragment(markup)
	if err != nil {
		t.Fatalf("parseFragment(%q) error = %v", markup, err)
	}
	return nodes
}

func firstElement(t *testing.T, markup string) *html.Node {
	t.Helper()
	for _, n := range mustFragment(t, markup) {
		if n.Type == html.ElementNode {
			return n
		}
	}
	t.Fatalf("no element in %q", markup)
	return nil
}

func TestElementText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"simple", `<span>hello</span>`, "hello"},
		{"collapsed whitespace", "<span>  a \t\n  b  </span>", "a b"},
		{"break becomes space", `<span>a<br>b</span>`, "a b"},
		{"double break", `<span>a<br><br>b</span>`, "a b"},
		{"block separated", `<div>a<p>b</p>c</div>`, "a bc"},
		{"inline joined", `<span>a<b>b</b>c</span>`, "abc"},
		{"entities", `<span>&gt;&gt;1 &amp; 2</span>`, ">>1 & 2"},
		{"nbsp kept", `<span>&nbsp;x&nbsp;</span>`, "\u00a0x\u00a0"},
		{"pre keeps whitespace", `<pre>a  b</pre>`, "a  b"},
		{"pre child keeps whitespace", `<pre>a<b>  x  </b>b</pre>`, "a  x  b"},
		{"pre grandchild is normalized", `<pre>a<b><i>  x  y</i></b></pre>`, "a x y"},
		{"empty", `<span></span>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := elementText(firstElement(t, tt.markup)); got != tt.want {
				t.Errorf("elementText(%q) = %q, want %q", tt.markup, got, tt.want)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"breaks kept", `<pre class="prettyprint">int main() {<br>  return 0;<br>}</pre>`, "int main() {\n  return 0;\n}"},
		{"outer whitespace trimmed", `<pre class="prettyprint"><br>x<br></pre>`, "x"},
		{"space after break kept", `<span>a<br> b</span>`, "a\n b"},
		{"block adds space", `<span>a<div>b</div></span>`, "a b"},
		{"collapsed outside pre", "<span>a   <i>b   c</i></span>", "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flatten(firstElement(t, tt.markup)); got != tt.want {
				t.Errorf("flatten(%q) = %q, want %q", tt.markup, got, tt.want)
			}
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"  a  b  ", " a b "},
		{"a\r\n\tb", "a b"},
		{"a  b", "a  b"},
	}
	for _, tt := range tests {
		if got := normalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("normalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrimControl(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{" \n\t", ""},
		{"\n a \n", "a"},
		{" a ", " a "},
	}
	for _, tt := range tests {
		if got := trimControl(tt.in); got != tt.want {
			t.Errorf("trimControl(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasClass(t *testing.T) {
	n := firstElement(t, `<span class=" quote  deadlink ">x</span>`)
	if !hasClass(n, "quote") || !hasClass(n, "deadlink") {
		t.Error("expected both classes to be found")
	}
	if hasClass(n, "dead") {
		t.Error("partial class name must not match")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		markup string
		want   nodeKind
	}{
		{`text`, kindText},
		{`<br>`, kindBreak},
		{`<span class="deadlink">x</span>`, kindDeadLink},
		{`<span class="fortune">x</span>`, kindFortune},
		{`<span class="abbr">x</span>`, kindAbbr},
		{`<span class="quote">x</span>`, kindInlineQuote},
		{`<span>x</span>`, kindInlineQuote},
		{`<table><tr><td>x</td></tr></table>`, kindTable},
		{`<strong>x</strong>`, kindStrong},
		{`<a href="#p1">x</a>`, kindAnchor},
		{`<s>x</s>`, kindSpoiler},
		{`<pre class="prettyprint">x</pre>`, kindCode},
		{`<pre>x</pre>`, kindPre},
		{`<b>x</b>`, kindElement},
		{`<custom-tag>x</custom-tag>`, kindElement},
		{`<!-- note -->`, kindIgnored},
	}
	for _, tt := range tests {
		nodes := mustFragment(t, tt.markup)
		if len(nodes) != 1 {
			t.Fatalf("%q parsed into %d nodes", tt.markup, len(nodes))
		}
		if got := classify(nodes[0]); got != tt.want {
			t.Errorf("classify(%q) = %d, want %d", tt.markup, got, tt.want)
		}
	}
}
