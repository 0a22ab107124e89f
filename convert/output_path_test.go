package convert

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"chanfmt/common"
	"chanfmt/config"
	"chanfmt/post"
	"chanfmt/state"
)

func TestBuildFileName(t *testing.T) {
	tests := []struct {
		name    string
		board   string
		thread  int
		subject string
		format  common.OutputFmt
		want    string
	}{
		{"no subject", "g", 100, "", common.OutputFmtJson, "g-100.json"},
		{"subject", "g", 100, "Hello world", common.OutputFmtJson, "g-100-hello-world.json"},
		{"yaml", "v", 7, "Game Night", common.OutputFmtYaml, "v-7-game-night.yaml"},
		{"text", "a", 1, "", common.OutputFmtText, "a-1.txt"},
		{"punctuation only subject", "g", 5, "!!!", common.OutputFmtJson, "g-5.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildFileName(tt.board, tt.thread, tt.subject, tt.format); got != tt.want {
				t.Errorf("buildFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubjectSlug_Truncated(t *testing.T) {
	subject := strings.Repeat("word ", 20)
	got := subjectSlug(subject)
	if len(got) > maxSubjectSlug {
		t.Errorf("slug too long: %d", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug ends with separator: %q", got)
	}
	for part := range strings.SplitSeq(got, "-") {
		if part != "word" {
			t.Errorf("partial word left in slug: %q", got)
			break
		}
	}
}

func TestBuildOutputPath(t *testing.T) {
	dst := filepath.Join("out")
	src := filepath.Join("g", "100.json")
	doc := &document{Board: "g", Thread: 100, Subject: "Hi"}

	t.Run("keep dirs", func(t *testing.T) {
		env := &state.LocalEnv{}
		got := buildOutputPath(doc, src, dst, common.OutputFmtJson, env)
		want := filepath.Join("out", "g", "g-100-hi.json")
		if got != want {
			t.Errorf("buildOutputPath() = %q, want %q", got, want)
		}
	})

	t.Run("no dirs", func(t *testing.T) {
		env := &state.LocalEnv{NoDirs: true}
		got := buildOutputPath(doc, src, dst, common.OutputFmtJson, env)
		want := filepath.Join("out", "g-100-hi.json")
		if got != want {
			t.Errorf("buildOutputPath() = %q, want %q", got, want)
		}
	})

	t.Run("file without dir", func(t *testing.T) {
		env := &state.LocalEnv{}
		got := buildOutputPath(&document{Board: "g", Thread: 100}, "100.json", dst, common.OutputFmtYaml, env)
		want := filepath.Join("out", "g-100.yaml")
		if got != want {
			t.Errorf("buildOutputPath() = %q, want %q", got, want)
		}
	})
}

func TestBuildOutputPath_NameTemplate(t *testing.T) {
	dst := filepath.Join("out")
	src := filepath.Join("g", "100.json")
	doc := &document{
		Board:   "g",
		Thread:  100,
		Subject: "Hello World",
		Posts:   []*post.Post{{Board: "g", No: 100, Time: 1700000000}},
	}

	tests := []struct {
		name     string
		template string
		nodirs   bool
		want     string
	}{
		{"empty template", "", true, filepath.Join("out", "g-100-hello-world.json")},
		{"fields", "{{ .Board }}_{{ .Thread }}_{{ .Slug }}", true, filepath.Join("out", "g_100_hello-world.json")},
		{"sprig functions", "{{ .Board | upper }}-{{ .Subject | lower | replace \" \" \"_\" }}", true, filepath.Join("out", "G-hello_world.json")},
		{"date from op", "{{ .Time | date \"2006-01-02\" }}-{{ .Thread }}", true, filepath.Join("out", "2023-11-14-100.json")},
		{"source file and format", "{{ .SourceFile }}.{{ .Format }}", true, filepath.Join("out", "100.json.json")},
		{"subdirectories", "{{ .Board }}/{{ .Thread }}", true, filepath.Join("out", "g", "100.json")},
		{"keeps source dirs", "{{ .Thread }}", false, filepath.Join("out", "g", "100.json")},
		{"parent references dropped", "../../{{ .Thread }}", true, filepath.Join("out", "100.json")},
		{"parse error falls back", "{{ .Board ", true, filepath.Join("out", "g-100-hello-world.json")},
		{"execution error falls back", "{{ .Missing }}", true, filepath.Join("out", "g-100-hello-world.json")},
		{"blank expansion falls back", "{{ \"\" }}  ", true, filepath.Join("out", "g-100-hello-world.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &state.LocalEnv{
				Cfg:    &config.Config{Output: config.OutputConfig{NameTemplate: tt.template}},
				Log:    zaptest.NewLogger(t),
				NoDirs: tt.nodirs,
			}
			if got := buildOutputPath(doc, src, dst, common.OutputFmtJson, env); got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"a", []string{"a"}},
		{filepath.Join("a", "b", "c"), []string{"a", "b", "c"}},
		{"a" + string(filepath.Separator), []string{"a"}},
		{filepath.Join("..", "a"), []string{"a"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := splitPath(tt.path); !slices.Equal(got, tt.want) {
			t.Errorf("splitPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
