package common

import (
	"testing"
)

func TestParseOutputFmt(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFmt
		wantErr bool
	}{
		{"json", OutputFmtJson, false},
		{"yaml", OutputFmtYaml, false},
		{"text", OutputFmtText, false},
		{"JSON", OutputFmt(0), true},
		{"epub", OutputFmt(0), true},
		{"", OutputFmt(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFmt(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFmt(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseOutputFmt(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputFmt_Ext(t *testing.T) {
	tests := []struct {
		format OutputFmt
		want   string
	}{
		{OutputFmtJson, ".json"},
		{OutputFmtYaml, ".yaml"},
		{OutputFmtText, ".txt"},
	}
	for _, tt := range tests {
		if got := tt.format.Ext(); got != tt.want {
			t.Errorf("%s.Ext() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestOutputFmt_ExtPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Ext() on invalid format should panic")
		}
	}()
	_ = OutputFmt(42).Ext()
}

func TestLinkableKind_Text(t *testing.T) {
	for _, name := range LinkableKindNames() {
		var k LinkableKind
		if err := k.UnmarshalText([]byte(name)); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", name, err)
		}
		if !k.IsValid() {
			t.Errorf("%q parsed into invalid kind", name)
		}
		text, err := k.MarshalText()
		if err != nil || string(text) != name {
			t.Errorf("MarshalText() = %q, %v, want %q", text, err, name)
		}
	}

	if _, err := ParseLinkableKind("bogus"); err == nil {
		t.Error("ParseLinkableKind(bogus) should fail")
	}
}
