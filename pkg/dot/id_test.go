package dot

import (
	"errors"
	"testing"
)

func TestNormalizeIDForms(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"bare identifier", "simple_Name1", "simple_Name1"},
		{"underscore start", "_x", "_x"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"int64", int64(9000000000), "9000000000"},
		{"uint", uint(3), "3"},
		{"float", 1.23, "1.23"},
		{"leading dot float", .5, "0.5"},
		{"negative float", -0.5, "-0.5"},
		{"huge float quoted", 1e21, `"1e+21"`},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"numeric string", "1.23", "1.23"},
		{"dot string", ".5", ".5"},
		{"hyphen quoted", "so-is-this", `"so-is-this"`},
		{"space quoted", "so is this", `"so is this"`},
		{"empty quoted", "", `""`},
		{"leading digit quoted", "2x", `"2x"`},
		{"reserved quoted", "graph", `"graph"`},
		{"reserved strict", "strict", `"strict"`},
		{"markup", Markup("<b>bold</b>"), "<<b>bold</b>>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := normalizeID(tt.in, "test value")
			if err != nil {
				t.Fatalf("normalizeID(%v): %v", tt.in, err)
			}
			if id.text != tt.want {
				t.Errorf("normalizeID(%v) = %q, want %q", tt.in, id.text, tt.want)
			}
		})
	}
}

func TestNormalizeIDEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"crlf collapses", "a\r\nb", `"a\nb"`},
		{"mixed", "\\\"\n", `"\\\"\n"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := normalizeID(tt.in, "test value")
			if err != nil {
				t.Fatalf("normalizeID(%q): %v", tt.in, err)
			}
			if id.text != tt.want {
				t.Errorf("normalizeID(%q) = %q, want %q", tt.in, id.text, tt.want)
			}
		})
	}
}

func TestNormalizeIDRejects(t *testing.T) {
	for _, in := range []any{nil, struct{}{}, []string{"x"}, map[string]int{}, (*Nonce)(nil)} {
		if _, err := normalizeID(in, "test value"); !errors.Is(err, ErrInvalidID) {
			t.Errorf("normalizeID(%#v) error = %v, want ErrInvalidID", in, err)
		}
	}
}

func TestNormalizeIDNonce(t *testing.T) {
	n := NewNonce()
	id, err := normalizeID(n, "test value")
	if err != nil {
		t.Fatalf("normalizeID: %v", err)
	}
	if id.nonce != n {
		t.Error("nonce identity should survive normalization")
	}
	if n.Prefix() != "_nonce" {
		t.Errorf("default prefix = %q", n.Prefix())
	}
}

func TestPreferQuoted(t *testing.T) {
	tests := []struct{ in, want string }{
		{"abc", `"abc"`},
		{`"already"`, `"already"`},
		{"<markup>", "<markup>"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := preferQuoted(tt.in); got != tt.want {
			t.Errorf("preferQuoted(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompareIDs(t *testing.T) {
	a := normID{text: "a"}
	b := normID{text: "b"}
	n1 := normID{nonce: NewNonce()}
	n2 := normID{nonce: NewNonce()}

	if compareIDs(a, b) >= 0 || compareIDs(b, a) <= 0 || compareIDs(a, a) != 0 {
		t.Error("text identifiers should order lexicographically")
	}
	if compareIDs(a, n1) >= 0 || compareIDs(n1, a) <= 0 {
		t.Error("text should order before nonces")
	}
	if compareIDs(n1, n2) >= 0 || compareIDs(n1, n1) != 0 {
		t.Error("nonces should order by creation")
	}
}
