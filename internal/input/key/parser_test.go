package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Key
	}{
		{"a", Char('a')},
		{"A", Char('A')},
		{"<", Char('<')},
		{"<C-a>", Control(Char('a'))},
		{"<c-A>", Control(Char('a'))},
		{"<CR>", Special(CodeEnter)},
		{"<Enter>", Special(CodeEnter)},
		{"<Esc>", Special(CodeEscape)},
		{"<Tab>", Special(CodeTab)},
		{"<S-Tab>", Special(CodeBacktab)},
		{"<C-S-Tab>", Control(Special(CodeBacktab))},
		{"<Space>", Char(' ')},
		{"<lt>", Char('<')},
		{"<bar>", Char('|')},
		{"<C-->", Control(Char('-'))},
		{"<F3>", Special(CodeF3)},
		{"<C-Enter>", Control(Special(CodeEnter))},
		{"Escape", Special(CodeEscape)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"<X-a>", ErrInvalidSpec},
		{"<S-a>", ErrInvalidSpec},
		{"<Nope>", ErrInvalidSpec},
		{"abc", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	keys := []Key{
		Char('x'),
		Char(' '),
		Char('<'),
		Control(Char('w')),
		Special(CodeBacktab),
		Control(Special(CodeBacktab)),
		Special(CodeF12),
	}

	for _, k := range keys {
		got, err := Parse(k.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("Parse(%q) = %#v, want %#v", k.String(), got, k)
		}
	}
}

func TestNormalizeSpec(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"<cr>", "<Enter>"},
		{"<c-X>", "<C-x>"},
		{"<space>", "<Space>"},
		{"q", "q"},
	}

	for _, tt := range tests {
		got, err := NormalizeSpec(tt.spec)
		if err != nil {
			t.Fatalf("NormalizeSpec(%q) error: %v", tt.spec, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeSpec(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}
