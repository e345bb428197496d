package mode

import (
	"errors"
	"testing"
)

func TestNewRegistryDuplicateBuiltin(t *testing.T) {
	for _, prefix := range []string{"n", "c"} {
		_, err := NewRegistry(map[string]string{prefix: "other"})
		if !errors.Is(err, ErrDuplicatePrefix) {
			t.Errorf("NewRegistry(%q) error = %v, want %v", prefix, err, ErrDuplicatePrefix)
		}
	}
}

func TestNewRegistryInvalid(t *testing.T) {
	tests := []struct {
		name   string
		custom map[string]string
		want   error
	}{
		{"empty prefix", map[string]string{"": "follow"}, ErrInvalidPrefix},
		{"space prefix", map[string]string{"f f": "follow"}, ErrInvalidPrefix},
		{"builtin name", map[string]string{"f": "normal"}, ErrInvalidName},
		{"same name twice", map[string]string{"f": "follow", "g": "follow"}, ErrDuplicatePrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.custom); !errors.Is(err, tt.want) {
				t.Errorf("NewRegistry error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegistryResolve(t *testing.T) {
	reg, err := NewRegistry(map[string]string{"f": "follow"})
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	follow, _ := Custom("follow")

	tests := []struct {
		prefix string
		want   Mode
		ok     bool
	}{
		{"n", Normal, true},
		{"c", Command, true},
		{"f", follow, true},
		{"x", Mode{}, false},
	}

	for _, tt := range tests {
		got, ok := reg.Resolve(tt.prefix)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Resolve(%q) = (%v, %v), want (%v, %v)", tt.prefix, got, ok, tt.want, tt.ok)
		}
	}

	if m, ok := reg.ByName("follow"); !ok || m != follow {
		t.Errorf("ByName(follow) = (%v, %v)", m, ok)
	}
	if _, ok := reg.ByName("input"); ok {
		t.Error("ByName(input) should not resolve")
	}
	if got := reg.Custom(); len(got) != 1 || got[0] != follow {
		t.Errorf("Custom() = %v, want [follow]", got)
	}
}

func TestRegistryParsePrefixes(t *testing.T) {
	reg, err := NewRegistry(map[string]string{"f": "follow", "nx": "next"})
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	follow, _ := Custom("follow")
	next, _ := Custom("next")

	tests := []struct {
		in      string
		want    []Mode
		wantErr bool
	}{
		{"n", []Mode{Normal}, false},
		{"nc", []Mode{Normal, Command}, false},
		{"cfn", []Mode{Command, follow, Normal}, false},
		{"nxn", []Mode{next, Normal}, false},
		{"", nil, true},
		{"nq", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := reg.ParsePrefixes(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPrefix) {
					t.Errorf("ParsePrefixes(%q) error = %v, want %v", tt.in, err, ErrUnknownPrefix)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrefixes(%q) error: %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePrefixes(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParsePrefixes(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRegistrySplitLeadingPrefixes(t *testing.T) {
	reg, _ := NewRegistry(nil)

	if prefixes, ok := reg.SplitLeadingPrefixes("nmap", "map"); !ok || len(prefixes) != 1 || prefixes[0] != "n" {
		t.Errorf("SplitLeadingPrefixes(nmap) = (%v, %v)", prefixes, ok)
	}
	if prefixes, ok := reg.SplitLeadingPrefixes("ncunmap", "unmap"); !ok || len(prefixes) != 2 {
		t.Errorf("SplitLeadingPrefixes(ncunmap) = (%v, %v)", prefixes, ok)
	}
	if _, ok := reg.SplitLeadingPrefixes("map", "map"); ok {
		t.Error("bare map should not split")
	}
	if _, ok := reg.SplitLeadingPrefixes("zmap", "map"); ok {
		t.Error("unknown prefix should not split")
	}
	if _, ok := reg.SplitLeadingPrefixes("quit", "map"); ok {
		t.Error("other words should not split")
	}
}
