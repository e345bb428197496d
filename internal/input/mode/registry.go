package mode

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Built-in mode prefixes.
const (
	PrefixNormal  = "n"
	PrefixCommand = "c"
)

// Registry maps short mode prefixes to modes.
// It is built once at startup and never mutated afterwards.
type Registry struct {
	byPrefix map[string]Mode
	byName   map[string]Mode

	// prefixes is sorted longest first so that parsing is greedy.
	prefixes []string
}

// NewRegistry creates a registry holding the built-in prefixes plus the
// given custom modes (prefix -> mode name).
// Claiming "n" or "c" returns ErrDuplicatePrefix.
func NewRegistry(custom map[string]string) (*Registry, error) {
	r := &Registry{
		byPrefix: map[string]Mode{
			PrefixNormal:  Normal,
			PrefixCommand: Command,
		},
		byName: map[string]Mode{
			NameNormal:  Normal,
			NameCommand: Command,
		},
	}

	for prefix, name := range custom {
		if prefix == "" || strings.IndexFunc(prefix, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
		}
		if _, taken := r.byPrefix[prefix]; taken {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePrefix, prefix)
		}
		m, err := Custom(name)
		if err != nil {
			return nil, fmt.Errorf("mode for prefix %q: %w", prefix, err)
		}
		if _, taken := r.byName[name]; taken {
			return nil, fmt.Errorf("%w: mode %q declared twice", ErrDuplicatePrefix, name)
		}
		r.byPrefix[prefix] = m
		r.byName[name] = m
	}

	r.prefixes = make([]string, 0, len(r.byPrefix))
	for p := range r.byPrefix {
		r.prefixes = append(r.prefixes, p)
	}
	sort.Slice(r.prefixes, func(i, j int) bool {
		a, b := r.prefixes[i], r.prefixes[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	return r, nil
}

// Resolve returns the mode registered under prefix.
func (r *Registry) Resolve(prefix string) (Mode, bool) {
	m, ok := r.byPrefix[prefix]
	return m, ok
}

// ByName returns the mode with the given name.
// Only modes that own a mapping table (normal, command, custom) are found.
func (r *Registry) ByName(name string) (Mode, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Prefixes returns all registered prefixes, longest first.
func (r *Registry) Prefixes() []string {
	out := make([]string, len(r.prefixes))
	copy(out, r.prefixes)
	return out
}

// Custom returns the host-declared modes sorted by name.
func (r *Registry) Custom() []Mode {
	var out []Mode
	for _, m := range r.byName {
		if m.IsCustom() {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// SplitPrefixes splits a run of concatenated prefixes such as "nc",
// matching the longest registered prefix at each position.
func (r *Registry) SplitPrefixes(s string) ([]string, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnknownPrefix)
	}

	var out []string
	for rest := s; rest != ""; {
		matched := false
		for _, p := range r.prefixes {
			if strings.HasPrefix(rest, p) {
				out = append(out, p)
				rest = rest[len(p):]
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPrefix, rest)
		}
	}
	return out, nil
}

// ParsePrefixes is SplitPrefixes resolved to modes.
func (r *Registry) ParsePrefixes(s string) ([]Mode, error) {
	prefixes, err := r.SplitPrefixes(s)
	if err != nil {
		return nil, err
	}
	modes := make([]Mode, len(prefixes))
	for i, p := range prefixes {
		modes[i] = r.byPrefix[p]
	}
	return modes, nil
}

// SplitLeadingPrefixes reports whether word is a run of prefixes followed
// by suffix (for example "nmap" with suffix "map") and returns the prefixes.
func (r *Registry) SplitLeadingPrefixes(word, suffix string) ([]string, bool) {
	if !strings.HasSuffix(word, suffix) || len(word) == len(suffix) {
		return nil, false
	}
	prefixes, err := r.SplitPrefixes(strings.TrimSuffix(word, suffix))
	if err != nil {
		return nil, false
	}
	return prefixes, true
}
