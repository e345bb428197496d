package key

import (
	"strings"
)

// Sequence represents a series of keys forming a shortcut.
// Examples: "gg", "<C-x><C-s>", "ZZ".
type Sequence []Key

// IsEmpty returns true if the sequence has no keys.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Last returns the last key and false if the sequence is empty.
func (s Sequence) Last() (Key, bool) {
	if len(s) == 0 {
		return Key{}, false
	}
	return s[len(s)-1], true
}

// String returns the vim-style representation.
// Examples: "gg", "diw", "<C-x><C-s>".
func (s Sequence) String() string {
	if len(s) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, k := range s {
		sb.WriteString(k.String())
	}
	return sb.String()
}

// Equals returns true if two sequences are identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, k := range s {
		if k != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
// Every sequence has the empty prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, k := range prefix {
		if k != s[i] {
			return false
		}
	}
	return true
}

// HasStrictPrefix returns true if prefix is a proper prefix of s.
func (s Sequence) HasStrictPrefix(prefix Sequence) bool {
	return len(prefix) < len(s) && s.HasPrefix(prefix)
}

// Clone returns a copy of the sequence that shares no storage with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// ParseSequence parses a key sequence string into a Sequence.
// The string can contain space-separated keys or a continuous vim-style sequence.
// Examples: "g g", "gg", "<C-x><C-s>", "<Space>f".
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySpec
	}

	seq := make(Sequence, 0, 4)

	// Check for space-separated format first
	if strings.Contains(s, " ") {
		for _, part := range strings.Fields(s) {
			k, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq = append(seq, k)
		}
		return seq, nil
	}

	// Parse as continuous sequence
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] == '<' {
			end := indexRune(runes[i:], '>')
			if end > 1 {
				k, err := Parse(string(runes[i : i+end+1]))
				if err != nil {
					return nil, err
				}
				seq = append(seq, k)
				i += end + 1
				continue
			}
			// No closing >, treat as literal <
		}
		seq = append(seq, Char(runes[i]))
		i++
	}

	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code and tests.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

func indexRune(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}
