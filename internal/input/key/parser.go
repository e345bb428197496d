package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key specification.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Vim-style: "<C-s>", "<CR>", "<Esc>", "<S-Tab>", "<Space>", "<lt>"
//   - Bare key names: "Enter", "Esc", "Tab"
func Parse(spec string) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Key{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	runes := []rune(spec)
	if len(runes) == 1 {
		return Char(runes[0]), nil
	}

	if c := CodeFromName(spec); c != CodeNone {
		return Special(c), nil
	}

	return Key{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseVimStyle parses the inside of vim notation like "C-s", "S-Tab", "CR".
func parseVimStyle(inner string) (Key, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Key{}, ErrInvalidSpec
	}

	var ctrl, shift bool
	keyPart := inner
	// "C--" is Control+minus, so only split while a key part remains after the hyphen.
	for len(keyPart) > 2 && keyPart[1] == '-' {
		switch keyPart[0] {
		case 'c', 'C':
			ctrl = true
		case 's', 'S':
			shift = true
		default:
			return Key{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, keyPart[:1])
		}
		keyPart = keyPart[2:]
	}

	k, err := parseKeyName(keyPart)
	if err != nil {
		return Key{}, err
	}

	if shift {
		if k.Code != CodeTab {
			return Key{}, fmt.Errorf("%w: shift only applies to Tab in %q", ErrInvalidSpec, inner)
		}
		k = Special(CodeBacktab)
	}
	if ctrl {
		k = Control(k)
	}
	return k, nil
}

func parseKeyName(name string) (Key, error) {
	lower := strings.ToLower(name)
	if r, ok := runeAliases[lower]; ok {
		return Char(r), nil
	}
	if c, ok := keyNameMap[lower]; ok {
		return Special(c), nil
	}
	runes := []rune(name)
	if len(runes) == 1 {
		return Char(runes[0]), nil
	}
	return Key{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Key {
	k, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return k
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	k, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}
