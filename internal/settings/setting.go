// Package settings provides typed application settings that can be
// changed with "set <name> <value>" commands.
//
// Each Setting declares its type, default and validation rules. The Store
// coerces raw textual values into a Variant and applies it.
package settings

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Type represents the data type of a setting.
type Type uint8

const (
	// TypeString represents a string value.
	TypeString Type = iota
	// TypeInt represents an integer value.
	TypeInt
	// TypeFloat represents a floating-point value.
	TypeFloat
	// TypeBool represents a boolean value.
	TypeBool
	// TypeDuration represents a time duration.
	TypeDuration
	// TypeEnum represents a value from a fixed set.
	TypeEnum
)

// String returns the string representation of the type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeDuration:
		return "duration"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Setting defines a setting with its metadata.
type Setting struct {
	// Name is the name used in "set" commands.
	Name string

	// Type is the setting's data type.
	Type Type

	// Default is the default value, already of the Go type matching Type.
	Default any

	// Description is shown next to the name in completions.
	Description string

	// Enum lists allowed values for enum types.
	Enum []string

	// Minimum for numeric types (nil means no minimum).
	Minimum *float64

	// Maximum for numeric types (nil means no maximum).
	Maximum *float64

	// Pattern for string validation (regex).
	Pattern string

	// compiledPattern is the compiled regex pattern (lazily initialized).
	compiledPattern *regexp.Regexp
}

// Value errors, wrapped with the offending value.
var (
	ErrWrongType  = errors.New("wrong type")
	ErrOutOfRange = errors.New("out of range")
	ErrNotAllowed = errors.New("not allowed")
)

// parsers convert the text of a set command for each type.
var parsers = map[Type]func(raw string) (any, error){
	TypeString: func(raw string) (any, error) { return raw, nil },
	TypeEnum:   func(raw string) (any, error) { return raw, nil },
	TypeInt: func(raw string) (any, error) {
		return strconv.ParseInt(raw, 10, 64)
	},
	TypeFloat: func(raw string) (any, error) {
		return strconv.ParseFloat(raw, 64)
	},
	TypeBool: func(raw string) (any, error) {
		switch strings.ToLower(raw) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
		return nil, strconv.ErrSyntax
	},
	TypeDuration: func(raw string) (any, error) {
		return time.ParseDuration(raw)
	},
}

// Coerce converts the text of a set command to the setting's type and
// validates the result.
func (s *Setting) Coerce(raw string) (any, error) {
	parse, ok := parsers[s.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported type %s", ErrWrongType, s.Type)
	}
	raw = strings.TrimSpace(raw)
	value, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrWrongType, s.Type, raw)
	}
	if err := s.Validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

// Validate checks that value has the setting's Go type and satisfies its
// enum, range and pattern rules.
func (s *Setting) Validate(value any) error {
	if !s.accepts(value) {
		return fmt.Errorf("%w: expected %s, got %T", ErrWrongType, s.Type, value)
	}

	switch s.Type {
	case TypeEnum:
		if len(s.Enum) > 0 && !slices.Contains(s.Enum, value.(string)) {
			return fmt.Errorf("%w: %q is not one of %s", ErrNotAllowed, value, strings.Join(s.Enum, ", "))
		}
	case TypeInt, TypeFloat:
		n := toFloat(value)
		if s.Minimum != nil && n < *s.Minimum {
			return fmt.Errorf("%w: %v is below %v", ErrOutOfRange, value, *s.Minimum)
		}
		if s.Maximum != nil && n > *s.Maximum {
			return fmt.Errorf("%w: %v is above %v", ErrOutOfRange, value, *s.Maximum)
		}
	case TypeString:
		if s.Pattern == "" {
			break
		}
		if s.compiledPattern == nil {
			re, err := regexp.Compile(s.Pattern)
			if err != nil {
				return fmt.Errorf("setting %s: bad pattern: %w", s.Name, err)
			}
			s.compiledPattern = re
		}
		if !s.compiledPattern.MatchString(value.(string)) {
			return fmt.Errorf("%w: %q does not match %s", ErrNotAllowed, value, s.Pattern)
		}
	}
	return nil
}

func (s *Setting) accepts(value any) bool {
	switch value.(type) {
	case string:
		return s.Type == TypeString || s.Type == TypeEnum
	case int, int64:
		return s.Type == TypeInt || s.Type == TypeFloat
	case float64:
		return s.Type == TypeFloat
	case bool:
		return s.Type == TypeBool
	case time.Duration:
		return s.Type == TypeDuration
	}
	return false
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

// MinValue returns a pointer for use as Minimum.
func MinValue(v float64) *float64 {
	return &v
}

// MaxValue returns a pointer for use as Maximum.
func MaxValue(v float64) *float64 {
	return &v
}
