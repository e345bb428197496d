package settings

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrUnknownSetting indicates a setting name that was never declared.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrSettingAlreadyRegistered indicates an attempt to declare a setting twice.
	ErrSettingAlreadyRegistered = errors.New("setting already registered")
)

// Variant is a coerced setting value ready to be applied.
type Variant struct {
	Name  string
	Value any
}

func (v Variant) String() string {
	return fmt.Sprintf("%s=%v", v.Name, v.Value)
}

// CoercionError reports a raw value that could not be turned into a Variant.
type CoercionError struct {
	Name string
	Raw  string
	Err  error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// Store holds setting definitions and current values.
type Store struct {
	settings map[string]*Setting
	values   map[string]any
}

// NewStore creates a store with the given settings at their defaults.
func NewStore(defs ...Setting) (*Store, error) {
	s := &Store{
		settings: make(map[string]*Setting, len(defs)),
		values:   make(map[string]any, len(defs)),
	}
	for _, def := range defs {
		if err := s.Register(def); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register declares a setting.
// Returns an error if the name is taken or the default is invalid.
func (s *Store) Register(def Setting) error {
	if _, exists := s.settings[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrSettingAlreadyRegistered, def.Name)
	}
	d := &def // Copy to heap
	if d.Default != nil {
		if err := d.Validate(d.Default); err != nil {
			return fmt.Errorf("default of %s: %w", d.Name, err)
		}
		s.values[d.Name] = d.Default
	}
	s.settings[d.Name] = d
	return nil
}

// ToVariant coerces raw into a value of the named setting.
// Failures are returned as *CoercionError.
func (s *Store) ToVariant(name, raw string) (Variant, error) {
	def, ok := s.settings[name]
	if !ok {
		return Variant{}, &CoercionError{Name: name, Raw: raw, Err: ErrUnknownSetting}
	}
	value, err := def.Coerce(raw)
	if err != nil {
		return Variant{}, &CoercionError{Name: name, Raw: raw, Err: err}
	}
	return Variant{Name: name, Value: value}, nil
}

// Apply stores the value of v. Variants of unknown settings are ignored.
func (s *Store) Apply(v Variant) {
	if _, ok := s.settings[v.Name]; ok {
		s.values[v.Name] = v.Value
	}
}

// Get returns the current value of a setting.
func (s *Store) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// GetString returns a string setting, or "" if unset or of another type.
func (s *Store) GetString(name string) string {
	v, _ := s.values[name].(string)
	return v
}

// GetInt returns an integer setting, or 0.
func (s *Store) GetInt(name string) int64 {
	v, _ := s.values[name].(int64)
	return v
}

// GetBool returns a boolean setting, or false.
func (s *Store) GetBool(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// GetDuration returns a duration setting, or 0.
func (s *Store) GetDuration(name string) time.Duration {
	v, _ := s.values[name].(time.Duration)
	return v
}

// Setting returns the definition of a setting.
func (s *Store) Setting(name string) (*Setting, bool) {
	d, ok := s.settings[name]
	return d, ok
}

// Settings returns all definitions sorted by name.
func (s *Store) Settings() []*Setting {
	out := make([]*Setting, 0, len(s.settings))
	for _, d := range s.settings {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
