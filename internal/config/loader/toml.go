package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

func decodeTOML(name string, data []byte) (map[string]any, error) {
	out := make(map[string]any)
	err := toml.Unmarshal(data, &out)
	if err == nil {
		return out, nil
	}

	perr := &ParseError{Path: name, Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	return nil, perr
}

// EncodeTOML renders an options map as TOML.
func EncodeTOML(m map[string]any) ([]byte, error) {
	return toml.Marshal(m)
}
