package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeYAML decodes a YAML document. An empty document is an empty map.
func decodeYAML(name string, data []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, &ParseError{Path: name, Line: yamlLine(err), Err: err}
	}
	if out == nil {
		return map[string]any{}, nil
	}
	return stringKeys(out).(map[string]any), nil
}

// yamlLine extracts the line of a syntax error, which yaml only reports
// in the message ("yaml: line 3: ...").
func yamlLine(err error) int {
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr != nil {
		return 0
	}
	return line
}

// stringKeys turns the map[any]any values yaml produces for non-string
// keys into map[string]any.
func stringKeys(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = stringKeys(e)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[fmt.Sprint(k)] = stringKeys(e)
		}
		return out
	case []any:
		for i, e := range v {
			v[i] = stringKeys(e)
		}
		return v
	}
	return v
}
