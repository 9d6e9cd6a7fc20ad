package schemadoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	llmschema "github.com/shenli/llm-schema"
)

// ImportYAML compiles the first document of a YAML schema file.
func ImportYAML(data []byte) (*llmschema.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("schemadoc: empty YAML document")
		}
		return nil, fmt.Errorf("schemadoc: invalid YAML: %w", err)
	}
	m := yamlAnyToStringMap(node)
	if m == nil {
		return nil, errors.New("schemadoc: YAML root is not a mapping")
	}
	return compile(m)
}

// ImportYAMLByName scans a multi-document YAML bundle and compiles the first
// document whose top-level name matches.
func ImportYAMLByName(data []byte, name string) (*llmschema.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("schemadoc: invalid YAML: %w", err)
		}
		m := yamlAnyToStringMap(node)
		if m == nil {
			continue
		}
		if n, _ := m["name"].(string); n == name {
			return compile(m)
		}
	}
	return nil, fmt.Errorf("schemadoc: schema %q not found in YAML bundle", name)
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
