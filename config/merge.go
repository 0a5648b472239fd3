package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedConfig is matched by every MalformedConfigError.
var ErrMalformedConfig = errors.New("config: malformed config")

// MalformedConfigError reports a key that holds a table in one layer and a plain value in another.
type MalformedConfigError struct {
	Key string
}

func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("config: %s key is malformed in one of the configs", e.Key)
}

func (e *MalformedConfigError) Is(target error) bool {
	return target == ErrMalformedConfig
}

// Merge combines two config layers; b has the higher precedence.  Tables are merged recursively,
// plain values (arrays included) from b replace those from a.  Neither input is modified.
func Merge(a, b map[string]any) (map[string]any, error) {
	return merge(a, b, nil)
}

// MergeAll folds the layers from lowest to highest precedence.
func MergeAll(layers ...map[string]any) (map[string]any, error) {
	merged := map[string]any{}
	for _, layer := range layers {
		m, err := Merge(merged, layer)
		if err != nil {
			return nil, err
		}
		merged = m
	}
	return merged, nil
}

func merge(a, b map[string]any, path []string) (map[string]any, error) {
	out := make(map[string]any, len(a)+len(b))

	for k, av := range a {
		out[k] = copyValue(av)
	}

	for k, bv := range b {
		av, ok := a[k]
		if !ok {
			out[k] = copyValue(bv)
			continue
		}

		key := append(append([]string{}, path...), k)
		am, aIsMap := av.(map[string]any)
		bm, bIsMap := bv.(map[string]any)

		switch {
		case aIsMap && bIsMap:
			m, err := merge(am, bm, key)
			if err != nil {
				return nil, err
			}
			out[k] = m
		case aIsMap != bIsMap:
			return nil, &MalformedConfigError{Key: strings.Join(key, ".")}
		default:
			out[k] = copyValue(bv)
		}
	}

	return out, nil
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = copyValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = copyValue(vv)
		}
		return s
	default:
		return v
	}
}
