package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aescanero/dago-matcher/internal/eval/compare"
	"github.com/aescanero/dago-matcher/internal/matcher"
)

// Comparator leaf keys inside a match pattern
const (
	numberLeaf = "$number"
	stringLeaf = "$string"
)

// compilePattern turns a decoded match block into a matcher.Pattern.
// {$number: {...}} and {$string: {...}} leaves become comparators and other
// maps become nested patterns. Lists cannot be matched and are rejected.
func compilePattern(raw map[string]any) (matcher.Pattern, error) {
	pattern := make(matcher.Pattern, len(raw))
	for key, value := range raw {
		leaf, err := compileLeaf(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		pattern[key] = leaf
	}
	return pattern, nil
}

func compileLeaf(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if opts, ok := v[numberLeaf]; ok {
			if len(v) != 1 {
				return nil, fmt.Errorf("%s must be the only key", numberLeaf)
			}
			var options compare.NumberOptions
			if err := decodeOptions(opts, &options); err != nil {
				return nil, fmt.Errorf("%s: %w", numberLeaf, err)
			}
			return compare.NewNumber(options)
		}
		if opts, ok := v[stringLeaf]; ok {
			if len(v) != 1 {
				return nil, fmt.Errorf("%s must be the only key", stringLeaf)
			}
			var options compare.StringOptions
			if err := decodeOptions(opts, &options); err != nil {
				return nil, fmt.Errorf("%s: %w", stringLeaf, err)
			}
			return compare.NewString(options)
		}
		for key := range v {
			if strings.HasPrefix(key, "$") {
				return nil, fmt.Errorf("unknown comparator %q", key)
			}
		}
		return compilePattern(v)
	case []any:
		return nil, fmt.Errorf("lists cannot be matched")
	default:
		return value, nil
	}
}

// decodeOptions copies a decoded YAML/JSON block into a typed options struct
func decodeOptions(raw any, out any) error {
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}
	return nil
}
