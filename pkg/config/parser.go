package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Parse flattens a JSON config document into dotted keys.
//
// Example:
//
//	{"user": {"name": "Ada"}, "core": {"compression": "zstd"}}
//
// becomes user.name=Ada and core.compression=zstd. Booleans and numbers are
// kept in their JSON spelling; arrays are rejected.
func Parse(content []byte) (map[string]string, error) {
	out := make(map[string]string)
	if len(bytes.TrimSpace(content)) == 0 {
		return out, nil
	}

	var doc map[string]any
	if e := json.Unmarshal(content, &doc); e != nil {
		return nil, newError("Parse", malformed, "invalid JSON configuration", e)
	}
	if e := flatten("", doc, out); e != nil {
		return nil, e
	}
	return out, nil
}

func flatten(prefix string, section map[string]any, out map[string]string) error {
	for name, value := range section {
		key := strings.ToLower(name)
		if prefix != "" {
			key = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			if e := flatten(key, v, out); e != nil {
				return e
			}
		case string:
			out[key] = v
		case bool, float64:
			out[key] = fmt.Sprint(v)
		case nil:
		default:
			return newError("Parse", malformed, fmt.Sprintf("unsupported value for %s", key), nil)
		}
	}
	return nil
}

// Serialize nests dotted keys back into an indented JSON document.
func Serialize(entries map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		section := doc
		for _, p := range parts[:len(parts)-1] {
			next, ok := section[p].(map[string]any)
			if !ok {
				if _, taken := section[p]; taken {
					return nil, newError("Serialize", invalidInput, "key conflicts with a value: "+key, nil)
				}
				next = make(map[string]any)
				section[p] = next
			}
			section = next
		}
		leaf := parts[len(parts)-1]
		if _, isSection := section[leaf].(map[string]any); isSection {
			return nil, newError("Serialize", invalidInput, "key conflicts with a section: "+key, nil)
		}
		section[leaf] = entries[key]
	}

	data, e := json.MarshalIndent(doc, "", "  ")
	if e != nil {
		return nil, newError("Serialize", malformed, "failed to encode configuration", e)
	}
	return append(data, '\n'), nil
}
