package provider

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/jonathan/lunch-tray/internal/textnorm"
)

// localizedFallbacks is the fixed language chain tried after the
// requested language.
var localizedFallbacks = [2]string{"fi", "en"}

// LocalizedString resolves a textual field that may be a plain scalar,
// a map of language to value, or an array of candidates:
//
//   - a string, number or boolean normalizes directly;
//   - an object tries the requested language, then the fixed fallback
//     languages, then any remaining key in insertion order, recursing
//     into each candidate;
//   - an array tries each element in order;
//   - null, absent or unresolvable values yield the empty string.
func LocalizedString(raw json.RawMessage, lang string) string {
	return textnorm.NormalizeText(resolveLocalized(raw, lang))
}

func resolveLocalized(raw json.RawMessage, lang string) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	case '{':
		return resolveLocalizedObject(trimmed, lang)
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return ""
		}
		for _, elem := range elems {
			if v := resolveLocalized(elem, lang); v != "" {
				return v
			}
		}
		return ""
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	default:
		var f float64
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

func resolveLocalizedObject(raw []byte, lang string) string {
	keys, values, err := decodeOrderedObject(raw)
	if err != nil {
		return ""
	}

	tried := map[string]bool{}
	candidates := append([]string{lang}, localizedFallbacks[:]...)
	for _, key := range candidates {
		if tried[key] {
			continue
		}
		tried[key] = true
		if value, ok := values[key]; ok {
			if v := resolveLocalized(value, lang); v != "" {
				return v
			}
		}
	}
	for _, key := range keys {
		if tried[key] {
			continue
		}
		tried[key] = true
		if v := resolveLocalized(values[key], lang); v != "" {
			return v
		}
	}
	return ""
}

// decodeOrderedObject decodes a JSON object preserving key insertion
// order, which encoding/json maps discard.
func decodeOrderedObject(raw []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	var keys []string
	values := map[string]json.RawMessage{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, &ParseError{Message: "object key is not a string"}
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = value
	}
	return keys, values, nil
}
