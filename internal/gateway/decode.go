package gateway

import "encoding/json"

// DecodeList resolves the duck-typed list envelopes the backend has shipped
// over time: the same logical list may arrive under any of several keys
// ({"weights": [...]}, {"items": [...]}) or as a bare top-level array. Keys
// are tried in priority order; anything unrecognized decodes to an empty
// list, never an error.
func DecodeList[T any](raw json.RawMessage, keys ...string) []T {
	if len(raw) == 0 {
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, key := range keys {
			if inner, ok := envelope[key]; ok {
				if out, ok := decodeArray[T](inner); ok {
					return out
				}
			}
		}
		return nil
	}

	if out, ok := decodeArray[T](raw); ok {
		return out
	}
	return nil
}

// DecodeObject unwraps {"<key>": {...}} or, failing that, treats the whole
// payload as the object. Returns false when neither form decodes.
func DecodeObject[T any](raw json.RawMessage, keys ...string) (T, bool) {
	var zero T
	if len(raw) == 0 {
		return zero, false
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, key := range keys {
			if inner, ok := envelope[key]; ok && len(inner) > 0 && string(inner) != "null" {
				var out T
				if err := json.Unmarshal(inner, &out); err == nil {
					return out, true
				}
			}
		}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err == nil {
		return out, true
	}
	return zero, false
}

func decodeArray[T any](raw json.RawMessage) ([]T, bool) {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}
