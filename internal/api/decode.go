package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// decodeInto unmarshals a response body, mapping failures to *Error. Empty
// bodies are fine; the destination keeps its zero value.
func decodeInto(data []byte, dest any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &Error{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// normalizeList flattens the historical list response shapes, either a bare
// array or an object wrapping the array under one of the given keys, into a
// slice of raw rows. Unknown shapes degrade to an empty list so the ambiguity never
// leaks past this package.
func normalizeList(data []byte, keys ...string) []json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		return items
	}

	if trimmed[0] != '{' {
		return nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil
	}
	for _, key := range keys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			return items
		}
	}
	return nil
}

// Money is a decimal amount as the server renders it. Django serializes
// DecimalField as a quoted string; older endpoints send bare numbers. Both
// decode into the raw text form.
type Money string

func (m *Money) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*m = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*m = Money(s)
		return nil
	}
	*m = Money(trimmed)
	return nil
}

// Float converts the amount for arithmetic, returning 0 for empty or
// malformed values.
func (m Money) Float() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(m)), 64)
	if err != nil {
		return 0
	}
	return v
}
