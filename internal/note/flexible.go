package note

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// FlexibleField accepts either a JSON-encoded string or an
// already-structured value (object or array) on the wire. The union is
// resolved exactly once, at decode time: a string that itself parses as
// a JSON object or array is promoted to structured data, anything else
// stays opaque text. Decoding never fails on malformed content.
type FlexibleField struct {
	text       string
	doc        gjson.Result
	structured bool
	present    bool
}

// NewFlexibleField resolves a plain string input the same way the JSON
// decoder does. Used by transports that carry all inputs as strings.
func NewFlexibleField(s string) FlexibleField {
	if s == "" {
		return FlexibleField{}
	}
	return resolve(s)
}

func resolve(s string) FlexibleField {
	trimmed := strings.TrimSpace(s)
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && gjson.Valid(trimmed) {
		return FlexibleField{text: s, doc: gjson.Parse(trimmed), structured: true, present: true}
	}
	return FlexibleField{text: s, present: true}
}

func (f *FlexibleField) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch res.Type {
	case gjson.Null:
		*f = FlexibleField{}
	case gjson.String:
		*f = NewFlexibleField(res.String())
	default:
		if res.IsObject() || res.IsArray() {
			*f = FlexibleField{text: string(data), doc: res, structured: true, present: true}
			return nil
		}
		// Numbers and booleans carry no section structure; keep the
		// literal text so nothing the caller sent is dropped.
		*f = FlexibleField{text: res.Raw, present: true}
	}
	return nil
}

func (f FlexibleField) MarshalJSON() ([]byte, error) {
	if !f.present {
		return []byte("null"), nil
	}
	if f.structured {
		return []byte(f.doc.Raw), nil
	}
	return json.Marshal(f.text)
}

// Present reports whether the caller supplied the field at all.
func (f FlexibleField) Present() bool { return f.present && strings.TrimSpace(f.text) != "" }

// Structured reports whether the value resolved to parsed JSON.
func (f FlexibleField) Structured() bool { return f.structured }

// Doc returns the parsed document. Valid only when Structured().
func (f FlexibleField) Doc() gjson.Result { return f.doc }

// Text returns the original textual form of the field.
func (f FlexibleField) Text() string { return f.text }
