// Package types provides the data model shared by the extraction, cleaning and storage layers.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindNull
	kindText
	kindList
)

// Value is a raw field value as found in an advertisement: a piece of text,
// an ordered list of text items, or an explicit null. The zero Value means
// the field was never supplied.
type Value struct {
	kind  valueKind
	text  string
	items []string
}

// Null is a field that was looked up but carried no value.
var Null = Value{kind: kindNull}

// Text wraps a single string.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// List wraps an ordered list of strings. The slice is copied.
func List(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: kindList, items: cp}
}

// Present reports whether the field was supplied at all (null counts as supplied).
func (v Value) Present() bool { return v.kind != kindAbsent }

// IsNull reports an explicit null.
func (v Value) IsNull() bool { return v.kind == kindNull }

// IsText reports a single string value.
func (v Value) IsText() bool { return v.kind == kindText }

// IsList reports a list value.
func (v Value) IsList() bool { return v.kind == kindList }

// Items returns the list items, or a one-element slice for text. Absent and
// null values return nil.
func (v Value) Items() []string {
	switch v.kind {
	case kindList:
		cp := make([]string, len(v.items))
		copy(cp, v.items)
		return cp
	case kindText:
		return []string{v.text}
	}
	return nil
}

// String returns the text, or the list items joined by a single space.
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindList:
		return strings.Join(v.items, " ")
	}
	return ""
}

// Blank reports whether the value counts as missing for validation:
// absent, null, or text that is whitespace only or the literal "not specified".
// Lists are never blank, even when empty.
func (v Value) Blank() bool {
	switch v.kind {
	case kindAbsent, kindNull:
		return true
	case kindText:
		s := strings.ToLower(strings.TrimSpace(v.text))
		return s == "" || s == "not specified"
	}
	return false
}

// Trimmed returns a copy with surrounding whitespace removed from text values.
// List items are left untouched.
func (v Value) Trimmed() Value {
	if v.kind == kindText {
		return Text(strings.TrimSpace(v.text))
	}
	return v
}

// Equal compares kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.text != o.text || len(v.items) != len(o.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// Interface returns the value as a plain Go value for flat documents:
// nil, string or []string.
func (v Value) Interface() any {
	switch v.kind {
	case kindText:
		return v.text
	case kindList:
		return v.Items()
	}
	return nil
}

// ValueOf converts a decoded document value back into a Value.
func ValueOf(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null, nil
	case string:
		return Text(x), nil
	case []string:
		return List(x...), nil
	case []any:
		items := make([]string, 0, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("list item %d is %T, want string", i, item)
			}
			items = append(items, s)
		}
		return List(items...), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", raw)
}

// MarshalJSON encodes null, a string or an array of strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts null, a string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
