package model

import (
	"bytes"
	"encoding/json"
)

// Reflections is the stored set of style rules and user facts for one assistant.
// Both lists are normalized when decoded; see RuleList.
type Reflections struct {
	StyleRules RuleList `json:"styleRules"`
	Content    RuleList `json:"content"`
}

// RuleList is an ordered list of rule strings. Stored values may hold either a JSON array
// of strings or a string containing a JSON-encoded array. A value that cannot be read as a
// list decodes without error but is marked invalid and keeps its raw text.
type RuleList struct {
	items []string
	raw   string
	valid bool
}

// NewRuleList creates a valid RuleList from items
func NewRuleList(items ...string) RuleList {
	if items == nil {
		items = []string{}
	}
	return RuleList{items: items, valid: true}
}

// ParseRuleList reads s as a JSON-encoded array of strings
func ParseRuleList(s string) RuleList {
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil || items == nil {
		return RuleList{raw: s}
	}
	return RuleList{items: items, valid: true}
}

// Items returns the list entries in storage order. Nil when the list is invalid.
func (l RuleList) Items() []string {
	return l.items
}

// Valid reports whether the stored value could be read as a list
func (l RuleList) Valid() bool {
	return l.valid
}

// Raw returns the original text of an invalid list
func (l RuleList) Raw() string {
	return l.raw
}

var jsonNull = []byte("null")

// UnmarshalJSON implements json.Unmarshaler
func (l *RuleList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*l = RuleList{raw: string(data)}
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = NewRuleList(items...)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = ParseRuleList(s)
		return nil
	}

	*l = RuleList{raw: string(data)}
	return nil
}

// MarshalJSON implements json.Marshaler. Invalid lists are written back as their raw string.
func (l RuleList) MarshalJSON() ([]byte, error) {
	if !l.valid {
		return json.Marshal(l.raw)
	}
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}
