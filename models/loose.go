package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Loose holds a JSON scalar that the source files encode inconsistently:
// a string in some records, a number or null in others. The textual form is
// kept verbatim so callers decide how to parse it.
type Loose struct {
	Text  string
	Valid bool
}

// LooseOf wraps s as a present value.
func LooseOf(s string) Loose {
	return Loose{Text: s, Valid: true}
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (l *Loose) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = Loose{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = LooseOf(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*l = LooseOf(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*l = LooseOf(strconv.FormatBool(b))
	return nil
}

// MarshalJSON writes numbers back as numbers and everything else as a string.
func (l Loose) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(l.Text, 64); err == nil && json.Valid([]byte(l.Text)) {
		return []byte(l.Text), nil
	}
	return json.Marshal(l.Text)
}

// String returns the trimmed text, or "" when absent.
func (l Loose) String() string {
	if !l.Valid {
		return ""
	}
	return strings.TrimSpace(l.Text)
}
