package members

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Field names a settable record column.
type Field string

// Settable fields. The id is the join key and cannot be set.
const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldRole  Field = "role"
)

// Record errors.
var (
	ErrUnknownField = errors.New("unknown record field")
	ErrMissingID    = errors.New("record has no id")
)

// Record is one member row.
//
// IsSelected and IsEditing are view flags; they are never read from or
// written to the wire.
type Record struct {
	ID    string `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role"  yaml:"role"`

	IsSelected bool `json:"-" yaml:"-"`
	IsEditing  bool `json:"-" yaml:"-"`
}

// Value returns the value of f on r.
func (r Record) Value(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldRole:
		return r.Role
	default:
		return ""
	}
}

// With returns a copy of r with f set to value.
func (r Record) With(f Field, value string) (Record, error) {
	switch f {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldRole:
		r.Role = value
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return r, nil
}

// searchText is the concatenation of every field value, in wire order and
// without separators, that Search matches against.
func (r Record) searchText() string {
	return r.ID + r.Name + r.Email + r.Role
}

// UnmarshalJSON accepts both string and numeric ids. Numeric ids are kept as
// their decimal text so that the id stays a plain string join key.
func (r *Record) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID    json.RawMessage `json:"id"`
		Name  string          `json:"name"`
		Email string          `json:"email"`
		Role  string          `json:"role"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	id, err := decodeID(wire.ID)
	if err != nil {
		return err
	}

	*r = Record{ID: id, Name: wire.Name, Email: wire.Email, Role: wire.Role}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", ErrMissingID
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decoding id: %w", err)
		}
		if s == "" {
			return "", ErrMissingID
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decoding id %s: %w", raw, err)
	}
	return n.String(), nil
}
