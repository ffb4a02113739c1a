package caesar

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"
)

// Value implements driver.Valuer for database storage
func (o Offset) Value() (driver.Value, error) {
	return int64(o), nil
}

// Scan implements sql.Scanner for database retrieval
func (o *Offset) Scan(src interface{}) error {
	if src == nil {
		*o = 0
		return nil
	}
	switch v := src.(type) {
	case Offset:
		*o = v
		return nil
	case int64:
		parsed, err := offsetFromInt64(v)
		if err != nil {
			return err
		}
		*o = parsed
		return nil
	case []byte:
		return o.UnmarshalText(v)
	case string:
		return o.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("caesar: cannot scan %T into Offset", src)
	}
}

// NullOffset can be used with the standard sql package to represent an
// Offset value that can be NULL in the database.
type NullOffset struct {
	Offset Offset
	Valid  bool
}

// Compile-time interface checks for NullOffset
var (
	_ driver.Valuer            = NullOffset{}
	_ sql.Scanner              = (*NullOffset)(nil)
	_ json.Marshaler           = NullOffset{}
	_ json.Unmarshaler         = (*NullOffset)(nil)
	_ encoding.TextMarshaler   = NullOffset{}
	_ encoding.TextUnmarshaler = (*NullOffset)(nil)
)

// Value implements the driver.Valuer interface.
func (n NullOffset) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Offset.Value()
}

// Scan implements the sql.Scanner interface.
func (n *NullOffset) Scan(src interface{}) error {
	if src == nil {
		n.Offset, n.Valid = 0, false
		return nil
	}
	n.Valid = true
	return n.Offset.Scan(src)
}

var nullJSON = []byte("null")

// MarshalJSON marshals the NullOffset as null or the nested Offset as a number.
func (n NullOffset) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return nullJSON, nil
	}
	return n.Offset.MarshalJSON()
}

// UnmarshalJSON unmarshals a NullOffset.
func (n *NullOffset) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.Offset, n.Valid = 0, false
		return nil
	}
	err := n.Offset.UnmarshalJSON(b)
	n.Valid = (err == nil)
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (n NullOffset) MarshalText() ([]byte, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Offset.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NullOffset) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		n.Offset, n.Valid = 0, false
		return nil
	}
	err := n.Offset.UnmarshalText(b)
	n.Valid = (err == nil)
	return err
}
