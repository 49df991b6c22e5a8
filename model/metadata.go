package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/siherrmann/loregraph/helper"
)

// Metadata is free-form data attached to retrieval results and stored
// snapshots (JSONB in PostgreSQL).
type Metadata map[string]interface{}

// Value implements the driver.Valuer interface for database storage
func (m Metadata) Value() (driver.Value, error) {
	return m.Marshal()
}

// Scan implements the sql.Scanner interface for database retrieval
func (m *Metadata) Scan(value interface{}) error {
	return m.Unmarshal(value)
}

func (m Metadata) Marshal() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]interface{}(m))
}

// Unmarshal accepts JSON bytes, a JSON string or a Metadata value.
func (m *Metadata) Unmarshal(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case Metadata:
		*m = v
		return nil
	case string:
		return json.Unmarshal([]byte(v), m)
	case []byte:
		return json.Unmarshal(v, m)
	}
	return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
}

// Strings returns the value under key as a list of strings. A single
// string yields one element, lists keep their string items in order.
func (m Metadata) Strings(key string) []string {
	switch v := m[key].(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	}
	return nil
}
