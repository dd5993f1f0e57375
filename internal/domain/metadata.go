package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMetadataNotScalar = errors.New("metadata values must be strings, numbers, booleans or null")

// Metadata is an open string-keyed map of scalar values stored as jsonb
type Metadata map[string]interface{}

// Validate rejects nested objects and arrays
func (m Metadata) Validate() error {
	for key, value := range m {
		switch value.(type) {
		case nil, string, bool, float64, float32, int, int32, int64, json.Number:
		default:
			return fmt.Errorf("%w: key %q holds %T", ErrMetadataNotScalar, key, value)
		}
	}
	return nil
}

// Value implements driver.Valuer
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (m *Metadata) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Metadata", src)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode metadata: %w", err)
	}
	*m = decoded
	return nil
}
