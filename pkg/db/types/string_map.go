package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringMap stores a flat string-to-string mapping as a JSONB column.
type StringMap map[string]string

func (m *StringMap) Scan(src any) error {
	if src == nil {
		*m = StringMap{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return m.parseJSON(v)
	case string:
		return m.parseJSON([]byte(v))
	default:
		return fmt.Errorf("StringMap: unsupported Scan type %T", src)
	}
}

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	payload, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, fmt.Errorf("StringMap: marshal: %w", err)
	}
	return string(payload), nil
}

// Clone returns an independent copy so stored snapshots stay immutable.
func (m StringMap) Clone() StringMap {
	if m == nil {
		return nil
	}
	out := make(StringMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m *StringMap) parseJSON(payload []byte) error {
	if len(payload) == 0 {
		*m = StringMap{}
		return nil
	}
	decoded := map[string]string{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return fmt.Errorf("StringMap: parse %q: %w", string(payload), err)
	}
	*m = decoded
	return nil
}
