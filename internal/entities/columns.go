package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The types below are stored in jsonb columns.

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *StringList) Scan(src any) error { return scanJSON(src, l) }

type Object map[string]any

func (o Object) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	return jsonValue(o)
}

func (o *Object) Scan(src any) error { return scanJSON(src, o) }

type ObjectList []map[string]any

func (l ObjectList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *ObjectList) Scan(src any) error { return scanJSON(src, l) }

type Messages []ChatMessage

func (m Messages) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	return jsonValue(m)
}

func (m *Messages) Scan(src any) error { return scanJSON(src, m) }

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into json column", src)
	}
}
