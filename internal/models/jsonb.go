package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB columns hold the embedded sub-documents of an entity (histories,
// requests, messages). They are rewritten as a whole with their owner.

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("failed to scan jsonb: unsupported type %T", value)
	}
}

// StringSlice is a list of strings persisted as a JSON array.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue([]string(s))
}

func (s *StringSlice) Scan(value interface{}) error {
	*s = StringSlice{}
	return jsonScan(value, (*[]string)(s))
}

func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return jsonValue([]StatusChange(h))
}

func (h *StatusHistory) Scan(value interface{}) error {
	*h = StatusHistory{}
	return jsonScan(value, (*[]StatusChange)(h))
}

func (h ValidationHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return jsonValue([]ValidationEntry(h))
}

func (h *ValidationHistory) Scan(value interface{}) error {
	*h = ValidationHistory{}
	return jsonScan(value, (*[]ValidationEntry)(h))
}

func (r ValidationRequests) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	return jsonValue([]ValidationRequest(r))
}

func (r *ValidationRequests) Scan(value interface{}) error {
	*r = ValidationRequests{}
	return jsonScan(value, (*[]ValidationRequest)(r))
}

func (p RecruiterPermissions) Value() (driver.Value, error) {
	return jsonValue(p)
}

func (p *RecruiterPermissions) Scan(value interface{}) error {
	return jsonScan(value, p)
}

func (a AnemRecord) Value() (driver.Value, error) {
	return jsonValue(a)
}

func (a *AnemRecord) Scan(value interface{}) error {
	return jsonScan(value, a)
}

func (m Messages) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	return jsonValue([]Message(m))
}

func (m *Messages) Scan(value interface{}) error {
	*m = Messages{}
	return jsonScan(value, (*[]Message)(m))
}

func (p AdminPermissions) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	return jsonValue(map[Capability]bool(p))
}

func (p *AdminPermissions) Scan(value interface{}) error {
	*p = AdminPermissions{}
	return jsonScan(value, (*map[Capability]bool)(p))
}

func (d LogDetails) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	return jsonValue(map[string]interface{}(d))
}

func (d *LogDetails) Scan(value interface{}) error {
	*d = LogDetails{}
	return jsonScan(value, (*map[string]interface{})(d))
}
