package railapi

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
)

// envelope is the common wrapper of every upstream response.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeData unwraps the "data" field of an upstream response into out.
// It returns ErrNoData when the field is absent, null or empty, so the
// tools can report "no results" separately from transport failures.
func DecodeData(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrap(err, "failed to decode upstream response")
	}
	if isEmptyData(env.Data) {
		if env.Message != "" {
			return errors.WithMessage(ErrNoData, env.Message)
		}
		return errors.WithStack(ErrNoData)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(err, "failed to decode upstream data")
	}
	return nil
}

func isEmptyData(raw json.RawMessage) bool {
	data := bytes.TrimSpace(raw)
	switch string(data) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

// Record is a loosely decoded upstream object. The payload shapes are
// inconsistent across responses, so every logical field is read through an
// ordered chain of candidate key names, first present wins.
type Record map[string]any

// Str returns the first non-empty string value among the candidate keys.
func (r Record) Str(keys ...string) string {
	vals := make([]string, 0, len(keys))
	for _, key := range keys {
		vals = append(vals, asString(r[key]))
	}
	return values.StringsCoalesce(vals...)
}

// StrDef is Str with a default placeholder for absent fields.
func (r Record) StrDef(def string, keys ...string) string {
	return values.StringsCoalesce(r.Str(keys...), def)
}

// Int returns the first numeric value among the candidate keys.
func (r Record) Int(keys ...string) (int, bool) {
	for _, key := range keys {
		switch v := r[key].(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return int(n), true
			}
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// Bool returns the first boolean value among the candidate keys.
func (r Record) Bool(keys ...string) bool {
	for _, key := range keys {
		switch v := r[key].(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		case float64:
			return v != 0
		}
	}
	return false
}

// Rec returns the first nested object among the candidate keys.
func (r Record) Rec(keys ...string) Record {
	for _, key := range keys {
		if m, ok := r[key].(map[string]any); ok {
			return Record(m)
		}
	}
	return nil
}

// List returns the first list of objects among the candidate keys.
func (r Record) List(keys ...string) []Record {
	for _, key := range keys {
		items, ok := r[key].([]any)
		if !ok {
			continue
		}
		recs := make([]Record, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				recs = append(recs, Record(m))
			}
		}
		return recs
	}
	return nil
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}
