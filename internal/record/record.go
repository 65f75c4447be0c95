package record

import (
	"encoding/json"
	"strconv"
)

// Record is an in-flight catalog record: a parsed JSON object from a legacy
// dump or from the record store. Keys are the record's own fields; a persisted
// record additionally carries its "pid".
type Record map[string]any

// FromJSON parses a single JSON object into a Record.
func FromJSON(data []byte) (Record, error) {
	rec := Record{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r Record) JSON() ([]byte, error) {
	return json.Marshal(map[string]any(r))
}

func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r Record) Get(key string) any {
	return r[key]
}

// GetString returns the field rendered as a string, "" if absent.
func (r Record) GetString(key string) string {
	return Stringify(r[key])
}

func (r Record) Set(key string, value any) {
	r[key] = value
}

func (r Record) Delete(key string) {
	delete(r, key)
}

// PID returns the record's persisted identifier, "" if not yet minted.
func (r Record) PID() string {
	return r.GetString("pid")
}

// Copy returns a deep copy of the record.
func (r Record) Copy() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

// Stringify renders a JSON scalar the same way everywhere: index terms,
// term filters and natural keys must agree on the representation. Integral
// floats drop the fraction so a dump's 200 and "200" resolve to each other.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
