package csvpreview

import (
	"bytes"
	"encoding/json"
)

// IDKey is the synthesized identifier column. A header with this exact name
// overrides the synthesized value.
const IDKey = "id"

// Record is one parsed row keyed by header name. Keys keep the order in which
// they were first assigned, starting with IDKey.
type Record struct {
	keys   []string
	values map[string]string
}

func newRecord(id string) Record {
	return Record{keys: []string{IDKey}, values: map[string]string{IDKey: id}}
}

func (r *Record) set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// ID returns the record identifier.
func (r Record) ID() string { return r.values[IDKey] }

// Get returns the value stored under key and whether it is present.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the record's keys in assignment order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len is the number of fields, id included.
func (r Record) Len() int { return len(r.keys) }

// MarshalJSON writes the record as an object whose keys follow Keys.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
