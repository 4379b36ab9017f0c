package entity

import (
	"bytes"
	"encoding/json"
)

type Entry struct {
	Key   string
	Value any
}

// Payload is a JSON object that keeps its keys in insertion order.
type Payload []Entry

func (p Payload) Get(key string) (any, bool) {
	for _, e := range p {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (p *Payload) Set(key string, value any) {
	for i, e := range *p {
		if e.Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Entry{Key: key, Value: value})
}

func (p Payload) Keys() []string {
	keys := make([]string, len(p))
	for i, e := range p {
		keys[i] = e.Key
	}
	return keys
}

func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, e := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
