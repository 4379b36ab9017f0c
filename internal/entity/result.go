package entity

import (
	"encoding/json"
	"errors"
)

var (
	ErrNoJSON = errors.New("result carries no JSON body")
)

// Result is the envelope returned by every invocation. JSON is absent when
// the response body was empty or not valid JSON.
type Result struct {
	JSON   json.RawMessage `json:"json,omitempty"`
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	URL    string          `json:"url"`
}

func (r *Result) HasJSON() bool {
	return len(r.JSON) > 0
}

func (r *Result) Decode(v any) error {
	if !r.HasJSON() {
		return ErrNoJSON
	}
	return json.Unmarshal(r.JSON, v)
}
