package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/tjjh89017/graylog-manage-go/internal/entity"
)

func Test_NewSerializer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "json"},
		{format: ""},
		{format: "yaml"},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		_, err := NewSerializer(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewSerializer(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedOutput) {
			t.Errorf("NewSerializer(%q) error = %v, want ErrUnsupportedOutput", tt.format, err)
		}
	}
}

func Test_JSONSerializer_Serialize(t *testing.T) {
	t.Parallel()

	result := &entity.Result{
		JSON:   json.RawMessage(`{"total":0,"streams":[]}`),
		Status: 200,
		Msg:    "OK (24 bytes)",
		URL:    "https://graylog/api/streams",
	}

	var buf bytes.Buffer
	if err := (&JSONSerializer{}).Serialize(&buf, result); err != nil {
		t.Fatal(err)
	}

	expected := `{"json":{"total":0,"streams":[]},"status":200,"msg":"OK (24 bytes)","url":"https://graylog/api/streams"}` + "\n"
	if buf.String() != expected {
		t.Fatalf("expected: %s, got: %s", expected, buf.String())
	}
}

func Test_YAMLSerializer_Serialize(t *testing.T) {
	t.Parallel()

	result := &entity.Result{
		JSON:   json.RawMessage(`{"title":"true","shards":4,"rules":[{"field":"source"}]}`),
		Status: 200,
		Msg:    "OK (57 bytes)",
		URL:    "https://graylog/api/streams/s1",
	}

	var buf bytes.Buffer
	if err := (&YAMLSerializer{}).Serialize(&buf, result); err != nil {
		t.Fatal(err)
	}

	expected := `json:
  title: "true"
  shards: 4
  rules:
    - field: source
status: 200
msg: OK (57 bytes)
url: https://graylog/api/streams/s1
`
	if buf.String() != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func Test_YAMLSerializer_AbsentJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (&YAMLSerializer{}).Serialize(&buf, &entity.Result{Status: 204, Msg: "OK (0 bytes)", URL: "u"}); err != nil {
		t.Fatal(err)
	}

	expected := "status: 204\nmsg: OK (0 bytes)\nurl: u\n"
	if buf.String() != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}
