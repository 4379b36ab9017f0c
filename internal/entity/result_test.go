package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
)

func Test_Result_MarshalOmitsAbsentJSON(t *testing.T) {
	result := entity.Result{Status: 204, Msg: "OK (unknown bytes)", URL: "https://graylog/api/streams/1"}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":204,"msg":"OK (unknown bytes)","url":"https://graylog/api/streams/1"}`, string(data))
}

func Test_Result_Decode(t *testing.T) {
	result := entity.Result{JSON: json.RawMessage(`{"id":"a"}`), Status: 200}

	var body struct {
		Id string `json:"id"`
	}
	require.NoError(t, result.Decode(&body))
	assert.Equal(t, "a", body.Id)

	empty := entity.Result{Status: 200}
	assert.ErrorIs(t, empty.Decode(&body), entity.ErrNoJSON)
}
