package ctrl

import (
	"bytes"
	"encoding/json"

	"github.com/tjjh89017/graylog-manage-go/internal/entity"
)

// BuildEnvelope wraps a response into a Result. A body that is empty or not
// valid JSON leaves the JSON field absent.
func BuildEnvelope(status int, msg string, body []byte, url string) *entity.Result {
	result := &entity.Result{
		Status: status,
		Msg:    msg,
		URL:    url,
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		result.JSON = json.RawMessage(bytes.Clone(trimmed))
	}

	return result
}
