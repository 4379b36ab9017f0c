package graylog

import "fmt"

// HTTPError is a response that did not carry the expected status.
type HTTPError struct {
	StatusCode int    `json:"status"`
	Message    string `json:"msg"`
	Body       string `json:"body"`
	URL        string `json:"url"`
}

func NewHTTPError(resp *Response) *HTTPError {
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Message:    resp.Message,
		Body:       string(resp.Body),
		URL:        resp.URL,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Status: %s, Message: %s", e.Message, e.Body)
}
