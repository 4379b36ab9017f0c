package entity

import (
	"encoding/base64"
)

const sessionSuffix = ":session"

// Token is the session credential sent with every authorised call.
type Token struct {
	value string
}

func NewToken(sessionId string) Token {
	return Token{value: base64.StdEncoding.EncodeToString([]byte(sessionId + sessionSuffix))}
}

func (t Token) IsZero() bool {
	return t.value == ""
}

// Header is the Authorization header value.
func (t Token) Header() string {
	return "Basic " + t.value
}

func (t Token) String() string {
	if t.IsZero() {
		return ""
	}
	return "********"
}
