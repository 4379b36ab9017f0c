//go:generate mockgen -destination=./mock/mock_session.go -package=mock_session . Transport

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/graylog"
)

const Path = "/api/system/sessions"

var DefaultSet = wire.NewSet(
	NewAuthenticator,
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrMalformedSession     = errors.New("malformed authentication response")
)

type Transport interface {
	Host() string
	URL(path string) string
	Do(ctx context.Context, request *graylog.Request) (*graylog.Response, error)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
}

type loginResponse struct {
	SessionId string `json:"session_id"`
}

type Authenticator struct {
	transport Transport
	username  string
	password  string
	logger    zerolog.Logger
}

func NewAuthenticator(transport Transport, config *config.Config, logger *zerolog.Logger) *Authenticator {
	return &Authenticator{
		transport: transport,
		username:  config.Username,
		password:  config.Password,
		logger:    logger.With().Str("component", "session").Logger(),
	}
}

// Authenticate exchanges the configured credentials for a session token.
func (a *Authenticator) Authenticate(ctx context.Context) (entity.Token, error) {
	a.logger.Debug().Str("user", a.username).Msg("opening session")

	resp, err := a.transport.Do(ctx, &graylog.Request{
		Method: http.MethodPost,
		URL:    a.transport.URL(Path),
		Body: loginRequest{
			Username: a.username,
			Password: a.password,
			Host:     a.transport.Host(),
		},
	})
	if err != nil {
		return entity.Token{}, errors.Join(ErrAuthenticationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return entity.Token{}, errors.Join(ErrAuthenticationFailed, graylog.NewHTTPError(resp))
	}

	var session loginResponse
	if err := json.Unmarshal(resp.Body, &session); err != nil {
		return entity.Token{}, errors.Join(ErrMalformedSession, err)
	}

	if session.SessionId == "" {
		return entity.Token{}, errors.Join(ErrMalformedSession, errors.New("session_id is missing"))
	}

	a.logger.Debug().Msg("session opened")

	return entity.NewToken(session.SessionId), nil
}
