package ctrl_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"github.com/tjjh89017/graylog-manage-go/internal/ctrl"
	mock "github.com/tjjh89017/graylog-manage-go/internal/ctrl/mock"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/repo"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
	"github.com/tjjh89017/graylog-manage-go/internal/session"
	"go.uber.org/mock/gomock"
)

func newActionController(authenticator ctrl.Authenticator, transport ctrl.Transport, clock ctrl.Clock, applyDefaults bool) *ctrl.ActionController {
	logger := zerolog.Nop()
	cfg := &config.Config{ApplyDefaults: applyDefaults}

	return ctrl.NewActionController(repo.NewModules(), authenticator, newDispatcher(transport, clock), cfg, &logger)
}

func TestActionController_Execute_List(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	authenticator := mock.NewMockAuthenticator(mockCtrl)
	authenticator.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

	var calls []sent
	transport := newTransport(mockCtrl)
	transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, &calls, http.StatusOK, `{"streams":[],"total":0}`))

	resp, err := newActionController(authenticator, transport, nil, true).
		Execute(context.Background(), &ctrl.ActionRequest{Module: "graylog_streams"})
	require.NoError(t, err)

	assert.False(t, resp.Changed)
	assert.Equal(t, http.StatusOK, resp.Result.Status)
	assert.Equal(t, baseURL+"/api/streams", calls[0].url)
}

func TestActionController_Execute_QueryUsesNameField(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	authenticator := mock.NewMockAuthenticator(mockCtrl)
	authenticator.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

	var calls []sent
	transport := newTransport(mockCtrl)
	gomock.InOrder(
		transport.EXPECT().Do(gomock.Any(), gomock.Any()).
			DoAndReturn(reply(t, &calls, http.StatusOK, `{"streams":[{"id":"s1","title":"app"}]}`)),
		transport.EXPECT().Do(gomock.Any(), gomock.Any()).
			DoAndReturn(reply(t, &calls, http.StatusOK, `{"id":"s1","title":"app"}`)),
	)

	resp, err := newActionController(authenticator, transport, nil, true).Execute(context.Background(), &ctrl.ActionRequest{
		Module: "streams",
		Action: "query_streams",
		Fields: entity.Fields{"stream_name": "app", "title": "ignored"},
	})
	require.NoError(t, err)

	assert.Equal(t, baseURL+"/api/streams/s1", calls[1].url)
	assert.JSONEq(t, `{"id":"s1","title":"app"}`, string(resp.Result.JSON))
}

func TestActionController_Execute_CreateAppliesDefaults(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	authenticator := mock.NewMockAuthenticator(mockCtrl)
	authenticator.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

	var calls []sent
	transport := newTransport(mockCtrl)
	transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, &calls, http.StatusCreated, `{"streamrule_id":"r1"}`))

	resp, err := newActionController(authenticator, transport, nil, true).Execute(context.Background(), &ctrl.ActionRequest{
		Module: "graylog_streams",
		Action: "create_rule",
		Fields: entity.Fields{"stream_id": "s1", "field": "source", "value": "web"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Changed)
	assert.Equal(t, `{"field":"source","type":1,"value":"web","inverted":false}`, calls[0].body)
}

func TestActionController_Execute_DefaultsDisabled(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	authenticator := mock.NewMockAuthenticator(mockCtrl)
	authenticator.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

	var calls []sent
	transport := newTransport(mockCtrl)
	transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, &calls, http.StatusCreated, `{"streamrule_id":"r1"}`))

	_, err := newActionController(authenticator, transport, nil, false).Execute(context.Background(), &ctrl.ActionRequest{
		Module: "graylog_streams",
		Action: "create_rule",
		Fields: entity.Fields{"stream_id": "s1", "field": "source", "value": "web"},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"field":"source","value":"web"}`, calls[0].body)
}

func TestActionController_Execute_UpdateKeepsOmittedFields(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	authenticator := mock.NewMockAuthenticator(mockCtrl)
	authenticator.EXPECT().Authenticate(gomock.Any()).Return(testToken, nil)

	var calls []sent
	transport := newTransport(mockCtrl)
	transport.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, &calls, http.StatusOK, `{"id":"i1"}`))

	_, err := newActionController(authenticator, transport, nil, true).Execute(context.Background(), &ctrl.ActionRequest{
		Module: "graylog_index_sets",
		Action: "update",
		Fields: entity.Fields{"index_set_id": "i1", "replicas": 0},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"replicas":0}`, calls[0].body)
}

func TestActionController_Execute_RejectsBeforeAuthenticating(t *testing.T) {
	tests := []struct {
		name    string
		req     *ctrl.ActionRequest
		wantErr error
	}{
		{"unknown module", &ctrl.ActionRequest{Module: "graylog_users"}, entity.ErrModuleNotFound},
		{"unsupported action", &ctrl.ActionRequest{Module: "graylog_index_sets", Action: "parse_rule"}, resource.ErrUnsupportedAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			defer mockCtrl.Finish()

			authenticator := mock.NewMockAuthenticator(mockCtrl)
			transport := newTransport(mockCtrl)

			_, err := newActionController(authenticator, transport, nil, true).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestActionController_Execute_AuthenticationFails(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	authenticator := mock.NewMockAuthenticator(mockCtrl)
	authenticator.EXPECT().Authenticate(gomock.Any()).Return(entity.Token{}, errors.Join(session.ErrAuthenticationFailed, errors.New("401")))

	transport := newTransport(mockCtrl)

	_, err := newActionController(authenticator, transport, nil, true).
		Execute(context.Background(), &ctrl.ActionRequest{Module: "pipelines", Action: "list"})
	assert.ErrorIs(t, err, session.ErrAuthenticationFailed)
}
