package graylog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Endpoint:      strings.TrimPrefix(server.URL, "http://"),
		Scheme:        config.SchemeHTTP,
		ValidateCerts: true,
	}

	client, err := NewClient(cfg, &logger)
	require.NoError(t, err)

	return client
}

func TestClient_Do_SetsHeadersAndBody(t *testing.T) {
	token := entity.NewToken("session-1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/streams", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, RequestedBy, r.Header.Get("X-Requested-By"))
		assert.Equal(t, token.Header(), r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"title":"t"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"stream_id":"s1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	url := client.URL("/api/streams")

	resp, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    url,
		Token:  token,
		Body:   map[string]string{"title": "t"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "OK (18 bytes)", resp.Message)
	assert.Equal(t, `{"stream_id":"s1"}`, string(resp.Body))
	assert.Equal(t, url, resp.URL)
}

func TestClient_Do_NoTokenNoAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	resp, err := client.Do(context.Background(), &Request{Method: http.MethodGet, URL: client.URL("/api/system/sessions")})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_Do_SuccessMessage(t *testing.T) {
	tests := []struct {
		status   int
		body     string
		expected string
	}{
		{http.StatusOK, `{}`, "OK (2 bytes)"},
		{http.StatusCreated, `{}`, "OK (2 bytes)"},
		{http.StatusNoContent, ``, "OK (0 bytes)"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server)

			resp, err := client.Do(context.Background(), &Request{Method: http.MethodGet, URL: client.URL("/api/streams")})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.Message)
		})
	}
}

func TestClient_Do_ErrorStatusMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"ApiError","message":"not found"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	resp, err := client.Do(context.Background(), &Request{Method: http.MethodGet, URL: client.URL("/api/streams/x")})
	require.NoError(t, err, "a non-2xx status is not a transport error")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "HTTP Error 404: Not Found", resp.Message)
}

func TestClient_Do_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server)
	server.Close()

	_, err := client.Do(context.Background(), &Request{Method: http.MethodGet, URL: client.URL("/api/streams")})
	assert.ErrorIs(t, err, ErrRequest)
}

func TestClient_Do_UnencodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer server.Close()

	client := newTestClient(t, server)

	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    client.URL("/api/streams"),
		Body:   map[string]any{"bad": make(chan int)},
	})
	assert.ErrorIs(t, err, ErrEncodeBody)
}

func TestNewClient_Timeout(t *testing.T) {
	logger := zerolog.Nop()
	cfg := &config.Config{Endpoint: "graylog.example.com", Scheme: config.SchemeHTTPS, Timeout: 5 * time.Second}

	client, err := NewClient(cfg, &logger)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, client.client.Timeout)
	assert.Equal(t, "https://graylog.example.com/api/streams", client.URL("/api/streams"))
}

func TestNewClient_MissingEndpoint(t *testing.T) {
	logger := zerolog.Nop()

	_, err := NewClient(&config.Config{Scheme: config.SchemeHTTPS}, &logger)
	assert.True(t, errors.Is(err, ErrMissingEndpoint))
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		wantHost   string
		wantPrefix string
		wantErr    error
	}{
		{"plain host", "graylog.example.com", "graylog.example.com", "", nil},
		{"host with port", "graylog.example.com:9000", "graylog.example.com:9000", "", nil},
		{"host with prefix", "graylog.example.com/graylog/", "graylog.example.com", "/graylog", nil},
		{"trailing slash only", "graylog.example.com/", "graylog.example.com", "", nil},
		{"ipv4 with port", "127.0.0.1:9000", "127.0.0.1:9000", "", nil},
		{"ipv6 with port", "[::1]:9000", "[::1]:9000", "", nil},
		{"unicode host", "grÄylog.example.com", "xn--grylog-cua.example.com", "", nil},
		{"uppercase host", "Graylog.Example.com", "graylog.example.com", "", nil},
		{"empty", "  ", "", "", ErrMissingEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, prefix, err := normalizeEndpoint(tt.endpoint)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}

func TestHTTPError(t *testing.T) {
	err := NewHTTPError(&Response{
		StatusCode: 400,
		Message:    "HTTP Error 400: Bad Request",
		Body:       []byte(`{"message":"bad"}`),
		URL:        "https://graylog/api/streams",
	})

	assert.Equal(t, `Status: HTTP Error 400: Bad Request, Message: {"message":"bad"}`, err.Error())

	var target *HTTPError
	wrapped := errors.Join(errors.New("outer"), err)
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 400, target.StatusCode)
}
