package devserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
)

type stubProxy struct {
	resp  events.APIGatewayProxyResponse
	err   error
	event events.APIGatewayProxyRequest
}

func (s *stubProxy) Handle(_ context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	s.event = event
	return s.resp, s.err
}

func newTestServer(t *testing.T, h ProxyHandler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(h, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, &stubProxy{})

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	require.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestRouter_ProxiesChat(t *testing.T) {
	stub := &stubProxy{resp: events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json", "X-Correlation-Id": "corr-1"},
		Body:       `{"content":"ok","category":"general","timestamp":"2024-05-01T12:00:00.000Z"}`,
	}}
	srv := newTestServer(t, stub)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/coach/chat", strings.NewReader(`{"message":"hi"}`))
	require.NoError(t, err)
	req.Header.Set("X-Correlation-Id", "corr-1")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "corr-1", res.Header.Get("X-Correlation-Id"))
	require.Equal(t, http.MethodPost, stub.event.HTTPMethod)
	require.Equal(t, "/api/coach/chat", stub.event.Path)
	require.Equal(t, `{"message":"hi"}`, stub.event.Body)
	require.Equal(t, "corr-1", stub.event.Headers["X-Correlation-Id"])
}

func TestRouter_HandlerError(t *testing.T) {
	srv := newTestServer(t, &stubProxy{err: errors.New("boom")})

	res, err := http.Post(srv.URL+"/api/coach/chat", "application/json", strings.NewReader(`{"message":"hi"}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestRouter_RejectsOtherMethods(t *testing.T) {
	srv := newTestServer(t, &stubProxy{})

	res, err := http.Get(srv.URL + "/api/coach/chat")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
