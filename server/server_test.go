package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/config"
	"github.com/mobile-next/touchgestures/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	executed []actions.Action
}

func (e *recordingExecutor) Execute(action actions.Action) error {
	e.executed = append(e.executed, action)
	return nil
}

func (e *recordingExecutor) WheelScroll(float64) error { return nil }
func (e *recordingExecutor) SecondaryClick() error     { return nil }

func newTestServer(t *testing.T, executors ...actions.Executor) (*Server, *Hub) {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)

	hub := NewHub()
	eng, err := engine.New(cfg, append(actions.MultiExecutor{hub}, executors...), actions.StaticWindows{})
	require.NoError(t, err)

	return New(eng, hub), hub
}

func postRPC(t *testing.T, handler http.Handler, body string) JSONRPCResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/rpc", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp JSONRPCResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func errorCode(t *testing.T, resp JSONRPCResponse) int {
	t.Helper()

	require.NotNil(t, resp.Error)
	errObj, ok := resp.Error.(map[string]interface{})
	require.True(t, ok)
	return int(errObj["code"].(float64))
}

func TestSendBanner(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Handler(false)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "touchgestures server is running")

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRPCEndpointMethods(t *testing.T) {
	s, _ := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rpc", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestJSONRPCValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{"jsonrpc":`, ErrCodeParseError},
		{"wrong version", `{"jsonrpc":"1.0","method":"reset","id":1}`, ErrCodeInvalidRequest},
		{"missing id", `{"jsonrpc":"2.0","method":"reset"}`, ErrCodeInvalidRequest},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, ErrCodeInvalidRequest},
		{"unknown method", `{"jsonrpc":"2.0","method":"devices","id":1}`, ErrCodeMethodNotFound},
		{"missing params", `{"jsonrpc":"2.0","method":"touch_event","id":1}`, ErrCodeInvalidParams},
		{"touchpad event on touch method", `{"jsonrpc":"2.0","method":"touch_event","params":{"type":"swipe_begin"},"id":1}`, ErrCodeInvalidParams},
		{"touch event on touchpad method", `{"jsonrpc":"2.0","method":"touchpad_event","params":{"type":"down"},"id":1}`, ErrCodeInvalidParams},
		{"malformed params", `{"jsonrpc":"2.0","method":"touchpad_event","params":[1,2],"id":1}`, ErrCodeInvalidParams},
		{"unknown event in batch", `{"jsonrpc":"2.0","method":"events","params":{"events":[{"type":"hover"}]},"id":1}`, ErrCodeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			resp := postRPC(t, s.Handler(false), tt.body)

			assert.Equal(t, "2.0", resp.JSONRPC)
			assert.Equal(t, tt.code, errorCode(t, resp))
		})
	}
}

func TestEventsBatchDispatchesActions(t *testing.T) {
	executor := &recordingExecutor{}
	s, _ := newTestServer(t, executor)

	body := `{"jsonrpc":"2.0","method":"events","id":7,"params":{"events":[
		{"type":"swipe_begin","fingers":3},
		{"type":"swipe_update","fingers":3,"dx":-35,"dy":4},
		{"type":"swipe_end","fingers":3}
	]}}`
	resp := postRPC(t, s.Handler(false), body)

	require.Nil(t, resp.Error)
	assert.Equal(t, 7, int(resp.ID.(float64)))
	assert.Equal(t, map[string]interface{}{"handled": float64(3)}, resp.Result)
	assert.Equal(t, []actions.Action{"Ctrl+Alt+Left"}, executor.executed)
}

func TestSingleEventMethods(t *testing.T) {
	executor := &recordingExecutor{}
	s, _ := newTestServer(t, executor)
	handler := s.Handler(false)

	requests := []string{
		`{"jsonrpc":"2.0","method":"touchpad_event","params":{"type":"pinch_begin","fingers":2},"id":1}`,
		`{"jsonrpc":"2.0","method":"touchpad_event","params":{"type":"pinch_update","fingers":2,"scale":1.8},"id":2}`,
		`{"jsonrpc":"2.0","method":"touchpad_event","params":{"type":"pinch_end","fingers":2},"id":3}`,
		`{"jsonrpc":"2.0","method":"touch_event","params":{"type":"down","slot":0,"x":5,"y":5},"id":4}`,
		`{"jsonrpc":"2.0","method":"reset","id":5}`,
	}
	for _, body := range requests {
		resp := postRPC(t, handler, body)
		require.Nil(t, resp.Error, body)
		assert.Equal(t, map[string]interface{}{"status": "ok"}, resp.Result)
	}

	assert.Equal(t, []actions.Action{actions.MaximizeToggle}, executor.executed)
}

func TestExecute(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.Execute("reset", nil)
	require.NoError(t, err)
	assert.Equal(t, okResponse, result)

	_, err = s.Execute("screenshot", nil)
	assert.ErrorContains(t, err, "method not found")
}

func TestStatus(t *testing.T) {
	s, hub := newTestServer(t)
	hub.add("listener", &blockingWriter{release: make(chan struct{})})

	resp := postRPC(t, s.Handler(false), `{"jsonrpc":"2.0","method":"touch_event","params":{"type":"down","slot":0,"x":1,"y":1},"id":1}`)
	require.Nil(t, resp.Error)

	resp = postRPC(t, s.Handler(false), `{"jsonrpc":"2.0","method":"status","id":2}`)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), result["subscribers"])

	engineStatus, ok := result["engine"].(map[string]interface{})
	require.True(t, ok)
	recognizers, ok := engineStatus["recognizers"].([]interface{})
	require.True(t, ok)
	require.Len(t, recognizers, 4)
	first := recognizers[0].(map[string]interface{})
	assert.Equal(t, "swipe", first["kind"])
	assert.Equal(t, float64(1), first["contacts"])

	touchpad, ok := engineStatus["touchpad"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(-1), touchpad["last_scale"])

	hub.remove("listener")
}

func TestErrorCodeFor(t *testing.T) {
	code, message := errorCodeFor(fmt.Errorf("%w: bad", ErrInvalidParams))
	assert.Equal(t, ErrCodeInvalidParams, code)
	assert.Equal(t, "Invalid params", message)

	code, message = errorCodeFor(errors.New("engine broke"))
	assert.Equal(t, ErrCodeServerError, code)
	assert.Equal(t, "Server error", message)
}

func TestShutdownRequest(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.Execute("server.shutdown", nil)
	require.NoError(t, err)
	// a second request must not block while the first is still pending
	_, err = s.Execute("server.shutdown", nil)
	require.NoError(t, err)

	select {
	case <-s.shutdown:
	default:
		t.Fatal("expected a pending shutdown request")
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"12100", ":12100", false},
		{"localhost:12100", "localhost:12100", false},
		{":8080", ":8080", false},
		{"nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			addr, err := NormalizeAddress(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	corsHandler := corsMiddleware(testHandler)

	tests := []struct {
		method string
		status int
	}{
		{http.MethodGet, http.StatusTeapot},
		{http.MethodPost, http.StatusTeapot},
		{http.MethodOptions, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := httptest.NewRecorder()
			corsHandler.ServeHTTP(w, httptest.NewRequest(tt.method, "/", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "POST, GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}
