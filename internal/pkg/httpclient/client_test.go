package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(time.Second, zap.New(core))

	resp, err := client.Get(ts.URL + "/Jobs/Create?secret=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	entries := logs.FilterMessage("outbound request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/Jobs/Create", fields["path"])
	assert.EqualValues(t, http.StatusAccepted, fields["status_code"])
	assert.NotContains(t, fields, "url")
}

func TestLoggingRoundTripper_Error(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(time.Second, zap.New(core))

	_, err := client.Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("outbound request failed").Len())
}

func TestNewClient_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := NewClient(50*time.Millisecond, nil)

	_, err := client.Get(ts.URL)
	require.Error(t, err)
}
