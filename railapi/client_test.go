package railapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/railapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfig(t *testing.T) {
	t.Setenv(railapi.EnvAPIKey, "")
	t.Setenv(railapi.EnvHost, "")

	_, err := railapi.LoadConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, railapi.ErrNoAPIKey))

	t.Setenv(railapi.EnvAPIKey, "testkey")
	cfg, err := railapi.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "testkey", cfg.APIKey)
	assert.Equal(t, railapi.DefaultHost, cfg.Host)
	assert.Equal(t, "https://"+railapi.DefaultHost, cfg.BaseURL)

	t.Setenv(railapi.EnvHost, "other.example.com")
	cfg, err = railapi.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "other.example.com", cfg.Host)
}

func Test_Client_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "testkey", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, railapi.DefaultHost, r.Header.Get("x-rapidapi-host"))
		assert.Equal(t, "1234567890", r.URL.Query().Get("pnr"))

		_, _ = w.Write([]byte(`{"data":{"trainName":"Shram Shakti"}}`))
	}))
	defer server.Close()

	cfg := &railapi.Config{APIKey: "testkey", Host: railapi.DefaultHost, BaseURL: server.URL}
	client := railapi.NewClient(cfg).WithHTTPClient(server.Client())

	params := url.Values{}
	params.Set("pnr", "1234567890")

	body, err := client.Get(context.Background(), "/pnrStatus", params, 10*time.Second)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Shram Shakti")
}

func Test_Client_Get_NoAPIKey(t *testing.T) {
	client := railapi.NewClient(&railapi.Config{})

	_, err := client.Get(context.Background(), "/pnrStatus", nil, time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, railapi.ErrNoAPIKey))
	assert.False(t, errors.Is(err, railapi.ErrNetwork))
}

func Test_Client_Get_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := &railapi.Config{APIKey: "testkey", Host: railapi.DefaultHost, BaseURL: server.URL}
	client := railapi.NewClient(cfg).WithHTTPClient(server.Client())

	_, err := client.Get(context.Background(), "/stationSearch", nil, time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, railapi.ErrUpstream))
	assert.Contains(t, err.Error(), "429")
}

func Test_Client_Get_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	// close right away to force a connection failure
	server.Close()

	cfg := &railapi.Config{APIKey: "testkey", Host: railapi.DefaultHost, BaseURL: server.URL}
	client := railapi.NewClient(cfg)

	_, err := client.Get(context.Background(), "/liveStation", nil, time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, railapi.ErrNetwork))
	assert.False(t, errors.Is(err, railapi.ErrNoAPIKey))
}

func Test_Client_Get_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	cfg := &railapi.Config{APIKey: "testkey", Host: railapi.DefaultHost, BaseURL: server.URL}
	client := railapi.NewClient(cfg).WithHTTPClient(server.Client())

	_, err := client.Get(context.Background(), "/liveStation", nil, 20*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, railapi.ErrNetwork))
}
