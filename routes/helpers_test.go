package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"masterblog/app/storage"
	"masterblog/config"
)

// testConfig returns a config suitable for tests: temp data dir and limits
// high enough not to interfere unless a test lowers them.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Addr:          ":0",
		DataDir:       t.TempDir(),
		Store:         "file",
		StaticDir:     t.TempDir(),
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		RateLimit:     10000,
		RateBurst:     1000,
		AuthRateLimit: 10000,
		AuthRateBurst: 1000,
	}
}

// newTestServer builds a server over a fresh file store.
func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	store, err := storage.NewFileStore(cfg.DataDir)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	router, err := SetupRoutes(cfg, store, log)
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// doJSON performs a request with an optional bearer token and JSON body,
// decoding the JSON response into a generic map.
func doJSON(t *testing.T, server *httptest.Server, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded), "body: %s", data)
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates a user and returns a valid bearer token.
func registerAndLogin(t *testing.T, server *httptest.Server, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "pw-" + username}
	status, _ := doJSON(t, server, "POST", "/api/register", "", creds)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, server, "POST", "/api/login", "", creds)
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
