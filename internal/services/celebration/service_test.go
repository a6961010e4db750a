package celebration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDuelGifFromAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"image_url":"https://media.giphy.com/media/abc123/giphy.gif"}}`))
	}))
	defer server.Close()

	svc, err := New(&Config{APIURL: server.URL})
	require.NoError(t, err)

	output, err := svc.GetDuelGif(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://media.giphy.com/media/abc123/giphy.gif", output.URL)
}

func TestGetDuelGifFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, err := New(&Config{APIURL: server.URL})
	require.NoError(t, err)

	output, err := svc.GetDuelGif(context.Background())
	require.NoError(t, err)
	assert.Contains(t, fallbackGifs, output.URL)
}

func TestGetDuelGifFallsBackOnBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	svc, err := New(&Config{APIURL: server.URL})
	require.NoError(t, err)

	output, err := svc.GetDuelGif(context.Background())
	require.NoError(t, err)
	assert.Contains(t, fallbackGifs, output.URL)
}

func TestGetDuelGifFallsBackWhenUnreachable(t *testing.T) {
	svc, err := New(&Config{
		APIURL:  "http://127.0.0.1:1/random",
		Timeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	output, err := svc.GetDuelGif(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output.URL, "http"))
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	svc, err := New(&Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, svc.apiURL)
	assert.Equal(t, defaultTimeout, svc.timeout)
}
