package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStorePrefersCookie(t *testing.T) {
	var tokenFetches int
	mux := http.NewServeMux()
	mux.HandleFunc("/seed", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "from-cookie", Path: "/"})
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/v1/auth/csrf/", func(w http.ResponseWriter, r *http.Request) {
		tokenFetches++
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "from-endpoint"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Get(context.Background(), "/seed")
	require.NoError(t, err)

	token := client.Credentials().Token(context.Background())
	assert.Equal(t, "from-cookie", token)
	assert.Equal(t, 0, tokenFetches, "cookie token must not trigger a network fetch")
}

func TestCredentialStoreFallbackAcceptsEitherFieldName(t *testing.T) {
	for _, field := range []string{"csrfToken", "csrf_token"} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{field: "issued-" + field})
		}))

		client := newTestClient(t, server)
		token := client.Credentials().Token(context.Background())
		assert.Equal(t, "issued-"+field, token)
		server.Close()
	}
}

func TestCredentialStoreFailsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	token := client.Credentials().Token(context.Background())
	assert.Equal(t, "", token, "token failures must yield an empty token, not an error")
}

func TestCredentialStorePurgeDropsCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/seed", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "stale", Path: "/"})
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/v1/auth/csrf/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Get(context.Background(), "/seed")
	require.NoError(t, err)
	require.Equal(t, "stale", client.Credentials().Token(context.Background()))

	client.Credentials().Purge()
	assert.Equal(t, "", client.Credentials().Token(context.Background()))
}
