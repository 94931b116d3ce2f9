package instagram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"collab_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraph struct {
	failToken, failProfile, failMedia bool
}

func (f fakeGraph) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		if f.failToken || r.FormValue("code") != "good-code" {
			http.Error(w, `{"error_type":"OAuthException","error_message":"invalid code"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "ig-token", "user_id": 42})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if f.failProfile || r.URL.Query().Get("access_token") != "ig-token" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(Profile{ID: "42", Username: "priya.creates", FollowersCount: 50000})
	})
	mux.HandleFunc("/me/media", func(w http.ResponseWriter, r *http.Request) {
		if f.failMedia {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []Media{
			{ID: "1", LikeCount: 1000, CommentsCount: 10},
			{ID: "2", LikeCount: 2000, CommentsCount: 30},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.InstagramConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		AuthURL:      srv.URL + "/oauth/authorize",
		TokenURL:     srv.URL + "/oauth/access_token",
		GraphURL:     srv.URL,
		MediaLimit:   12,
	})
}

func TestAuthenticate_Success(t *testing.T) {
	c := newTestClient(fakeGraph{}.server(t))

	acc, err := c.Authenticate(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "ig-token", acc.AccessToken)
	assert.Equal(t, "priya.creates", acc.Profile.Username)
	require.Len(t, acc.Media, 2)

	likes, comments := Averages(acc.Media)
	assert.Equal(t, 1500.0, likes)
	assert.Equal(t, 20.0, comments)
}

func TestAuthenticate_StageErrors(t *testing.T) {
	tests := []struct {
		name  string
		graph fakeGraph
		code  string
		stage string
	}{
		{"bad code", fakeGraph{}, "bad-code", StageTokenExchange},
		{"empty code", fakeGraph{}, "", StageTokenExchange},
		{"profile down", fakeGraph{failProfile: true}, "good-code", StageProfileFetch},
		{"media down", fakeGraph{failMedia: true}, "good-code", StageMediaFetch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(tt.graph.server(t))
			_, err := c.Authenticate(context.Background(), tt.code)
			require.Error(t, err)
			assert.Equal(t, tt.stage, StageOf(err))
		})
	}
}

func TestAuthCodeURL(t *testing.T) {
	c := newTestClient(fakeGraph{}.server(t))
	u := c.AuthCodeURL("state-1")
	assert.Contains(t, u, "/oauth/authorize?")
	assert.Contains(t, u, "client_id=client")
	assert.Contains(t, u, "state=state-1")
	assert.Contains(t, u, "response_type=code")
}

func TestAverages_Empty(t *testing.T) {
	likes, comments := Averages(nil)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}
