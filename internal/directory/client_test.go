package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v4/pages/7/customers/batch", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			IDs []string `json:"ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"u1", "u2"}, body.IDs)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"customers": []models.Profile{
				{ID: "u1", Name: "Ada", AvatarURL: "https://img.example/ada.png"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	profiles, err := client.GetProfiles(context.Background(), 7, []string{"u1", "u2"}, "tok")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Ada", profiles[0].Name)
}

func TestGetProfilesNoAuthHeaderWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"customers": []models.Profile{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetProfiles(context.Background(), 7, []string{"u1"}, "")
	require.NoError(t, err)
}

func TestGetProfilesEmptyIDsSkipsCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	profiles, err := client.GetProfiles(context.Background(), 7, nil, "tok")
	require.NoError(t, err)
	assert.Nil(t, profiles)
	assert.False(t, called)
}

func TestGetProfilesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetProfiles(context.Background(), 7, []string{"u1"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
