package presence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbxkit/rbxkit/roblox"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	rbx, err := roblox.NewClient(zerolog.Nop())
	require.NoError(t, err)

	return NewClient(rbx, zerolog.Nop(), WithBaseURL(server.URL))
}

func TestUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/presence/users", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req presenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int64{1, 2}, req.UserIDs)

		w.Write([]byte(`{
			"userPresences": [
				{"userPresenceType": 2, "lastLocation": "Natural Disaster Survival", "placeId": 189707, "userId": 1, "lastOnline": "2024-03-01T12:00:00Z"},
				{"userPresenceType": 0, "lastLocation": "", "placeId": null, "userId": 2, "lastOnline": "2024-01-15T08:30:00Z"}
			]
		}`))
	})

	presences, err := client.Users(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, presences, 2)

	assert.Equal(t, InGame, presences[0].Type)
	assert.Equal(t, "InGame", presences[0].Type.String())
	require.NotNil(t, presences[0].PlaceID)
	assert.Equal(t, int64(189707), *presences[0].PlaceID)

	assert.Equal(t, Offline, presences[1].Type)
	assert.Nil(t, presences[1].PlaceID)
}

func TestUsersEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty id set")
	})

	presences, err := client.Users(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, presences)
}

func TestPresenceTypeString(t *testing.T) {
	assert.Equal(t, "Offline", Offline.String())
	assert.Equal(t, "Invisible", Invisible.String())
	assert.Equal(t, "Unknown", PresenceType(99).String())
}
