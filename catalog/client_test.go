package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

	rbx, err := roblox.NewClient(zerolog.Nop(), roblox.WithCookie("test-cookie"))
	require.NoError(t, err)

	return NewClient(rbx, zerolog.Nop(), WithBaseURL(server.URL))
}

func TestItemDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/catalog/items/details", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req itemDetailsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 2)
		assert.Equal(t, ItemTypeAsset, req.Items[0].ItemType)
		assert.Equal(t, int64(1365767), req.Items[0].ID)

		w.Write([]byte(`{
			"data": [
				{
					"id": 1365767,
					"itemType": "Asset",
					"name": "Valkyrie Helm",
					"productId": 10202,
					"creatorType": "User",
					"creatorTargetId": 1,
					"creatorName": "Roblox",
					"lowestPrice": 50000,
					"favoriteCount": 9000,
					"itemRestrictions": ["Limited"]
				},
				{
					"id": 42,
					"itemType": "Bundle",
					"name": "Some Bundle",
					"price": 200,
					"creatorType": "Group",
					"creatorTargetId": 7,
					"creatorName": "Some Group",
					"itemRestrictions": []
				}
			]
		}`))
	})

	details, err := client.ItemDetails(context.Background(), []ItemRef{
		{Type: ItemTypeAsset, ID: 1365767},
		{Type: ItemTypeBundle, ID: 42},
	})
	require.NoError(t, err)
	require.Len(t, details, 2)

	helm := details[0]
	assert.Equal(t, "Valkyrie Helm", helm.Name)
	require.NotNil(t, helm.Price)
	assert.Equal(t, int64(50000), *helm.Price, "lowestPrice maps to Price for limiteds")
	assert.True(t, helm.IsLimited())

	bundle := details[1]
	require.NotNil(t, bundle.Price)
	assert.Equal(t, int64(200), *bundle.Price)
	assert.False(t, bundle.IsLimited())
	assert.Equal(t, CreatorTypeGroup, bundle.CreatorType)
}

func TestItemDetailsEmptyAndOversized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	details, err := client.ItemDetails(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, details)

	_, err = client.ItemDetails(context.Background(), make([]ItemRef, MaxBatchSize+1))
	assert.Error(t, err)
}

func TestAllItemDetailsChunks(t *testing.T) {
	var batches int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&batches, 1)

		var req itemDetailsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.LessOrEqual(t, len(req.Items), MaxBatchSize)

		resp := itemDetailsResponse{}
		for _, item := range req.Items {
			resp.Data = append(resp.Data, itemDetailsRaw{
				ID:       item.ID,
				ItemType: item.ItemType,
				Name:     fmt.Sprintf("item-%d", item.ID),
			})
		}
		json.NewEncoder(w).Encode(resp)
	})

	items := make([]ItemRef, 301)
	for i := range items {
		items[i] = ItemRef{Type: ItemTypeAsset, ID: int64(i + 1)}
	}

	details, err := client.AllItemDetails(context.Background(), items)
	require.NoError(t, err)
	assert.Len(t, details, 301)
	assert.Equal(t, int32(3), atomic.LoadInt32(&batches))

	// Chunk order is preserved in the merged result.
	assert.Equal(t, int64(1), details[0].ID)
	assert.Equal(t, int64(301), details[300].ID)
}
