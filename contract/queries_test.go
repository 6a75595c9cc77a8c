package contract

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingAuctionPagination(t *testing.T) {
	h := setup(t)
	for _, uri := range []string{"ipfs://a", "ipfs://b", "ipfs://c"} {
		id, err := h.submit(alice, uri, nil)
		require.NoError(t, err)
		require.NoError(t, h.curate(bob, id))
	}

	zero := uint64(0)
	one := uint32(1)
	page, err := QueryPendingAuctions(h.ctx(), PageArgs{StartAfter: &zero, Limit: &one})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ipfs://b", page[0].Submission.Info.TokenURI)

	far := uint64(10)
	page, err = QueryPendingAuctions(h.ctx(), PageArgs{StartAfter: &far})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestQueryJSON(t *testing.T) {
	h := setup(t)
	require.NoError(t, h.bid(bob, 10_000_000))

	raw, err := Query(h.ctx(), QueryGetConfig, nil)
	require.NoError(t, err)
	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &cfg))
	assert.Equal(t, "hive:owner", cfg["owner"])
	assert.Equal(t, "0.01", cfg["minimum_outbid"])
	assert.Equal(t, "100000000", cfg["incentive_distribution_amount"])

	raw, err = Query(h.ctx(), QueryGetLiveAuction, nil)
	require.NoError(t, err)
	var live struct {
		Submission struct {
			TokenURI string `json:"token_uri"`
		} `json:"submission"`
		HighestBid struct {
			Bidder string `json:"bidder"`
			Amount string `json:"amount"`
		} `json:"highest_bid"`
		EndTime int64 `json:"end_time"`
	}
	require.NoError(t, json.Unmarshal(raw, &live))
	assert.Equal(t, "ipfs://genesis", live.Submission.TokenURI)
	assert.Equal(t, "hive:bob", live.HighestBid.Bidder)
	assert.Equal(t, "10000000", live.HighestBid.Amount)

	raw, err = Query(h.ctx(), QueryGetLiveAssetAuction, nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	_, err = h.submit(alice, "ipfs://x", nil)
	require.NoError(t, err)
	payload := "0||"
	raw, err = Query(h.ctx(), QueryListSubmissions, &payload)
	require.NoError(t, err)
	var subs []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, float64(0), subs[0]["id"])

	bad := "nope"
	_, err = Query(h.ctx(), "nope", &bad)
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}
