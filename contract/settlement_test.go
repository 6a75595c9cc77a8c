package contract

import (
	"errors"
	"testing"

	"brane_auction/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcludeBeforeEndLeavesStateUntouched(t *testing.T) {
	h := setup(t)
	require.NoError(t, h.bid(bob, 10_000_000))
	before := h.host.Snapshot()

	h.now = h.live().EndTime - 1
	_, err := h.conclude()
	assert.True(t, errors.Is(err, ErrBusinessRule))
	assert.Equal(t, before, h.host.Snapshot())
}

func TestConcludeWithoutBidsExtendsByOneDay(t *testing.T) {
	h := setup(t)
	end := h.live().EndTime
	h.now = end + 5

	resp, err := h.conclude()
	require.NoError(t, err)
	assert.Empty(t, resp.Messages)
	v, _ := resp.Attribute("highest_bidder")
	assert.Equal(t, "None", v)

	live := h.live()
	assert.Equal(t, end+SecondsPerDay, live.EndTime)
	assert.Equal(t, "ipfs://genesis", live.Submission.Info.TokenURI)
	assert.Nil(t, mustAssetAuction(t, h))
}

func TestConcludeSplitsProceeds(t *testing.T) {
	h := setup(t)
	require.NoError(t, h.bid(bob, 10_000_000))
	h.passAuction()

	artistBefore := h.balance(artist, bidAsset)
	resp, err := h.conclude()
	require.NoError(t, err)

	assert.Equal(t, int64(9_000_000), transfersTo(resp, artist, bidAsset))
	assert.Equal(t, artistBefore+9_000_000, h.balance(artist, bidAsset))
	aa := mustAssetAuction(t, h)
	require.NotNil(t, aa)
	assert.Equal(t, int64(1_000_000), aa.Asset.Amount)
	assert.Equal(t, int64(1_000_000), h.balance(selfAddr, bidAsset))

	winner, _ := resp.Attribute("highest_bidder")
	amount, _ := resp.Attribute("highest_bid")
	method, _ := resp.Attribute("method")
	assert.Equal(t, "conclude_auction", method)
	assert.Equal(t, bob.String(), winner)
	assert.Equal(t, "10000000", amount)

	tok, err := QueryMintedToken(h.ctx(), 0)
	require.NoError(t, err)
	assert.Equal(t, bob, tok.Owner)
	assert.Equal(t, "ipfs://genesis", tok.TokenURI)
	assert.Equal(t, uint64(1), h.config().CurrentTokenID)
	assert.Nil(t, h.live(), "empty queue clears the live slot")
}

func TestConcludeSeedIncludesSubmissionCosts(t *testing.T) {
	h := setup(t)
	_, err := h.submit(carol, "ipfs://paid", coin(bidAsset, DefaultSubmissionCost))
	require.NoError(t, err)
	require.NoError(t, h.bid(bob, 10_000_000))
	h.passAuction()

	_, err = h.conclude()
	require.NoError(t, err)
	aa := mustAssetAuction(t, h)
	require.NotNil(t, aa)
	assert.Equal(t, 1_000_000+DefaultSubmissionCost, aa.Asset.Amount)
}

func TestConcludeWithoutIncentiveAsset(t *testing.T) {
	h := setup(t)
	none := sdk.Asset("")
	_, err := h.call(ownerAddr, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{IncentiveAsset: &none})
	})
	require.NoError(t, err)
	require.NoError(t, h.bid(bob, 10_000_000))
	h.passAuction()

	resp, err := h.conclude()
	require.NoError(t, err)
	assert.Equal(t, int64(10_000_000), transfersTo(resp, artist, bidAsset), "no incentive cut")
	assert.Nil(t, mustAssetAuction(t, h))
}

func TestConcludeSettlesAssetAuctionAndPaysIncentives(t *testing.T) {
	h := setup(t)

	// first round seeds the asset auction
	require.NoError(t, h.bid(carol, 10_000_000))
	h.passAuction()
	_, err := h.conclude()
	require.NoError(t, err)

	// second round: a curated submission with two curators and two bidders
	id, err := h.submit(alice, "ipfs://second", nil)
	require.NoError(t, err)
	require.NoError(t, h.curate(alice, id))
	require.NoError(t, h.curate(bob, id))
	require.NotNil(t, h.live())

	require.NoError(t, h.bidAssets(whale, 40_000_000))
	require.NoError(t, h.bid(carol, 10_000_000))
	require.NoError(t, h.bid(outsider, 30_000_000))
	require.NoError(t, h.bid(carol, 40_000_000))
	h.passAuction()

	resp, err := h.conclude()
	require.NoError(t, err)

	// asset auction winner receives the previous pool in the bid asset
	assert.Equal(t, int64(1_000_000), transfersTo(resp, whale, bidAsset))
	// recipient gets 90% of the winning bid
	assert.Equal(t, int64(36_000_000), transfersTo(resp, alice, bidAsset))

	// incentive balance is whale's 40M bid: budget = min(20M, 100M) = 20M, 10M per pool
	// bids total 80M: carol 50M, outsider 30M
	assert.Equal(t, int64(6_250_000), transfersTo(resp, carol, incAsset))
	assert.Equal(t, int64(3_750_000), transfersTo(resp, outsider, incAsset))
	// curators split evenly regardless of weight
	assert.Equal(t, int64(5_000_000), transfersTo(resp, alice, incAsset))
	assert.Equal(t, int64(5_000_000), transfersTo(resp, bob, incAsset))

	// contract held 1M + 40M, paid 36M to the artist and 1M to the asset winner
	aa := mustAssetAuction(t, h)
	require.NotNil(t, aa)
	assert.Equal(t, int64(4_000_000), aa.Asset.Amount)
	assert.Equal(t, int64(20_000_000), h.balance(selfAddr, incAsset))
}

func TestConcludeBurnsAssetBidWhenDistributionDisabled(t *testing.T) {
	h := setup(t)
	burn := sdk.Address("hive:null")
	zero := int64(0)
	_, err := h.call(ownerAddr, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{BurnAddr: &burn, IncentiveDistributionAmount: &zero})
	})
	require.NoError(t, err)

	require.NoError(t, h.bid(carol, 10_000_000))
	h.passAuction()
	_, err = h.conclude()
	require.NoError(t, err)

	id, err := h.submit(alice, "ipfs://second", nil)
	require.NoError(t, err)
	require.NoError(t, h.curate(bob, id))
	require.NoError(t, h.bidAssets(whale, 700))
	require.NoError(t, h.bid(carol, 1_000))
	h.passAuction()

	resp, err := h.conclude()
	require.NoError(t, err)
	assert.Equal(t, int64(700), transfersTo(resp, burn, incAsset))
	assert.Equal(t, int64(700), h.balance(burn, incAsset))
	assert.Zero(t, transfersTo(resp, bob, incAsset), "no distribution budget")
}

func TestConcludeRollsOverPendingQueue(t *testing.T) {
	h := setup(t)
	for _, uri := range []string{"ipfs://a", "ipfs://b"} {
		id, err := h.submit(alice, uri, nil)
		require.NoError(t, err)
		require.NoError(t, h.curate(bob, id))
	}
	pending, err := QueryPendingAuctions(h.ctx(), PageArgs{})
	require.NoError(t, err)
	require.Len(t, pending, 2)

	require.NoError(t, h.bid(carol, 1_000))
	h.passAuction()
	_, err = h.conclude()
	require.NoError(t, err)

	live := h.live()
	require.NotNil(t, live)
	assert.Equal(t, "ipfs://a", live.Submission.Info.TokenURI)
	assert.Equal(t, h.now+SecondsPerDay, live.EndTime)
	pending, _ = QueryPendingAuctions(h.ctx(), PageArgs{})
	require.Len(t, pending, 1)
	assert.Equal(t, "ipfs://b", pending[0].Submission.Info.TokenURI)
}

func TestMintFailureRollsBackSettlement(t *testing.T) {
	h := setup(t)
	require.NoError(t, h.bid(bob, 10_000_000))
	h.passAuction()
	state := h.host.Snapshot()
	artistBefore := h.balance(artist, bidAsset)

	h.host.failMint = true
	_, err := h.conclude()
	require.Error(t, err)
	assert.Equal(t, state, h.host.Snapshot())
	assert.Equal(t, artistBefore, h.balance(artist, bidAsset))
	require.NotNil(t, h.live())

	h.host.failMint = false
	_, err = h.conclude()
	require.NoError(t, err)
	_, err = QueryMintedToken(h.ctx(), 0)
	assert.NoError(t, err)
}

func TestConcludeChargesMintCost(t *testing.T) {
	h := setup(t)
	fee := int64(100_000)
	_, err := h.call(ownerAddr, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{MintCost: &fee})
	})
	require.NoError(t, err)
	require.NoError(t, h.bid(bob, 10_000_000))
	h.passAuction()

	_, err = h.conclude()
	require.NoError(t, err)
	assert.Equal(t, fee, h.balance(collection, bidAsset))
	assert.Equal(t, int64(900_000), mustAssetAuction(t, h).Asset.Amount)
}

func TestHandleMintReplyGuards(t *testing.T) {
	h := setup(t)
	_, err := h.call(outsider, nil, func(ctx *Context) error {
		return HandleMintReply(ctx, &sdk.MintReply{Collection: collection, TokenID: 1})
	})
	assert.True(t, errors.Is(err, ErrBusinessRule))

	_, err = h.call(outsider, nil, func(ctx *Context) error {
		return HandleMintReply(ctx, &sdk.MintReply{Collection: "contract:other", TokenID: 1})
	})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func mustAssetAuction(t *testing.T, h *harness) *AssetAuction {
	aa, err := QueryLiveAssetAuction(h.ctx())
	require.NoError(t, err)
	return aa
}
