package contract

import (
	"errors"
	"testing"

	"brane_auction/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidOutbidAndRefund(t *testing.T) {
	h := setup(t)
	bobBefore := h.balance(bob, bidAsset)

	require.NoError(t, h.bid(bob, 10_000_000))
	live := h.live()
	assert.Equal(t, Bid{Bidder: bob, Amount: 10_000_000}, live.HighestBid)

	err := h.bid(carol, 10_000_100)
	assert.True(t, errors.Is(err, ErrBusinessRule))
	assert.Equal(t, int64(10_000_000), h.live().HighestBid.Amount)

	resp, err := h.call(carol, coin(bidAsset, 20_000_000), BidForNft)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000_000), transfersTo(resp, bob, bidAsset), "refunded exactly once")
	assert.Equal(t, bobBefore, h.balance(bob, bidAsset))
	assert.Equal(t, int64(20_000_000), h.balance(selfAddr, bidAsset))

	live = h.live()
	assert.Equal(t, Bid{Bidder: carol, Amount: 20_000_000}, live.HighestBid)
	assert.Len(t, live.Bids, 2)
}

func TestBidFundValidation(t *testing.T) {
	h := setup(t)

	_, err := h.call(bob, nil, BidForNft)
	assert.True(t, errors.Is(err, ErrInvalidAsset))

	_, err = h.call(bob, coin(incAsset, 100), BidForNft)
	assert.True(t, errors.Is(err, ErrInvalidAsset))

	two := []sdk.Coin{{Asset: bidAsset, Amount: 1}, {Asset: bidAsset, Amount: 2}}
	_, err = h.call(bob, two, BidForNft)
	assert.True(t, errors.Is(err, ErrInvalidAsset))

	_, err = h.call(outsider, coin(bidAsset, 2_000_000_000), BidForNft)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.Zero(t, h.live().HighestBid.Amount)
}

func TestBidAfterEndRejected(t *testing.T) {
	h := setup(t)
	h.passAuction()
	err := h.bid(bob, 1_000)
	assert.True(t, errors.Is(err, ErrBusinessRule))
}

func TestBidWithoutLiveAuction(t *testing.T) {
	h := setup(t)
	require.NoError(t, h.bid(bob, 1_000))
	h.passAuction()
	_, err := h.conclude()
	require.NoError(t, err)

	err = h.bid(bob, 1_000)
	assert.True(t, errors.Is(err, ErrBusinessRule))
}

func TestAssetAuctionBids(t *testing.T) {
	h := setup(t)

	err := h.bidAssets(bob, 100)
	assert.True(t, errors.Is(err, ErrBusinessRule), "no asset auction before the first settlement")

	require.NoError(t, h.bid(carol, 10_000_000))
	h.passAuction()
	_, err = h.conclude()
	require.NoError(t, err)

	aa, err := QueryLiveAssetAuction(h.ctx())
	require.NoError(t, err)
	require.NotNil(t, aa)
	assert.Equal(t, sdk.Coin{Asset: bidAsset, Amount: 1_000_000}, aa.Asset)
	assert.Equal(t, Bid{Bidder: selfAddr}, aa.HighestBid)

	_, err = h.call(bob, coin(bidAsset, 100), BidForAssets)
	assert.True(t, errors.Is(err, ErrInvalidAsset))

	require.NoError(t, h.bidAssets(bob, 500))
	assert.True(t, errors.Is(h.bidAssets(alice, 505), ErrBusinessRule))

	resp, err := h.call(alice, coin(incAsset, 600), BidForAssets)
	require.NoError(t, err)
	assert.Equal(t, int64(500), transfersTo(resp, bob, incAsset))
	aa, _ = QueryLiveAssetAuction(h.ctx())
	assert.Equal(t, Bid{Bidder: alice, Amount: 600}, aa.HighestBid)
}

func TestAssetAuctionDisabledWithoutIncentiveAsset(t *testing.T) {
	h := setup(t)
	none := sdk.Asset("")
	_, err := h.call(ownerAddr, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{IncentiveAsset: &none})
	})
	require.NoError(t, err)
	assert.True(t, errors.Is(h.bidAssets(bob, 100), ErrBusinessRule))
}
