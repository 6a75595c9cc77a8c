package contract

import (
	"errors"
	"math"
	"testing"

	"brane_auction/sdk"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiateDefaults(t *testing.T) {
	h := setup(t)
	cfg := h.config()
	assert.Equal(t, ownerAddr, cfg.Owner)
	assert.True(t, cfg.MinimumOutbid.Equal(decimal.RequireFromString("0.01")))
	assert.True(t, cfg.IncentiveBidPercent.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, cfg.CurationThreshold.Equal(decimal.RequireFromString("0.11")))
	assert.Equal(t, DefaultIncentiveDistributionAmount, cfg.IncentiveDistributionAmount)
	assert.Equal(t, DefaultSubmissionCost, cfg.SubmissionCost)
	assert.Equal(t, DefaultSubmissionLimit, cfg.SubmissionLimit)
	assert.Equal(t, uint64(7), cfg.SubmissionVotePeriod)
	assert.Equal(t, uint64(1), cfg.AuctionPeriod)

	live := h.live()
	require.NotNil(t, live)
	assert.Equal(t, startTime+SecondsPerDay, live.EndTime)
	assert.Equal(t, startTime+7*SecondsPerDay, live.Submission.EndTime)
	assert.Contains(t, h.host.logs, "in|by:hive:owner|end:1700086400")
}

func TestInstantiateTwiceFails(t *testing.T) {
	h := setup(t)
	_, err := h.call(ownerAddr, nil, func(ctx *Context) error {
		return Instantiate(ctx, &InstantiateArgs{
			BidAsset:        bidAsset,
			Collection:      collection,
			FirstSubmission: SubmissionInfo{TokenURI: "ipfs://again"},
		})
	})
	assert.True(t, errors.Is(err, ErrBusinessRule))
}

func TestInstantiateOverrides(t *testing.T) {
	h := newHarness(t)
	period := uint64(3)
	_, err := h.call(ownerAddr, nil, func(ctx *Context) error {
		return Instantiate(ctx, &InstantiateArgs{
			BidAsset:        bidAsset,
			Collection:      collection,
			FirstSubmission: SubmissionInfo{TokenURI: "ipfs://first"},
			Overrides:       &UpdateConfigArgs{AuctionPeriod: &period},
		})
	})
	require.NoError(t, err)
	assert.Equal(t, startTime+3*SecondsPerDay, h.live().EndTime)
	assert.Equal(t, ownerAddr, h.live().Submission.Info.ProceedsRecipient)
}

func TestOperationsNeedInstantiate(t *testing.T) {
	h := newHarness(t)
	err := h.bid(bob, 100)
	assert.True(t, errors.Is(err, ErrNotInitialized))
	_, err = QueryConfig(h.ctx())
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestUpdateConfigAuthorization(t *testing.T) {
	h := setup(t)
	pct := decimal.RequireFromString("0.05")

	_, err := h.call(bob, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{MinimumOutbid: &pct})
	})
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = h.call(ownerAddr, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{MinimumOutbid: &pct})
	})
	require.NoError(t, err)
	assert.True(t, h.config().MinimumOutbid.Equal(pct))
}

func TestOwnershipTransfer(t *testing.T) {
	h := setup(t)
	next := bob
	_, err := h.call(ownerAddr, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{Owner: &next})
	})
	require.NoError(t, err)
	assert.Equal(t, ownerAddr, h.config().Owner, "transfer is pending until claimed")

	_, err = h.call(carol, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{})
	})
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = h.call(bob, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{})
	})
	require.NoError(t, err)
	assert.Equal(t, bob, h.config().Owner)

	_, err = h.call(ownerAddr, nil, func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{})
	})
	assert.True(t, errors.Is(err, ErrUnauthorized), "old owner lost access")
}

func TestUpdateConfigValidation(t *testing.T) {
	h := setup(t)
	bad := decimal.RequireFromString("1.5")
	neg := int64(-1)
	zero := uint64(0)
	same := bidAsset
	badAddr := sdk.Address("nobody")
	tooLong := MaxPeriodDays + 1
	cases := map[string]*UpdateConfigArgs{
		"percent above one":    {CurationThreshold: &bad},
		"negative cost":        {SubmissionCost: &neg},
		"zero period":          {AuctionPeriod: &zero},
		"incentive equals bid": {IncentiveAsset: &same},
		"invalid address":      {BurnAddr: &badAddr},
		"period too long":      {AuctionPeriod: &tooLong},
	}
	before := h.host.Snapshot()
	for name, args := range cases {
		_, err := h.call(ownerAddr, nil, func(ctx *Context) error { return UpdateConfig(ctx, args) })
		assert.True(t, errors.Is(err, ErrInvalidPayload), name)
	}
	assert.Equal(t, before, h.host.Snapshot())
}

func TestBidAssetLockedWhileBidsEscrowed(t *testing.T) {
	h := setup(t)
	other := sdk.Asset("other")
	switchBid := func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{BidAsset: &other})
	}

	require.NoError(t, h.bid(alice, 10_000_000))
	_, err := h.call(ownerAddr, nil, switchBid)
	assert.True(t, errors.Is(err, ErrBusinessRule))
	assert.Equal(t, bidAsset, h.config().BidAsset)

	resp, err := h.call(bob, coin(bidAsset, 20_000_000), BidForNft)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000_000), transfersTo(resp, alice, bidAsset), "refund in the asset alice bid")

	h.passAuction()
	_, err = h.conclude()
	require.NoError(t, err)
	_, err = h.call(ownerAddr, nil, switchBid)
	require.NoError(t, err, "no escrowed bids once the live slot is empty")
	assert.Equal(t, other, h.config().BidAsset)
}

func TestIncentiveAssetLockedWhileAssetBidEscrowed(t *testing.T) {
	h := setup(t)
	require.NoError(t, h.bid(carol, 10_000_000))
	h.passAuction()
	_, err := h.conclude()
	require.NoError(t, err)

	other := sdk.Asset("other")
	switchIncentive := func(ctx *Context) error {
		return UpdateConfig(ctx, &UpdateConfigArgs{IncentiveAsset: &other})
	}
	before := h.host.Snapshot()
	require.NoError(t, h.bidAssets(bob, 500))
	_, err = h.call(ownerAddr, nil, switchIncentive)
	assert.True(t, errors.Is(err, ErrBusinessRule))
	assert.Equal(t, incAsset, h.config().IncentiveAsset)

	h.host.Restore(before)
	_, err = h.call(ownerAddr, nil, switchIncentive)
	require.NoError(t, err, "a seeded auction without bids holds nothing in the incentive asset")
}

func TestDeadlineOverflowAborts(t *testing.T) {
	h := setup(t)
	h.now = math.MaxInt64 - 10
	_, err := h.submit(alice, "ipfs://late", nil)
	assert.True(t, errors.Is(err, ErrOverflow))
}
