package contract

import (
	"errors"
	"testing"

	"brane_auction/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestDecodeInstantiateArgs(t *testing.T) {
	args, err := DecodeInstantiateArgs(strp("hbd|hive|contract:nft|hive:free|1000|hive:artist|ipfs://first"))
	require.NoError(t, err)
	assert.Equal(t, sdk.AssetHbd, args.BidAsset)
	assert.Equal(t, sdk.AssetHive, args.IncentiveAsset)
	assert.Equal(t, sdk.Address("contract:nft"), args.Collection)
	assert.Equal(t, sdk.Address("hive:free"), args.FreeVoteAddr)
	assert.Equal(t, int64(1000), args.MintCost)
	assert.Equal(t, "ipfs://first", args.FirstSubmission.TokenURI)

	_, err = DecodeInstantiateArgs(strp("hbd|hive|contract:nft||-5||ipfs://x"))
	assert.True(t, errors.Is(err, ErrInvalidPayload))
	_, err = DecodeInstantiateArgs(nil)
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestDecodeCurateArgs(t *testing.T) {
	args, err := DecodeCurateArgs(strp("0, 3,4"))
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 3, 4}, args.SubmissionIDs)

	_, err = DecodeCurateArgs(strp(""))
	assert.True(t, errors.Is(err, ErrInvalidPayload))
	_, err = DecodeCurateArgs(strp("1,x"))
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestDecodeUpdateConfigArgs(t *testing.T) {
	args, err := DecodeUpdateConfigArgs(strp("minimum_outbid=0.02|auction_period=2|owner=hive:next|mint_cost=5"))
	require.NoError(t, err)
	assert.Equal(t, "0.02", args.MinimumOutbid.String())
	assert.Equal(t, uint64(2), *args.AuctionPeriod)
	assert.Equal(t, sdk.Address("hive:next"), *args.Owner)
	assert.Equal(t, int64(5), *args.MintCost)
	assert.Nil(t, args.BurnAddr)

	_, err = DecodeUpdateConfigArgs(strp("unknown=1"))
	assert.True(t, errors.Is(err, ErrInvalidPayload))
	_, err = DecodeUpdateConfigArgs(strp("auction_period"))
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestDecodePageArgs(t *testing.T) {
	page, err := DecodePageArgs(strp("4|500"))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), *page.StartAfter)
	assert.Equal(t, MaxPageLimit, *page.Limit)

	id, page, err := DecodeSubmissionQuery(strp("|1|"))
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Equal(t, uint64(1), *page.StartAfter)
	assert.Nil(t, page.Limit)
}

func TestFundsFromIntents(t *testing.T) {
	coins, err := fundsFromIntents([]sdk.Intent{
		sdk.TransferAllow(sdk.Coin{Asset: sdk.AssetHbd, Amount: 10}),
		{Type: "other", Args: map[string]string{}},
	})
	require.NoError(t, err)
	assert.Equal(t, []sdk.Coin{{Asset: sdk.AssetHbd, Amount: 10}}, coins)

	_, err = fundsFromIntents([]sdk.Intent{{Type: sdk.IntentTransferAllow, Args: map[string]string{"token": "hbd", "limit": "1.5"}}})
	assert.True(t, errors.Is(err, ErrInvalidAsset))
}
