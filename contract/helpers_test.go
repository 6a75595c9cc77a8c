package contract

import (
	"errors"
	"strconv"
	"testing"

	"brane_auction/sdk"

	"github.com/stretchr/testify/require"
)

const (
	contractID = "brane"
	selfAddr   = sdk.Address("contract:brane")
	collection = sdk.Address("contract:brane_nft")
	ownerAddr  = sdk.Address("hive:owner")
	alice      = sdk.Address("hive:alice")
	bob        = sdk.Address("hive:bob")
	carol      = sdk.Address("hive:carol")
	whale      = sdk.Address("hive:whale")
	outsider   = sdk.Address("hive:outsider")
	artist     = sdk.Address("hive:artist")
	startTime  = int64(1_700_000_000)
	bidAsset   = sdk.AssetHbd
	incAsset   = sdk.AssetHive
)

// testHost is a tiny in-memory chain: state, balances, holder oracle and a collection that mints
// sequential ids.
type testHost struct {
	*MockState
	logs      []string
	balances  map[sdk.Address]map[sdk.Asset]int64
	holders   map[sdk.Address]uint64
	sender    sdk.Address
	nextToken uint64
	failMint  bool
}

func newTestHost() *testHost {
	return &testHost{
		MockState: NewMockState(),
		balances:  map[sdk.Address]map[sdk.Asset]int64{},
		holders:   map[sdk.Address]uint64{},
	}
}

func (h *testHost) Log(msg string) { h.logs = append(h.logs, msg) }

func (h *testHost) GetBalance(a sdk.Address, asset sdk.Asset) int64 {
	return h.balances[a][asset]
}

func (h *testHost) credit(a sdk.Address, asset sdk.Asset, amount int64) {
	if h.balances[a] == nil {
		h.balances[a] = map[sdk.Asset]int64{}
	}
	h.balances[a][asset] += amount
}

func (h *testHost) move(from, to sdk.Address, asset sdk.Asset, amount int64) error {
	if h.balances[from][asset] < amount {
		return errors.New("insufficient balance")
	}
	h.credit(from, asset, -amount)
	h.credit(to, asset, amount)
	return nil
}

func (h *testHost) Draw(amount int64, asset sdk.Asset) error {
	return h.move(h.sender, selfAddr, asset, amount)
}

func (h *testHost) TokensOf(_ sdk.Address, owner sdk.Address) (uint64, error) {
	return h.holders[owner], nil
}

func (h *testHost) TotalSupply(sdk.Address) (uint64, error) {
	var n uint64
	for _, v := range h.holders {
		n += v
	}
	return n, nil
}

func (h *testHost) snapshotBalances() map[sdk.Address]map[sdk.Asset]int64 {
	out := map[sdk.Address]map[sdk.Asset]int64{}
	for a, m := range h.balances {
		out[a] = map[sdk.Asset]int64{}
		for k, v := range m {
			out[a][k] = v
		}
	}
	return out
}

type harness struct {
	t    *testing.T
	host *testHost
	now  int64
}

func newHarness(t *testing.T) *harness {
	h := &harness{t: t, host: newTestHost(), now: startTime}
	h.host.holders[alice] = 1
	h.host.holders[bob] = 3
	h.host.holders[whale] = 17
	for _, a := range []sdk.Address{alice, bob, carol, whale, outsider} {
		h.host.credit(a, bidAsset, 1_000_000_000)
		h.host.credit(a, incAsset, 1_000_000_000)
	}
	return h
}

// setup instantiates the contract with zero mint cost so proceeds math stays round.
func setup(t *testing.T) *harness {
	h := newHarness(t)
	_, err := h.call(ownerAddr, nil, func(ctx *Context) error {
		return Instantiate(ctx, &InstantiateArgs{
			BidAsset:       bidAsset,
			IncentiveAsset: incAsset,
			Collection:     collection,
			FirstSubmission: SubmissionInfo{
				Submitter:         artist,
				ProceedsRecipient: artist,
				TokenURI:          "ipfs://genesis",
			},
		})
	})
	require.NoError(t, err)
	return h
}

func (h *harness) env(sender sdk.Address, funds []sdk.Coin) sdk.Env {
	env := sdk.Env{
		ContractId: contractID,
		TxId:       "tx-" + strconv.FormatInt(h.now, 10),
		Timestamp:  strconv.FormatInt(h.now, 10),
		Sender:     sdk.Sender{Address: sender, RequiredAuths: []sdk.Address{sender}},
	}
	for _, c := range funds {
		env.Intents = append(env.Intents, sdk.TransferAllow(c))
	}
	return env
}

// call runs fn like the host would: messages execute afterwards, the mint reply runs in the same
// transaction and any failure restores state and balances.
func (h *harness) call(sender sdk.Address, funds []sdk.Coin, fn func(ctx *Context) error) (*Response, error) {
	h.host.sender = sender
	state := h.host.Snapshot()
	balances := h.host.snapshotBalances()
	logs := len(h.host.logs)
	rollback := func() {
		h.host.Restore(state)
		h.host.balances = balances
		h.host.logs = h.host.logs[:logs]
	}

	ctx, err := NewContext(h.host, h.env(sender, funds))
	require.NoError(h.t, err)
	if err := fn(ctx); err != nil {
		rollback()
		return nil, err
	}
	resp := ctx.Response
	for _, msg := range ctx.Response.Messages {
		switch m := msg.(type) {
		case sdk.TransferMsg:
			if err := h.host.move(selfAddr, m.To, m.Asset, m.Amount); err != nil {
				rollback()
				return nil, err
			}
		case sdk.MintMsg:
			if h.host.failMint {
				rollback()
				return nil, errors.New("mint failed")
			}
			if err := h.host.move(selfAddr, m.Collection, m.Fee.Asset, m.Fee.Amount); err != nil {
				rollback()
				return nil, err
			}
			reply := &sdk.MintReply{Collection: m.Collection, TokenID: h.host.nextToken}
			h.host.nextToken++
			rctx, err := NewContext(h.host, h.env(sender, nil))
			require.NoError(h.t, err)
			if err := HandleMintReply(rctx, reply); err != nil {
				rollback()
				return nil, err
			}
			resp.Attributes = append(resp.Attributes, rctx.Response.Attributes...)
		}
	}
	return &resp, nil
}

func (h *harness) ctx() *Context {
	ctx, err := NewContext(h.host, h.env(outsider, nil))
	require.NoError(h.t, err)
	return ctx
}

func coin(asset sdk.Asset, amount int64) []sdk.Coin {
	return []sdk.Coin{{Asset: asset, Amount: amount}}
}

func (h *harness) submit(sender sdk.Address, uri string, funds []sdk.Coin) (uint64, error) {
	var id uint64
	_, err := h.call(sender, funds, func(ctx *Context) error {
		var err error
		id, err = SubmitNft(ctx, &SubmitArgs{ProceedsRecipient: sender, TokenURI: uri})
		return err
	})
	return id, err
}

func (h *harness) curate(sender sdk.Address, ids ...uint64) error {
	_, err := h.call(sender, nil, func(ctx *Context) error {
		return CurateNft(ctx, &CurateArgs{SubmissionIDs: ids})
	})
	return err
}

func (h *harness) bid(sender sdk.Address, amount int64) error {
	_, err := h.call(sender, coin(bidAsset, amount), BidForNft)
	return err
}

func (h *harness) bidAssets(sender sdk.Address, amount int64) error {
	_, err := h.call(sender, coin(incAsset, amount), BidForAssets)
	return err
}

func (h *harness) conclude() (*Response, error) {
	return h.call(outsider, nil, ConcludeAuction)
}

func (h *harness) live() *Auction {
	a, err := QueryLiveAuction(h.ctx())
	require.NoError(h.t, err)
	return a
}

func (h *harness) config() *Config {
	cfg, err := QueryConfig(h.ctx())
	require.NoError(h.t, err)
	return cfg
}

func (h *harness) balance(a sdk.Address, asset sdk.Asset) int64 {
	return h.host.GetBalance(a, asset)
}

// passAuction moves the clock past the live auction's end.
func (h *harness) passAuction() {
	h.now = h.live().EndTime
}

func transfersTo(resp *Response, to sdk.Address, asset sdk.Asset) int64 {
	var sum int64
	for _, m := range resp.Messages {
		if tm, ok := m.(sdk.TransferMsg); ok && tm.To == to && tm.Asset == asset {
			sum += tm.Amount
		}
	}
	return sum
}
