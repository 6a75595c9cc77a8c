package contract

import (
	"strconv"
	"strings"
	"time"

	"brane_auction/sdk"
)

// Attribute is one key/value pair of the structured call result.
type Attribute struct {
	Key   string
	Value string
}

// Response collects everything a call wants the host to do once it returned without error.
// Messages run in order inside the same host transaction.
type Response struct {
	Messages   []sdk.Msg
	Attributes []Attribute
	Data       []byte
}

func (r *Response) addMessage(m sdk.Msg) {
	r.Messages = append(r.Messages, m)
}

// transfer queues a payout, zero amounts are dropped.
func (r *Response) transfer(to sdk.Address, amount int64, asset sdk.Asset) {
	if amount <= 0 {
		return
	}
	r.addMessage(sdk.TransferMsg{To: to, Amount: amount, Asset: asset})
}

func (r *Response) addAttribute(key, value string) {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
}

// Attribute returns the value recorded for key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Context is the per transaction view every operation works against. It replaces module level
// globals: state, clock, caller and funds all come in through here.
type Context struct {
	Host   sdk.Host
	Env    sdk.Env
	Sender sdk.Address
	Self   sdk.Address
	Now    int64
	Funds  []sdk.Coin

	Response Response

	cfg      *Config
	fundsErr error
}

// NewContext snapshots the env for one call. A missing or malformed timestamp fails the call
// since every deadline depends on it.
func NewContext(host sdk.Host, env sdk.Env) (*Context, error) {
	now, ok := parseTimestamp(env.Timestamp)
	if !ok {
		return nil, newError(KindInvalidPayload, "invalid block timestamp %q", env.Timestamp)
	}
	ctx := &Context{
		Host:   host,
		Env:    env,
		Sender: env.Sender.Address,
		Self:   env.ContractAddress(),
		Now:    now,
	}
	ctx.Funds, ctx.fundsErr = fundsFromIntents(env.Intents)
	return ctx, nil
}

// parseTimestamp accepts unix seconds or the RFC3339-ish strings the host hands out.
func parseTimestamp(val string) (int64, bool) {
	if v, err := strconv.ParseInt(val, 10, 64); err == nil {
		return v, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t.Unix(), true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", val, time.UTC); err == nil {
		return t.Unix(), true
	}
	return 0, false
}

// fundsFromIntents turns every transfer.allow intent into a coin. Other intent types are ignored.
func fundsFromIntents(intents []sdk.Intent) ([]sdk.Coin, error) {
	var out []sdk.Coin
	for _, intent := range intents {
		if intent.Type != sdk.IntentTransferAllow {
			continue
		}
		token := strings.TrimSpace(intent.Args["token"])
		if token == "" {
			return nil, newError(KindInvalidAsset, "intent without token")
		}
		limit, err := strconv.ParseInt(strings.TrimSpace(intent.Args["limit"]), 10, 64)
		if err != nil || limit <= 0 {
			return nil, newError(KindInvalidAsset, "invalid intent limit %q", intent.Args["limit"])
		}
		out = append(out, sdk.Coin{Asset: sdk.Asset(token), Amount: limit})
	}
	return out, nil
}

// singleFund checks that exactly one coin of asset is attached and returns it without drawing.
func (c *Context) singleFund(asset sdk.Asset) (sdk.Coin, error) {
	if c.fundsErr != nil {
		return sdk.Coin{}, c.fundsErr
	}
	if len(c.Funds) != 1 {
		return sdk.Coin{}, newError(KindInvalidAsset, "expected exactly one fund entry, got %d", len(c.Funds))
	}
	coin := c.Funds[0]
	if coin.Asset != asset {
		return sdk.Coin{}, newError(KindInvalidAsset, "expected %s, got %s", asset, coin.Asset)
	}
	return coin, nil
}

// draw moves the coin into contract custody.
func (c *Context) draw(coin sdk.Coin) error {
	if err := c.Host.Draw(coin.Amount, coin.Asset); err != nil {
		return newError(KindInsufficientFunds, "draw %s: %v", coin, err)
	}
	return nil
}

// balance is the contract's own holding of asset.
func (c *Context) balance(asset sdk.Asset) int64 {
	return c.Host.GetBalance(c.Self, asset)
}

// holderWeight is the number of collection tokens addr holds, the free vote address counts as one.
func (c *Context) holderWeight(cfg *Config, addr sdk.Address) (uint64, error) {
	if cfg.FreeVoteAddr != "" && addr == cfg.FreeVoteAddr {
		return 1, nil
	}
	n, err := c.Host.TokensOf(cfg.Collection, addr)
	if err != nil {
		return 0, newError(KindBusinessRule, "holder query failed: %v", err)
	}
	return n, nil
}
