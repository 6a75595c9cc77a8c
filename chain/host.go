package chain

import (
	"brane_auction/sdk"

	"github.com/pkg/errors"
)

// txHost serves one contract call out of an open leveldb transaction. sdk.State has no error
// returns, so the first storage failure is kept in err and fails the call afterwards.
type txHost struct {
	tr     kv
	sender sdk.Address
	self   sdk.Address
	allow  map[sdk.Asset]int64
	logs   []string
	err    error
}

func newTxHost(tr kv, sender, self sdk.Address, funds []sdk.Coin) *txHost {
	h := &txHost{tr: tr, sender: sender, self: self, allow: map[sdk.Asset]int64{}}
	for _, c := range funds {
		h.allow[c.Asset] += c.Amount
	}
	return h
}

func (h *txHost) fail(err error) {
	if h.err == nil && err != nil {
		h.err = err
	}
}

func (h *txHost) Set(key, value string) {
	h.fail(errors.Wrap(h.tr.Put(stateKey(key), []byte(value), nil), "state set"))
}

func (h *txHost) Get(key string) *string {
	raw, err := getRaw(h.tr, stateKey(key))
	if err != nil {
		h.fail(err)
		return nil
	}
	if raw == nil {
		return nil
	}
	s := string(raw)
	return &s
}

func (h *txHost) Delete(key string) {
	h.fail(errors.Wrap(h.tr.Delete(stateKey(key), nil), "state delete"))
}

func (h *txHost) Log(msg string) {
	h.logs = append(h.logs, msg)
}

func (h *txHost) GetBalance(addr sdk.Address, asset sdk.Asset) int64 {
	bal, err := balanceOf(h.tr, addr, asset)
	h.fail(err)
	return bal
}

// Draw spends from the sender's transfer.allow limit for asset.
func (h *txHost) Draw(amount int64, asset sdk.Asset) error {
	if amount <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "draw %d%s", amount, asset)
	}
	left := h.allow[asset]
	if amount > left {
		return errors.Errorf("draw %d%s exceeds allowance %d", amount, asset, left)
	}
	if err := transfer(h.tr, h.sender, h.self, asset, amount); err != nil {
		return err
	}
	h.allow[asset] = left - amount
	return nil
}

func (h *txHost) TokensOf(coll, owner sdk.Address) (uint64, error) {
	return tokensOf(h.tr, coll, owner)
}

func (h *txHost) TotalSupply(coll sdk.Address) (uint64, error) {
	return totalSupply(h.tr, coll)
}
