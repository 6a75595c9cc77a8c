package chain

import (
	"math"

	"brane_auction/sdk"

	"github.com/pkg/errors"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
)

func balanceOf(db kv, addr sdk.Address, asset sdk.Asset) (int64, error) {
	return getInt(db, balanceKey(addr, asset))
}

func credit(db kv, addr sdk.Address, asset sdk.Asset, amount int64) error {
	if amount < 0 {
		return errors.Wrapf(ErrInvalidAmount, "credit %d%s", amount, asset)
	}
	bal, err := balanceOf(db, addr, asset)
	if err != nil {
		return err
	}
	if bal > math.MaxInt64-amount {
		return errors.Errorf("balance overflow for %s", addr)
	}
	return putInt(db, balanceKey(addr, asset), bal+amount)
}

// transfer moves amount between two accounts. Zero amounts are a no-op.
func transfer(db kv, from, to sdk.Address, asset sdk.Asset, amount int64) error {
	if amount < 0 {
		return errors.Wrapf(ErrInvalidAmount, "transfer %d%s", amount, asset)
	}
	if amount == 0 || from == to {
		return nil
	}
	bal, err := balanceOf(db, from, asset)
	if err != nil {
		return err
	}
	if bal < amount {
		return errors.Wrapf(ErrInsufficientBalance, "%s holds %d%s, needs %d", from, bal, asset, amount)
	}
	if err := putInt(db, balanceKey(from, asset), bal-amount); err != nil {
		return err
	}
	return credit(db, to, asset, amount)
}

// Balance reads a committed balance.
func (c *Chain) Balance(addr sdk.Address, asset sdk.Asset) (int64, error) {
	return balanceOf(c.db, addr, asset)
}

// Deposit credits an account outside of any contract call, like a bridge deposit.
func (c *Chain) Deposit(addr sdk.Address, asset sdk.Asset, amount int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !addr.IsValid() {
		return errors.Errorf("invalid address %q", addr)
	}
	tr, err := c.db.OpenTransaction()
	if err != nil {
		return errors.Wrap(err, "open transaction")
	}
	if err := credit(tr, addr, asset, amount); err != nil {
		tr.Discard()
		return err
	}
	return errors.Wrap(tr.Commit(), "commit deposit")
}
