package chain

import (
	"strings"

	"brane_auction/sdk"

	"github.com/pkg/errors"
)

var ErrMintRejected = errors.New("collection rejected mint")

// Token is a record kept by the native NFT collection.
type Token struct {
	ID    uint64
	Owner sdk.Address
	URI   string
}

func tokensOf(db kv, coll, owner sdk.Address) (uint64, error) {
	return getUint(db, ownedKey(coll, owner))
}

func totalSupply(db kv, coll sdk.Address) (uint64, error) {
	return getUint(db, supplyKey(coll))
}

// mintToken assigns the next sequential id to owner. Ids start at 0 and equal the supply before
// the mint.
func mintToken(db kv, coll, owner sdk.Address, uri string) (uint64, error) {
	raw, err := getRaw(db, []byte(metaFailMint+coll.String()))
	if err != nil {
		return 0, err
	}
	if raw != nil {
		return 0, errors.Wrapf(ErrMintRejected, "collection %s is halted", coll)
	}
	if !owner.IsValid() {
		return 0, errors.Wrapf(ErrMintRejected, "invalid owner %q", owner)
	}
	id, err := totalSupply(db, coll)
	if err != nil {
		return 0, err
	}
	owned, err := tokensOf(db, coll, owner)
	if err != nil {
		return 0, err
	}
	if err := putUint(db, supplyKey(coll), id+1); err != nil {
		return 0, err
	}
	if err := putUint(db, ownedKey(coll, owner), owned+1); err != nil {
		return 0, err
	}
	rec := owner.String() + "|" + uri
	if err := db.Put(tokenKey(coll, id), []byte(rec), nil); err != nil {
		return 0, errors.Wrap(err, "put token")
	}
	return id, nil
}

// Token reads a minted token of the configured collection.
func (c *Chain) Token(id uint64) (*Token, error) {
	raw, err := getRaw(c.db, tokenKey(c.collection, id))
	if err != nil || raw == nil {
		return nil, err
	}
	owner, uri, ok := strings.Cut(string(raw), "|")
	if !ok {
		return nil, errors.Errorf("corrupt token record %d", id)
	}
	return &Token{ID: id, Owner: sdk.Address(owner), URI: uri}, nil
}

// TokensOf is the holder count of the configured collection.
func (c *Chain) TokensOf(owner sdk.Address) (uint64, error) {
	return tokensOf(c.db, c.collection, owner)
}

// TotalSupply of the configured collection.
func (c *Chain) TotalSupply() (uint64, error) {
	return totalSupply(c.db, c.collection)
}

// SetMintFailure makes every following mint of the configured collection fail until cleared.
func (c *Chain) SetMintFailure(fail bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := []byte(metaFailMint + c.collection.String())
	if fail {
		return errors.Wrap(c.db.Put(key, []byte{1}, nil), "halt collection")
	}
	return errors.Wrap(c.db.Delete(key, nil), "resume collection")
}
