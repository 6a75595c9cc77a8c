package chain

import (
	"strconv"

	"brane_auction/sdk"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// kv is the subset shared by *leveldb.DB and *leveldb.Transaction.
type kv interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	Put(key, value []byte, wo *opt.WriteOptions) error
	Delete(key []byte, wo *opt.WriteOptions) error
}

// Key layout. Contract state is namespaced so a contract can never read ledger rows.
const (
	prefixState      = "s/"
	prefixBalance    = "b/"
	prefixCollection = "c/"

	metaContract = "m/contract"
	metaCollect  = "m/collection"
	metaTime     = "m/time"
	metaFailMint = "m/failmint/"
)

func stateKey(key string) []byte {
	return []byte(prefixState + key)
}

func balanceKey(addr sdk.Address, asset sdk.Asset) []byte {
	return []byte(prefixBalance + addr.String() + "|" + asset.String())
}

func ownedKey(coll, owner sdk.Address) []byte {
	return []byte(prefixCollection + coll.String() + "|owned|" + owner.String())
}

func supplyKey(coll sdk.Address) []byte {
	return []byte(prefixCollection + coll.String() + "|supply")
}

func tokenKey(coll sdk.Address, id uint64) []byte {
	return []byte(prefixCollection + coll.String() + "|token|" + strconv.FormatUint(id, 10))
}

// getRaw returns nil, nil for missing keys.
func getRaw(db kv, key []byte) ([]byte, error) {
	v, err := db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %q", key)
	}
	return v, nil
}

func getInt(db kv, key []byte) (int64, error) {
	raw, err := getRaw(db, key)
	if err != nil || raw == nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "corrupt counter %q", key)
	}
	return n, nil
}

func putInt(db kv, key []byte, v int64) error {
	if v == 0 {
		return errors.Wrapf(db.Delete(key, nil), "delete %q", key)
	}
	return errors.Wrapf(db.Put(key, []byte(strconv.FormatInt(v, 10)), nil), "put %q", key)
}

func getUint(db kv, key []byte) (uint64, error) {
	raw, err := getRaw(db, key)
	if err != nil || raw == nil {
		return 0, err
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "corrupt counter %q", key)
	}
	return n, nil
}

func putUint(db kv, key []byte, v uint64) error {
	return errors.Wrapf(db.Put(key, []byte(strconv.FormatUint(v, 10)), nil), "put %q", key)
}
