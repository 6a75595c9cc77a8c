package sdk

import "strconv"

type Asset string

const (
	AssetHive       Asset = "hive"
	AssetHiveCons   Asset = "hive_consensus"
	AssetHbd        Asset = "hbd"
	AssetHbdSavings Asset = "hbd_savings"
)

// String returns the raw ticker string for logging or host calls.
// Example payload: sdk.AssetHive.String()
func (a Asset) String() string {
	return string(a)
}

// Coin is an amount of a single asset in base units.
type Coin struct {
	Asset  Asset
	Amount int64
}

// String prints the coin the way event lines expect it, e.g. 1000hbd.
func (c Coin) String() string {
	return strconv.FormatInt(c.Amount, 10) + c.Asset.String()
}

// IsZero is true for empty coins (no asset or no amount).
func (c Coin) IsZero() bool {
	return c.Amount == 0
}
