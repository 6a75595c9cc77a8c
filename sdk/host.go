package sdk

// State is the contract's key/value storage. Missing keys read as nil.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// Host bundles everything a contract call may touch outside its own code. Reads are synchronous,
// writes are only visible to the rest of the transaction and vanish if the host reverts it.
type Host interface {
	State

	// Log writes an event line for indexers.
	Log(msg string)

	// GetBalance returns the balance of address in asset.
	GetBalance(address Address, asset Asset) int64

	// Draw pulls amount of asset from the sender into contract custody. The host enforces
	// the transfer.allow limit.
	Draw(amount int64, asset Asset) error

	// TokensOf returns how many tokens of collection the owner holds.
	TokensOf(collection Address, owner Address) (uint64, error)

	// TotalSupply returns the number of tokens minted by collection so far.
	TotalSupply(collection Address) (uint64, error)
}
