package sdk

// IntentTransferAllow is the intent type that authorizes the contract to draw funds.
const IntentTransferAllow = "transfer.allow"

type Intent struct {
	Type string            `json:"type"`
	Args map[string]string `json:"args"`
}

// TransferAllow builds a transfer.allow intent for the given coin, mostly used by hosts and tests.
// Example payload: sdk.TransferAllow(sdk.Coin{Asset: sdk.AssetHbd, Amount: 1000})
func TransferAllow(c Coin) Intent {
	return Intent{
		Type: IntentTransferAllow,
		Args: map[string]string{
			"token": c.Asset.String(),
			"limit": formatAmount(c.Amount),
		},
	}
}

type Sender struct {
	Address              Address   `json:"id"`
	RequiredAuths        []Address `json:"required_auths"`
	RequiredPostingAuths []Address `json:"required_posting_auths"`
}

type ContractCallOptions struct {
	Intents []Intent `json:"intents,omitempty"`
}

// Env is the snapshot of the executing transaction the host hands to the contract.
type Env struct {
	ContractId  string   `json:"contract.id"`
	TxId        string   `json:"tx.id"`
	Index       int64    `json:"tx.index"`
	OpIndex     int64    `json:"tx.op_index"`
	BlockId     string   `json:"block.id"`
	BlockHeight uint64   `json:"block.height"`
	Timestamp   string   `json:"block.timestamp"`
	Sender      Sender   `json:"-"`
	Intents     []Intent `json:"intents"`
}

// ContractAddress is the contract's own account, i.e. where drawn funds are held.
func (e *Env) ContractAddress() Address {
	return Address("contract:" + e.ContractId)
}
