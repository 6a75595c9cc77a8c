package sdk

import "strconv"

// Msg is a declarative side effect returned by a contract call. Hosts execute the messages in
// order after the call succeeded and revert everything if one of them fails.
type Msg interface {
	MsgType() string
}

// TransferMsg moves funds out of contract custody.
type TransferMsg struct {
	To     Address
	Amount int64
	Asset  Asset
}

func (TransferMsg) MsgType() string { return "transfer" }

// MintMsg asks the external collection to mint a token. The host answers with a MintReply
// carrying the new token id once the call completed.
type MintMsg struct {
	Collection Address
	Owner      Address
	TokenURI   string
	Fee        Coin
}

func (MintMsg) MsgType() string { return "mint" }

// MintReply is what the collection returns for a successful MintMsg.
type MintReply struct {
	Collection Address
	TokenID    uint64
}

func formatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}
