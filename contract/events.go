package contract

import (
	"fmt"

	"brane_auction/sdk"
)

// emitInstantiated marks the contract going live with its first auction.
func (c *Context) emitInstantiated(owner sdk.Address, end int64) {
	c.Host.Log(fmt.Sprintf("in|by:%s|end:%d", owner, end))
}

// emitSubmitted pings indexers about a new submission awaiting votes.
func (c *Context) emitSubmitted(id uint64, by sdk.Address) {
	c.Host.Log(fmt.Sprintf("sb|id:%d|by:%s", id, by))
}

func (c *Context) emitVoted(id uint64, by sdk.Address, weight uint64) {
	c.Host.Log(fmt.Sprintf("cv|id:%d|by:%s|w:%d", id, by, weight))
}

// emitEvicted is logged when a submission missed its threshold before the deadline.
func (c *Context) emitEvicted(id uint64) {
	c.Host.Log(fmt.Sprintf("ce|id:%d", id))
}

// emitPromoted tells watchers whether the submission went live or into the queue.
func (c *Context) emitPromoted(id uint64, live bool) {
	c.Host.Log(fmt.Sprintf("cp|id:%d|live:%t", id, live))
}

func (c *Context) emitBid(by sdk.Address, amount int64) {
	c.Host.Log(fmt.Sprintf("bn|by:%s|am:%d", by, amount))
}

func (c *Context) emitAssetBid(by sdk.Address, amount int64) {
	c.Host.Log(fmt.Sprintf("ba|by:%s|am:%d", by, amount))
}

// emitConcluded is the settlement line, one per sold auction.
func (c *Context) emitConcluded(winner sdk.Address, amount int64) {
	c.Host.Log(fmt.Sprintf("ac|by:%s|am:%d", winner, amount))
}

func (c *Context) emitExtended(end int64) {
	c.Host.Log(fmt.Sprintf("ax|end:%d", end))
}

// emitAssetAuctionSeeded shows how much of the proceeds went up for the next asset auction.
func (c *Context) emitAssetAuctionSeeded(coin sdk.Coin) {
	c.Host.Log(fmt.Sprintf("aa|am:%s", coin))
}

func (c *Context) emitMinted(tokenID uint64, to sdk.Address) {
	c.Host.Log(fmt.Sprintf("mr|tk:%d|to:%s", tokenID, to))
}

func (c *Context) emitConfigUpdated(by sdk.Address) {
	c.Host.Log(fmt.Sprintf("cu|by:%s", by))
}

// emitOwnershipRequested logs the pending owner so they know they can claim.
func (c *Context) emitOwnershipRequested(to sdk.Address) {
	c.Host.Log(fmt.Sprintf("ot|to:%s", to))
}
