package contract

import (
	"github.com/pkg/errors"
)

func (c *Context) loadLiveAuction() (*Auction, error) {
	data := c.stateGetBytes(liveAuctionKey())
	if data == nil {
		return nil, nil
	}
	a, err := DecodeAuction(data)
	if err != nil {
		return nil, errors.Wrap(err, "load live auction")
	}
	return a, nil
}

func (c *Context) saveLiveAuction(a *Auction) {
	c.stateSetIfChanged(liveAuctionKey(), EncodeAuction(a))
}

func (c *Context) clearLiveAuction() {
	c.Host.Delete(liveAuctionKey())
}

func (c *Context) loadAssetAuction() (*AssetAuction, error) {
	data := c.stateGetBytes(assetAuctionKey())
	if data == nil {
		return nil, nil
	}
	a, err := DecodeAssetAuction(data)
	if err != nil {
		return nil, errors.Wrap(err, "load asset auction")
	}
	return a, nil
}

func (c *Context) saveAssetAuction(a *AssetAuction) {
	c.stateSetIfChanged(assetAuctionKey(), EncodeAssetAuction(a))
}

func (c *Context) clearAssetAuction() {
	c.Host.Delete(assetAuctionKey())
}

// -----------------------------------------------------------------------------
// Pending queue
// -----------------------------------------------------------------------------

func (c *Context) loadQueueBounds() (queueBounds, error) {
	data := c.stateGetBytes(pendingQueueKey())
	if data == nil {
		return queueBounds{}, nil
	}
	q, err := decodeQueueBounds(data)
	if err != nil {
		return q, errors.Wrap(err, "load pending queue")
	}
	return q, nil
}

func (c *Context) saveQueueBounds(q queueBounds) {
	c.stateSetIfChanged(pendingQueueKey(), encodeQueueBounds(q))
}

// enqueueAuction appends at the tail.
func (c *Context) enqueueAuction(a *Auction) error {
	q, err := c.loadQueueBounds()
	if err != nil {
		return err
	}
	c.Host.Set(pendingAuctionKey(q.Tail), string(EncodeAuction(a)))
	q.Tail++
	c.saveQueueBounds(q)
	return nil
}

// dequeueAuction pops the head, nil when the queue is empty.
func (c *Context) dequeueAuction() (*Auction, error) {
	q, err := c.loadQueueBounds()
	if err != nil {
		return nil, err
	}
	if q.Len() == 0 {
		return nil, nil
	}
	key := pendingAuctionKey(q.Head)
	data := c.stateGetBytes(key)
	if data == nil {
		return nil, errors.Errorf("pending auction %d missing", q.Head)
	}
	a, err := DecodeAuction(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load pending auction %d", q.Head)
	}
	c.Host.Delete(key)
	q.Head++
	c.saveQueueBounds(q)
	return a, nil
}

// pendingAt reads the auction at queue position pos (0 = head) without removing it.
func (c *Context) pendingAt(q queueBounds, pos uint64) (*Auction, error) {
	if pos >= q.Len() {
		return nil, nil
	}
	seq := q.Head + pos
	data := c.stateGetBytes(pendingAuctionKey(seq))
	if data == nil {
		return nil, errors.Errorf("pending auction %d missing", seq)
	}
	a, err := DecodeAuction(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load pending auction %d", seq)
	}
	return a, nil
}

// promote installs the auction as live when the slot is free, otherwise queues it.
func (c *Context) promote(cfg *Config, a *Auction) (bool, error) {
	live, err := c.loadLiveAuction()
	if err != nil {
		return false, err
	}
	if live == nil {
		if a.EndTime, err = deadline(c.Now, cfg.AuctionPeriodSeconds()); err != nil {
			return false, err
		}
		c.saveLiveAuction(a)
		return true, nil
	}
	a.EndTime = 0
	return false, c.enqueueAuction(a)
}

// rollover replaces the concluded live auction with the queue head or clears the slot.
func (c *Context) rollover(cfg *Config) (*Auction, error) {
	next, err := c.dequeueAuction()
	if err != nil {
		return nil, err
	}
	if next == nil {
		c.clearLiveAuction()
		return nil, nil
	}
	if next.EndTime, err = deadline(c.Now, cfg.AuctionPeriodSeconds()); err != nil {
		return nil, err
	}
	c.saveLiveAuction(next)
	return next, nil
}

// -----------------------------------------------------------------------------
// Mint saga
// -----------------------------------------------------------------------------

func (c *Context) loadPendingMint() (*PendingMint, error) {
	data := c.stateGetBytes(pendingMintKey())
	if data == nil {
		return nil, nil
	}
	p, err := DecodePendingMint(data)
	if err != nil {
		return nil, errors.Wrap(err, "load pending mint")
	}
	return p, nil
}

func (c *Context) savePendingMint(p *PendingMint) {
	c.Host.Set(pendingMintKey(), string(EncodePendingMint(p)))
}

func (c *Context) clearPendingMint() {
	c.Host.Delete(pendingMintKey())
}

func (c *Context) loadMintedToken(tokenID uint64) (*MintedToken, error) {
	data := c.stateGetBytes(mintedTokenKey(tokenID))
	if data == nil {
		return nil, nil
	}
	t, err := DecodeMintedToken(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load minted token %d", tokenID)
	}
	return t, nil
}

func (c *Context) saveMintedToken(t *MintedToken) {
	c.Host.Set(mintedTokenKey(t.TokenID), string(EncodeMintedToken(t)))
}
