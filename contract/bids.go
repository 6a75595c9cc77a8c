package contract

import (
	"strconv"
)

// BidForNft places a bid on the live primary auction. The first bid only needs to be positive,
// every later one has to clear the minimum outbid margin. The displaced bid is refunded.
func BidForNft(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	coin, err := ctx.singleFund(cfg.BidAsset)
	if err != nil {
		return err
	}
	live, err := ctx.loadLiveAuction()
	if err != nil {
		return err
	}
	if live == nil {
		return ruleError("no live auction")
	}
	if ctx.Now >= live.EndTime {
		return ruleError("auction ended at %d", live.EndTime)
	}
	if len(live.Bids) > 0 && !outbids(coin.Amount, live.HighestBid.Amount, cfg.MinimumOutbid) {
		return ruleError("bid %d does not outbid %d by %s", coin.Amount, live.HighestBid.Amount, cfg.MinimumOutbid)
	}
	if err := ctx.draw(coin); err != nil {
		return err
	}

	prev := live.HighestBid
	bid := Bid{Bidder: ctx.Sender, Amount: coin.Amount}
	live.Bids = append(live.Bids, bid)
	live.HighestBid = bid
	ctx.saveLiveAuction(live)
	ctx.Response.transfer(prev.Bidder, prev.Amount, cfg.BidAsset)

	ctx.emitBid(ctx.Sender, coin.Amount)
	ctx.Response.addAttribute("method", "bid_for_nft")
	ctx.Response.addAttribute("bidder", ctx.Sender.String())
	ctx.Response.addAttribute("amount", strconv.FormatInt(coin.Amount, 10))
	return nil
}

// BidForAssets bids incentive tokens on the live asset auction. It has no deadline of its own and
// is settled together with the primary auction.
func BidForAssets(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	if !cfg.HasIncentive() {
		return ruleError("no incentive asset configured")
	}
	coin, err := ctx.singleFund(cfg.IncentiveAsset)
	if err != nil {
		return err
	}
	aa, err := ctx.loadAssetAuction()
	if err != nil {
		return err
	}
	if aa == nil {
		return ruleError("no live asset auction")
	}
	if !outbids(coin.Amount, aa.HighestBid.Amount, cfg.MinimumOutbid) {
		return ruleError("bid %d does not outbid %d by %s", coin.Amount, aa.HighestBid.Amount, cfg.MinimumOutbid)
	}
	if err := ctx.draw(coin); err != nil {
		return err
	}

	prev := aa.HighestBid
	aa.HighestBid = Bid{Bidder: ctx.Sender, Amount: coin.Amount}
	ctx.saveAssetAuction(aa)
	if prev.Bidder != ctx.Self {
		ctx.Response.transfer(prev.Bidder, prev.Amount, cfg.IncentiveAsset)
	}

	ctx.emitAssetBid(ctx.Sender, coin.Amount)
	ctx.Response.addAttribute("method", "bid_for_assets")
	ctx.Response.addAttribute("bidder", ctx.Sender.String())
	ctx.Response.addAttribute("amount", strconv.FormatInt(coin.Amount, 10))
	return nil
}
