package contract

import (
	"math"
	"strconv"

	"brane_auction/sdk"
)

// settlement is the breakdown of one concluded auction, handy for tests and logs.
type settlement struct {
	Winner       Bid
	IncentiveCut int64
	Recipient    int64
	AssetPaidOut int64
	Burned       int64
	Seed         int64
	BidderPool   int64
	CuratorPool  int64
}

// ConcludeAuction settles the live auction once its end time passed. Anyone may call it.
//
// Without bids the auction is extended by a day. Otherwise the token is minted to the winner,
// the proceeds are split, the asset auction is settled and reseeded, incentives are paid and the
// next pending auction goes live. The mint result is recorded by HandleMintReply.
func ConcludeAuction(ctx *Context) error {
	cfg, err := ctx.loadConfig()
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
	if ctx.Now < live.EndTime {
		return ruleError("auction still live until %d", live.EndTime)
	}

	if live.HighestBid.Amount == 0 {
		if live.EndTime, err = deadline(live.EndTime, SecondsPerDay); err != nil {
			return err
		}
		ctx.saveLiveAuction(live)
		ctx.emitExtended(live.EndTime)
		ctx.Response.addAttribute("method", "conclude_auction")
		ctx.Response.addAttribute("highest_bidder", "None")
		ctx.Response.addAttribute("highest_bid", "0")
		return nil
	}

	if _, err := settle(ctx, cfg, live); err != nil {
		return err
	}
	if _, err := ctx.rollover(cfg); err != nil {
		return err
	}

	ctx.emitConcluded(live.HighestBid.Bidder, live.HighestBid.Amount)
	ctx.Response.addAttribute("method", "conclude_auction")
	ctx.Response.addAttribute("highest_bidder", live.HighestBid.Bidder.String())
	ctx.Response.addAttribute("highest_bid", strconv.FormatInt(live.HighestBid.Amount, 10))
	return nil
}

// settle queues every message of a sold auction. Nothing here depends on the mint result; all of
// it is discarded together with the mint if the host rolls back.
func settle(ctx *Context, cfg *Config, live *Auction) (*settlement, error) {
	st := &settlement{Winner: live.HighestBid}

	pending, err := ctx.loadPendingMint()
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ruleError("previous mint still pending")
	}
	ctx.savePendingMint(&PendingMint{Owner: st.Winner.Bidder, TokenURI: live.Submission.Info.TokenURI})
	ctx.Response.addMessage(sdk.MintMsg{
		Collection: cfg.Collection,
		Owner:      st.Winner.Bidder,
		TokenURI:   live.Submission.Info.TokenURI,
		Fee:        sdk.Coin{Asset: cfg.BidAsset, Amount: cfg.MintCost},
	})

	if cfg.HasIncentive() {
		st.IncentiveCut, err = mulFloor(st.Winner.Amount, cfg.IncentiveBidPercent)
		if err != nil {
			return nil, err
		}
	}
	st.Recipient = st.Winner.Amount - st.IncentiveCut
	ctx.Response.transfer(live.Submission.Info.ProceedsRecipient, st.Recipient, cfg.BidAsset)

	if err := settleAssetAuction(ctx, cfg, st); err != nil {
		return nil, err
	}

	st.Seed = clampSub(ctx.balance(cfg.BidAsset), st.Recipient, st.AssetPaidOut, cfg.MintCost)
	if st.Seed > 0 && cfg.HasIncentive() {
		next := &AssetAuction{
			Asset:      sdk.Coin{Asset: cfg.BidAsset, Amount: st.Seed},
			HighestBid: Bid{Bidder: ctx.Self, Amount: 0},
		}
		ctx.saveAssetAuction(next)
		ctx.emitAssetAuctionSeeded(next.Asset)
	}

	if cfg.HasIncentive() {
		if err := distributeIncentives(ctx, cfg, live, st); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// settleAssetAuction pays the asset auction winner and removes the auction. An auction without
// bids keeps its asset in custody, it flows into the next seed.
func settleAssetAuction(ctx *Context, cfg *Config, st *settlement) error {
	aa, err := ctx.loadAssetAuction()
	if err != nil {
		return err
	}
	if aa == nil {
		return nil
	}
	win := aa.HighestBid
	if win.Amount > 0 && win.Bidder != ctx.Self {
		ctx.Response.transfer(win.Bidder, aa.Asset.Amount, aa.Asset.Asset)
		if aa.Asset.Asset == cfg.BidAsset {
			st.AssetPaidOut = aa.Asset.Amount
		}
		if cfg.IncentiveDistributionAmount == 0 && cfg.BurnAddr != "" {
			ctx.Response.transfer(cfg.BurnAddr, win.Amount, cfg.IncentiveAsset)
			st.Burned = win.Amount
		}
	}
	ctx.clearAssetAuction()
	return nil
}

// distributeIncentives pays half of the budget pro-rata to bidders and the rest evenly to curators.
func distributeIncentives(ctx *Context, cfg *Config, live *Auction, st *settlement) error {
	available := clampSub(ctx.balance(cfg.IncentiveAsset), st.Burned)
	budget := available / 2
	if budget > cfg.IncentiveDistributionAmount {
		budget = cfg.IncentiveDistributionAmount
	}
	if budget <= 0 {
		return nil
	}
	st.BidderPool = budget / 2
	st.CuratorPool = budget - st.BidderPool

	order, totals, sum, err := aggregateBids(live.Bids)
	if err != nil {
		return err
	}
	for _, bidder := range order {
		ctx.Response.transfer(bidder, mulDivFloor(st.BidderPool, totals[bidder], sum), cfg.IncentiveAsset)
	}

	curators := live.Submission.Curators
	if len(curators) > 0 {
		share := st.CuratorPool / int64(len(curators))
		for _, c := range curators {
			ctx.Response.transfer(c, share, cfg.IncentiveAsset)
		}
	}
	return nil
}

// aggregateBids sums bids per bidder, keeping first appearance order for deterministic payouts.
func aggregateBids(bids []Bid) ([]sdk.Address, map[sdk.Address]int64, int64, error) {
	order := make([]sdk.Address, 0, len(bids))
	totals := make(map[sdk.Address]int64, len(bids))
	var sum int64
	for _, b := range bids {
		if _, seen := totals[b.Bidder]; !seen {
			order = append(order, b.Bidder)
		}
		v, err := addAmount(totals[b.Bidder], b.Amount)
		if err != nil {
			return nil, nil, 0, err
		}
		totals[b.Bidder] = v
		if sum, err = addAmount(sum, b.Amount); err != nil {
			return nil, nil, 0, err
		}
	}
	return order, totals, sum, nil
}

// HandleMintReply is the second half of settlement: the host calls it with the collection's answer
// after the mint message succeeded.
func HandleMintReply(ctx *Context, reply *sdk.MintReply) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	if reply == nil || reply.Collection != cfg.Collection {
		return newError(KindUnauthorized, "mint reply from unexpected collection")
	}
	pending, err := ctx.loadPendingMint()
	if err != nil {
		return err
	}
	if pending == nil {
		return ruleError("no pending mint")
	}
	existing, err := ctx.loadMintedToken(reply.TokenID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ruleError("token %d already recorded", reply.TokenID)
	}
	ctx.saveMintedToken(&MintedToken{
		TokenID:  reply.TokenID,
		Owner:    pending.Owner,
		TokenURI: pending.TokenURI,
		MintedAt: ctx.Now,
	})
	ctx.clearPendingMint()
	if cfg.CurrentTokenID == math.MaxUint64 {
		return newError(KindOverflow, "token counter exhausted")
	}
	cfg.CurrentTokenID++
	ctx.saveConfig(cfg)

	ctx.emitMinted(reply.TokenID, pending.Owner)
	ctx.Response.addAttribute("method", "mint_reply")
	ctx.Response.addAttribute("token_id", strconv.FormatUint(reply.TokenID, 10))
	return nil
}
