package contract

import (
	"brane_auction/sdk"

	"github.com/shopspring/decimal"
)

// DefaultConfig returns the economic defaults every new deployment starts from.
func DefaultConfig(owner sdk.Address) *Config {
	return &Config{
		Owner:                       owner,
		MinimumOutbid:               DefaultMinimumOutbid,
		IncentiveDistributionAmount: DefaultIncentiveDistributionAmount,
		IncentiveBidPercent:         DefaultIncentiveBidPercent,
		SubmissionCost:              DefaultSubmissionCost,
		SubmissionLimit:             DefaultSubmissionLimit,
		SubmissionVotePeriod:        DefaultSubmissionVotePeriod,
		CurationThreshold:           DefaultCurationThreshold,
		AuctionPeriod:               DefaultAuctionPeriod,
	}
}

// Instantiate writes the config and opens the first auction from the given submission.
// The caller becomes owner.
func Instantiate(ctx *Context, args *InstantiateArgs) error {
	if ctx.initialized() {
		return ruleError("already instantiated")
	}
	if args.BidAsset == "" {
		return newError(KindInvalidPayload, "bid asset is required")
	}
	if args.IncentiveAsset == args.BidAsset {
		return newError(KindInvalidPayload, "incentive asset must differ from bid asset")
	}
	if !args.Collection.IsValid() {
		return newError(KindInvalidPayload, "invalid collection %q", args.Collection)
	}
	if !validAddressOrEmpty(args.FreeVoteAddr) {
		return newError(KindInvalidPayload, "invalid free vote address %q", args.FreeVoteAddr)
	}
	if args.MintCost < 0 {
		return newError(KindInvalidPayload, "mint cost must not be negative")
	}
	first := args.FirstSubmission
	if first.Submitter == "" {
		first.Submitter = ctx.Sender
	}
	if first.ProceedsRecipient == "" {
		first.ProceedsRecipient = first.Submitter
	}
	if !first.ProceedsRecipient.IsValid() {
		return newError(KindInvalidPayload, "invalid proceeds recipient %q", first.ProceedsRecipient)
	}
	if err := validateTokenURI(first.TokenURI); err != nil {
		return err
	}

	cfg := DefaultConfig(ctx.Sender)
	cfg.BidAsset = args.BidAsset
	cfg.IncentiveAsset = args.IncentiveAsset
	cfg.Collection = args.Collection
	cfg.FreeVoteAddr = args.FreeVoteAddr
	cfg.MintCost = args.MintCost
	if args.Overrides != nil {
		if args.Overrides.Owner != nil {
			return newError(KindInvalidPayload, "owner is the instantiating sender")
		}
		if err := applyConfigUpdate(cfg, args.Overrides); err != nil {
			return err
		}
	}
	voteEnd, err := deadline(ctx.Now, cfg.VotePeriodSeconds())
	if err != nil {
		return err
	}
	auctionEnd, err := deadline(ctx.Now, cfg.AuctionPeriodSeconds())
	if err != nil {
		return err
	}
	ctx.saveConfig(cfg)

	live := &Auction{
		Submission: submissionFromInfo(first, voteEnd),
		EndTime:    auctionEnd,
	}
	ctx.saveLiveAuction(live)

	ctx.emitInstantiated(cfg.Owner, live.EndTime)
	ctx.Response.addAttribute("method", "instantiate")
	ctx.Response.addAttribute("owner", cfg.Owner.String())
	return nil
}

// UpdateConfig changes the economic parameters. Only the owner may call it, or the address a
// previous update nominated as next owner; that address takes over on its first call.
func UpdateConfig(ctx *Context, args *UpdateConfigArgs) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	if ctx.Sender != cfg.Owner {
		target, ok := ctx.loadOwnershipTransfer()
		if !ok || target != ctx.Sender {
			return newError(KindUnauthorized, "only the owner may update the config")
		}
		cfg.Owner = ctx.Sender
		ctx.clearOwnershipTransfer()
	}
	if err := ctx.checkAssetSwitch(cfg, args); err != nil {
		return err
	}
	if err := applyConfigUpdate(cfg, args); err != nil {
		return err
	}
	if args.Owner != nil {
		if *args.Owner == cfg.Owner {
			ctx.clearOwnershipTransfer()
		} else {
			ctx.saveOwnershipTransfer(*args.Owner)
			ctx.emitOwnershipRequested(*args.Owner)
		}
	}
	ctx.saveConfig(cfg)

	ctx.emitConfigUpdated(ctx.Sender)
	ctx.Response.addAttribute("method", "update_config")
	return nil
}

// checkAssetSwitch refuses to change a denomination while bids escrowed in the old one are
// still waiting to be refunded or settled.
func (c *Context) checkAssetSwitch(cfg *Config, args *UpdateConfigArgs) error {
	if args.BidAsset != nil && *args.BidAsset != cfg.BidAsset {
		live, err := c.loadLiveAuction()
		if err != nil {
			return err
		}
		if live != nil && len(live.Bids) > 0 {
			return ruleError("bid asset is locked while the live auction holds bids")
		}
	}
	if args.IncentiveAsset != nil && *args.IncentiveAsset != cfg.IncentiveAsset {
		aa, err := c.loadAssetAuction()
		if err != nil {
			return err
		}
		if aa != nil && aa.HighestBid.Amount > 0 && aa.HighestBid.Bidder != c.Self {
			return ruleError("incentive asset is locked while the asset auction holds a bid")
		}
	}
	return nil
}

// applyConfigUpdate validates every provided field before copying them over.
func applyConfigUpdate(cfg *Config, args *UpdateConfigArgs) error {
	next := *cfg
	if args.Owner != nil && !args.Owner.IsValid() {
		return newError(KindInvalidPayload, "invalid owner %q", *args.Owner)
	}
	if args.FreeVoteAddr != nil {
		if !validAddressOrEmpty(*args.FreeVoteAddr) {
			return newError(KindInvalidPayload, "invalid free vote address %q", *args.FreeVoteAddr)
		}
		next.FreeVoteAddr = *args.FreeVoteAddr
	}
	if args.BurnAddr != nil {
		if !validAddressOrEmpty(*args.BurnAddr) {
			return newError(KindInvalidPayload, "invalid burn address %q", *args.BurnAddr)
		}
		next.BurnAddr = *args.BurnAddr
	}
	if args.BidAsset != nil {
		if *args.BidAsset == "" {
			return newError(KindInvalidPayload, "bid asset is required")
		}
		next.BidAsset = *args.BidAsset
	}
	if args.IncentiveAsset != nil {
		next.IncentiveAsset = *args.IncentiveAsset
	}
	if next.IncentiveAsset != "" && next.IncentiveAsset == next.BidAsset {
		return newError(KindInvalidPayload, "incentive asset must differ from bid asset")
	}
	percents := []struct {
		name string
		src  *decimal.Decimal
		dst  *decimal.Decimal
	}{
		{"minimum outbid", args.MinimumOutbid, &next.MinimumOutbid},
		{"incentive bid percent", args.IncentiveBidPercent, &next.IncentiveBidPercent},
		{"curation threshold", args.CurationThreshold, &next.CurationThreshold},
	}
	for _, p := range percents {
		if p.src == nil {
			continue
		}
		if !validPercent(*p.src) {
			return newError(KindInvalidPayload, "%s must be between 0 and 1", p.name)
		}
		*p.dst = *p.src
	}
	amounts := []struct {
		name string
		src  *int64
		dst  *int64
	}{
		{"incentive distribution amount", args.IncentiveDistributionAmount, &next.IncentiveDistributionAmount},
		{"mint cost", args.MintCost, &next.MintCost},
		{"submission cost", args.SubmissionCost, &next.SubmissionCost},
	}
	for _, a := range amounts {
		if a.src == nil {
			continue
		}
		if *a.src < 0 {
			return newError(KindInvalidPayload, "%s must not be negative", a.name)
		}
		*a.dst = *a.src
	}
	if args.SubmissionLimit != nil {
		next.SubmissionLimit = *args.SubmissionLimit
	}
	if args.SubmissionVotePeriod != nil {
		if *args.SubmissionVotePeriod == 0 || *args.SubmissionVotePeriod > MaxPeriodDays {
			return newError(KindInvalidPayload, "vote period must be between 1 and %d days", MaxPeriodDays)
		}
		next.SubmissionVotePeriod = *args.SubmissionVotePeriod
	}
	if args.AuctionPeriod != nil {
		if *args.AuctionPeriod == 0 || *args.AuctionPeriod > MaxPeriodDays {
			return newError(KindInvalidPayload, "auction period must be between 1 and %d days", MaxPeriodDays)
		}
		next.AuctionPeriod = *args.AuctionPeriod
	}
	*cfg = next
	return nil
}
