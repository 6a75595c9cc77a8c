package contract

import (
	"net/url"
	"strconv"
	"strings"

	"brane_auction/sdk"
)

// validateTokenURI accepts absolute locators like https://host/path or ipfs://cid.
func validateTokenURI(raw string) error {
	if raw == "" || len(raw) > MaxTokenURILength {
		return newError(KindInvalidTokenURI, "token uri must be 1-%d chars", MaxTokenURILength)
	}
	if strings.ContainsAny(raw, " \t\r\n|") {
		return newError(KindInvalidTokenURI, "token uri contains whitespace or pipes")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return newError(KindInvalidTokenURI, "%v", err)
	}
	if u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return newError(KindInvalidTokenURI, "token uri %q is not an absolute locator", raw)
	}
	return nil
}

// SubmitNft registers a new candidate work. Holders of the collection submit for free, everybody
// else attaches exactly the submission cost in the bid asset.
func SubmitNft(ctx *Context, args *SubmitArgs) (uint64, error) {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return 0, err
	}
	if cfg.SubmissionTotal >= cfg.SubmissionLimit {
		return 0, ruleError("submission limit of %d reached", cfg.SubmissionLimit)
	}
	if err := validateTokenURI(args.TokenURI); err != nil {
		return 0, err
	}
	recipient := args.ProceedsRecipient
	if recipient == "" {
		recipient = ctx.Sender
	}
	if !recipient.IsValid() {
		return 0, newError(KindInvalidPayload, "invalid proceeds recipient %q", recipient)
	}

	weight, err := ctx.holderWeight(cfg, ctx.Sender)
	if err != nil {
		return 0, err
	}
	if weight == 0 && cfg.SubmissionCost > 0 {
		if len(ctx.Funds) == 0 && ctx.fundsErr == nil {
			return 0, newError(KindInsufficientFunds, "submission costs %d%s", cfg.SubmissionCost, cfg.BidAsset)
		}
		coin, err := ctx.singleFund(cfg.BidAsset)
		if err != nil {
			return 0, err
		}
		if coin.Amount != cfg.SubmissionCost {
			return 0, newError(KindInsufficientFunds, "submission costs %d%s, got %s", cfg.SubmissionCost, cfg.BidAsset, coin)
		}
		if err := ctx.draw(coin); err != nil {
			return 0, err
		}
	}

	voteEnd, err := deadline(ctx.Now, cfg.VotePeriodSeconds())
	if err != nil {
		return 0, err
	}
	id := cfg.CurrentSubmissionID
	sub := &Submission{
		Info: SubmissionInfo{
			Submitter:         ctx.Sender,
			ProceedsRecipient: recipient,
			TokenURI:          args.TokenURI,
		},
		EndTime: voteEnd,
	}
	if err := ctx.insertSubmission(id, sub); err != nil {
		return 0, err
	}
	cfg.CurrentSubmissionID++
	cfg.SubmissionTotal++
	ctx.saveConfig(cfg)

	ctx.emitSubmitted(id, ctx.Sender)
	ctx.Response.addAttribute("method", "submit_nft")
	ctx.Response.addAttribute("submission_id", strconv.FormatUint(id, 10))
	ctx.Response.Data = []byte(strconv.FormatUint(id, 10))
	return id, nil
}

// submissionFromInfo builds the record used for the instantiate auction, it never enters the registry.
func submissionFromInfo(info SubmissionInfo, end int64) Submission {
	return Submission{Info: info, EndTime: end}
}

func validAddressOrEmpty(a sdk.Address) bool {
	return a == "" || a.IsValid()
}
