package contract

import (
	"math"

	"brane_auction/sdk"
)

// VoteOutcome is what a single curation step decided for one submission.
type VoteOutcome uint8

const (
	// VoteSkip leaves the submission untouched (repeat voter).
	VoteSkip VoteOutcome = iota
	// VoteEvict removes an expired submission that stayed below the threshold.
	VoteEvict
	// VotePromote moves the submission into the auction schedule.
	VotePromote
	// VotePersist stores the updated tally.
	VotePersist
)

func (o VoteOutcome) String() string {
	switch o {
	case VoteSkip:
		return "skip"
	case VoteEvict:
		return "evict"
	case VotePromote:
		return "promote"
	case VotePersist:
		return "persist"
	default:
		return "unknown"
	}
}

// tallyVote applies one vote to s and decides what happens to it. It only touches s.
// Expired submissions are settled on their current tally, the late vote is not counted.
func tallyVote(s *Submission, voter sdk.Address, weight, threshold uint64, now int64) VoteOutcome {
	if now > s.EndTime {
		if s.Votes < threshold {
			return VoteEvict
		}
		return VotePromote
	}
	if s.HasCurator(voter) {
		return VoteSkip
	}
	s.Curators = append(s.Curators, voter)
	if s.Votes > math.MaxUint64-weight {
		s.Votes = math.MaxUint64
	} else {
		s.Votes += weight
	}
	if s.Votes >= threshold {
		return VotePromote
	}
	return VotePersist
}

// CurateNft votes on one or more submissions with the caller's holder weight.
func CurateNft(ctx *Context, args *CurateArgs) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	if len(args.SubmissionIDs) == 0 {
		return newError(KindInvalidPayload, "no submission ids")
	}
	weight, err := ctx.holderWeight(cfg, ctx.Sender)
	if err != nil {
		return err
	}
	if weight == 0 {
		return ruleError("sender does not hold an NFT")
	}
	supply, err := ctx.Host.TotalSupply(cfg.Collection)
	if err != nil {
		return ruleError("supply query failed: %v", err)
	}
	threshold := voteThreshold(supply, cfg.CurationThreshold)

	for _, id := range args.SubmissionIDs {
		sub, err := ctx.loadSubmission(id)
		if err != nil {
			return err
		}
		if sub == nil {
			if len(args.SubmissionIDs) == 1 {
				return newError(KindNotFound, "submission %d not found", id)
			}
			continue
		}
		before := len(sub.Curators)
		outcome := tallyVote(sub, ctx.Sender, weight, threshold, ctx.Now)
		if len(sub.Curators) > before {
			ctx.emitVoted(id, ctx.Sender, weight)
		}
		switch outcome {
		case VoteEvict:
			if err := ctx.removeSubmission(cfg, id); err != nil {
				return err
			}
			ctx.emitEvicted(id)
		case VotePromote:
			if err := ctx.removeSubmission(cfg, id); err != nil {
				return err
			}
			live, err := ctx.promote(cfg, &Auction{Submission: *sub})
			if err != nil {
				return err
			}
			ctx.emitPromoted(id, live)
		case VotePersist:
			ctx.saveSubmission(id, sub)
		}
	}
	ctx.saveConfig(cfg)
	ctx.Response.addAttribute("method", "curate_nft")
	return nil
}
