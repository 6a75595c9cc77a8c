package contract

import (
	"brane_auction/sdk"

	"github.com/shopspring/decimal"
)

// Bid is immutable once recorded; a displaced bid is refunded, never edited.
type Bid struct {
	Bidder sdk.Address
	Amount int64
}

// SubmissionInfo is what the artist hands in.
type SubmissionInfo struct {
	Submitter         sdk.Address
	ProceedsRecipient sdk.Address
	TokenURI          string
}

// Submission is a candidate work waiting for curator votes.
type Submission struct {
	Info     SubmissionInfo
	Curators []sdk.Address
	Votes    uint64
	EndTime  int64
}

// HasCurator reports whether addr already voted on the submission.
func (s *Submission) HasCurator(addr sdk.Address) bool {
	for _, c := range s.Curators {
		if c == addr {
			return true
		}
	}
	return false
}

// SubmissionEntry pairs a registry id with its submission for listings.
type SubmissionEntry struct {
	ID         uint64
	Submission Submission
}

// Auction is the primary timed auction for one promoted submission. EndTime stays zero while
// the auction waits in the pending queue.
type Auction struct {
	Submission Submission
	Bids       []Bid
	HighestBid Bid
	EndTime    int64
}

// AssetAuction sells the previous primary auction's leftover proceeds for the incentive asset.
type AssetAuction struct {
	Asset      sdk.Coin
	HighestBid Bid
}

// PendingMint is written by settlement and consumed by the mint reply.
type PendingMint struct {
	Owner    sdk.Address
	TokenURI string
}

// MintedToken records a finished mint.
type MintedToken struct {
	TokenID  uint64
	Owner    sdk.Address
	TokenURI string
	MintedAt int64
}

// Config holds the economic parameters plus the id counters.
type Config struct {
	Owner        sdk.Address
	FreeVoteAddr sdk.Address
	Collection   sdk.Address
	BurnAddr     sdk.Address

	BidAsset       sdk.Asset
	IncentiveAsset sdk.Asset

	MinimumOutbid               decimal.Decimal
	IncentiveDistributionAmount int64
	IncentiveBidPercent         decimal.Decimal
	MintCost                    int64
	SubmissionCost              int64
	SubmissionLimit             uint64
	SubmissionVotePeriod        uint64
	CurationThreshold           decimal.Decimal
	AuctionPeriod               uint64

	CurrentSubmissionID uint64
	SubmissionTotal     uint64
	CurrentTokenID      uint64
}

// HasIncentive is false when no incentive asset is configured; the asset auction and the
// incentive payouts are switched off in that case.
func (c *Config) HasIncentive() bool {
	return c.IncentiveAsset != ""
}

// AuctionPeriodSeconds converts the day based period into seconds.
func (c *Config) AuctionPeriodSeconds() int64 {
	return int64(c.AuctionPeriod) * SecondsPerDay
}

// VotePeriodSeconds converts the day based vote window into seconds.
func (c *Config) VotePeriodSeconds() int64 {
	return int64(c.SubmissionVotePeriod) * SecondsPerDay
}

type InstantiateArgs struct {
	BidAsset        sdk.Asset
	IncentiveAsset  sdk.Asset
	Collection      sdk.Address
	FreeVoteAddr    sdk.Address
	MintCost        int64
	FirstSubmission SubmissionInfo
	// Overrides replaces defaults, Owner must stay nil.
	Overrides *UpdateConfigArgs
}

type SubmitArgs struct {
	ProceedsRecipient sdk.Address
	TokenURI          string
}

type CurateArgs struct {
	SubmissionIDs []uint64
}

// UpdateConfigArgs carries optional fields; nil means unchanged.
type UpdateConfigArgs struct {
	Owner                       *sdk.Address
	FreeVoteAddr                *sdk.Address
	BurnAddr                    *sdk.Address
	BidAsset                    *sdk.Asset
	MinimumOutbid               *decimal.Decimal
	IncentiveAsset              *sdk.Asset
	IncentiveDistributionAmount *int64
	IncentiveBidPercent         *decimal.Decimal
	MintCost                    *int64
	SubmissionCost              *int64
	SubmissionLimit             *uint64
	SubmissionVotePeriod        *uint64
	CurationThreshold           *decimal.Decimal
	AuctionPeriod               *uint64
}

// PageArgs drives the paginated queries.
type PageArgs struct {
	StartAfter *uint64
	Limit      *uint32
}
