package contract

import "github.com/shopspring/decimal"

// -----------------------------------------------------------------------------
// Time
// -----------------------------------------------------------------------------

// SecondsPerDay is the unit of every configured period and of the no-bid extension.
const SecondsPerDay int64 = 86400

// MaxPeriodDays caps the configurable vote and auction periods.
const MaxPeriodDays uint64 = 36_500

// -----------------------------------------------------------------------------
// Default/Fallback Values
// -----------------------------------------------------------------------------

const (
	DefaultSubmissionVotePeriod        uint64 = 7
	DefaultAuctionPeriod               uint64 = 1
	DefaultIncentiveDistributionAmount int64  = 100_000_000
	DefaultSubmissionCost              int64  = 10_000_000
	DefaultSubmissionLimit             uint64 = 333
	DefaultPageLimit                   uint32 = 32
	MaxPageLimit                       uint32 = 100
	MaxTokenURILength                         = 512
)

var (
	DefaultMinimumOutbid       = decimal.New(1, -2)
	DefaultIncentiveBidPercent = decimal.New(10, -2)
	DefaultCurationThreshold   = decimal.New(11, -2)
)

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kConfig holds the single Config record.
	kConfig byte = 0x01
	// kSubmission stores Submission records keyed by id.
	kSubmission byte = 0x02
	// kSubmissionIndex lists the live submission ids in ascending order.
	kSubmissionIndex byte = 0x03
	// kPendingAuctions is the FIFO of promoted auctions waiting for the live slot.
	kPendingAuctions byte = 0x04
	// kLiveAuction is the single live primary auction slot.
	kLiveAuction byte = 0x05
	// kAssetAuction is the single live asset auction slot.
	kAssetAuction byte = 0x06
	// kOwnershipTransfer remembers who may claim ownership next.
	kOwnershipTransfer byte = 0x07
	// kPendingMint bridges settlement and the mint reply.
	kPendingMint byte = 0x08
	// kMintedToken stores MintedToken records keyed by token id.
	kMintedToken byte = 0x09
)
