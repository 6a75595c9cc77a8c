package contract

import (
	"strconv"
	"strings"

	"brane_auction/sdk"

	"github.com/shopspring/decimal"
)

// splitPayload trims and splits a pipe-delimited payload; get returns "" past the end.
func splitPayload(payload *string, what string) (func(int) string, error) {
	if payload == nil {
		return nil, newError(KindInvalidPayload, "%s payload missing", what)
	}
	raw := strings.TrimSpace(*payload)
	raw = strings.Trim(raw, "\"")
	parts := strings.Split(raw, "|")
	return func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}, nil
}

func parseUintField(v, name string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, newError(KindInvalidPayload, "invalid %s %q", name, v)
	}
	return n, nil
}

func parseOptionalUint(v, name string) (*uint64, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	n, err := parseUintField(v, name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseAmountField(v, name string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return 0, newError(KindInvalidPayload, "invalid %s %q", name, v)
	}
	return n, nil
}

func parseDecimalField(v, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, newError(KindInvalidPayload, "invalid %s %q", name, v)
	}
	return d, nil
}

// DecodeInstantiateArgs expects
// `bidAsset|incentiveAsset|collection|freeVoteAddr|mintCost|proceedsRecipient|tokenUri`.
func DecodeInstantiateArgs(payload *string) (*InstantiateArgs, error) {
	get, err := splitPayload(payload, "instantiate")
	if err != nil {
		return nil, err
	}
	args := &InstantiateArgs{
		BidAsset:       sdk.Asset(get(0)),
		IncentiveAsset: sdk.Asset(get(1)),
		Collection:     sdk.Address(get(2)),
		FreeVoteAddr:   sdk.Address(get(3)),
		FirstSubmission: SubmissionInfo{
			ProceedsRecipient: sdk.Address(get(5)),
			TokenURI:          get(6),
		},
	}
	if v := get(4); v != "" {
		if args.MintCost, err = parseAmountField(v, "mint cost"); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// DecodeSubmitArgs expects `proceedsRecipient|tokenUri`; an empty recipient means the sender.
func DecodeSubmitArgs(payload *string) (*SubmitArgs, error) {
	get, err := splitPayload(payload, "submit")
	if err != nil {
		return nil, err
	}
	return &SubmitArgs{
		ProceedsRecipient: sdk.Address(get(0)),
		TokenURI:          get(1),
	}, nil
}

// DecodeCurateArgs expects a comma separated id list like `0,3,4`.
func DecodeCurateArgs(payload *string) (*CurateArgs, error) {
	get, err := splitPayload(payload, "curate")
	if err != nil {
		return nil, err
	}
	args := &CurateArgs{}
	for _, field := range strings.Split(get(0), ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		id, err := parseUintField(field, "submission id")
		if err != nil {
			return nil, err
		}
		args.SubmissionIDs = append(args.SubmissionIDs, id)
	}
	if len(args.SubmissionIDs) == 0 {
		return nil, newError(KindInvalidPayload, "no submission ids")
	}
	return args, nil
}

// DecodeUpdateConfigArgs reads `key=value` pairs, e.g. `minimum_outbid=0.02|auction_period=2`.
func DecodeUpdateConfigArgs(payload *string) (*UpdateConfigArgs, error) {
	if payload == nil {
		return nil, newError(KindInvalidPayload, "update payload missing")
	}
	args := &UpdateConfigArgs{}
	for _, pair := range strings.Split(strings.Trim(strings.TrimSpace(*payload), "\""), "|") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, newError(KindInvalidPayload, "expected key=value, got %q", pair)
		}
		if err := setUpdateField(args, strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func setUpdateField(args *UpdateConfigArgs, key, v string) error {
	addr := func(dst **sdk.Address) {
		a := sdk.Address(v)
		*dst = &a
	}
	asset := func(dst **sdk.Asset) {
		a := sdk.Asset(v)
		*dst = &a
	}
	dec := func(dst **decimal.Decimal) error {
		d, err := parseDecimalField(v, key)
		if err != nil {
			return err
		}
		*dst = &d
		return nil
	}
	amount := func(dst **int64) error {
		n, err := parseAmountField(v, key)
		if err != nil {
			return err
		}
		*dst = &n
		return nil
	}
	count := func(dst **uint64) error {
		n, err := parseUintField(v, key)
		if err != nil {
			return err
		}
		*dst = &n
		return nil
	}
	switch key {
	case "owner":
		addr(&args.Owner)
	case "free_vote_addr":
		addr(&args.FreeVoteAddr)
	case "burn_addr":
		addr(&args.BurnAddr)
	case "bid_asset":
		asset(&args.BidAsset)
	case "incentive_asset":
		asset(&args.IncentiveAsset)
	case "minimum_outbid":
		return dec(&args.MinimumOutbid)
	case "incentive_bid_percent":
		return dec(&args.IncentiveBidPercent)
	case "curation_threshold":
		return dec(&args.CurationThreshold)
	case "incentive_distribution_amount":
		return amount(&args.IncentiveDistributionAmount)
	case "mint_cost":
		return amount(&args.MintCost)
	case "submission_cost":
		return amount(&args.SubmissionCost)
	case "submission_limit":
		return count(&args.SubmissionLimit)
	case "submission_vote_period":
		return count(&args.SubmissionVotePeriod)
	case "auction_period":
		return count(&args.AuctionPeriod)
	default:
		return newError(KindInvalidPayload, "unknown config field %q", key)
	}
	return nil
}

// DecodeSubmissionQuery expects `id|startAfter|limit`, every field optional.
func DecodeSubmissionQuery(payload *string) (*uint64, PageArgs, error) {
	if payload == nil {
		return nil, PageArgs{}, nil
	}
	get, _ := splitPayload(payload, "query")
	id, err := parseOptionalUint(get(0), "submission id")
	if err != nil {
		return nil, PageArgs{}, err
	}
	page, err := pageFromFields(get(1), get(2))
	return id, page, err
}

// DecodePageArgs expects `startAfter|limit`, both optional.
func DecodePageArgs(payload *string) (PageArgs, error) {
	if payload == nil {
		return PageArgs{}, nil
	}
	get, _ := splitPayload(payload, "query")
	return pageFromFields(get(0), get(1))
}

func pageFromFields(startAfter, limit string) (PageArgs, error) {
	var page PageArgs
	var err error
	if page.StartAfter, err = parseOptionalUint(startAfter, "start after"); err != nil {
		return page, err
	}
	l, err := parseOptionalUint(limit, "limit")
	if err != nil {
		return page, err
	}
	if l != nil {
		v := uint32(MaxPageLimit)
		if *l < uint64(MaxPageLimit) {
			v = uint32(*l)
		}
		page.Limit = &v
	}
	return page, nil
}
