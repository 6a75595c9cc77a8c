package contract

import (
	"strconv"

	"brane_auction/sdk"

	"github.com/CosmWasm/tinyjson/jwriter"
)

// QueryConfig returns the current configuration.
func QueryConfig(ctx *Context) (*Config, error) {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return nil, err
	}
	out := *cfg
	return &out, nil
}

// QueryLiveAuction returns the live primary auction or nil.
func QueryLiveAuction(ctx *Context) (*Auction, error) {
	if _, err := ctx.loadConfig(); err != nil {
		return nil, err
	}
	return ctx.loadLiveAuction()
}

// QueryLiveAssetAuction returns the live asset auction or nil.
func QueryLiveAssetAuction(ctx *Context) (*AssetAuction, error) {
	if _, err := ctx.loadConfig(); err != nil {
		return nil, err
	}
	return ctx.loadAssetAuction()
}

func pageLimit(p PageArgs) int {
	limit := DefaultPageLimit
	if p.Limit != nil && *p.Limit > 0 {
		limit = *p.Limit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return int(limit)
}

// QuerySubmissions lists open submissions. With id set it returns just that one, otherwise ids
// strictly after StartAfter in ascending order.
func QuerySubmissions(ctx *Context, id *uint64, page PageArgs) ([]SubmissionEntry, error) {
	if _, err := ctx.loadConfig(); err != nil {
		return nil, err
	}
	if id != nil {
		s, err := ctx.loadSubmission(*id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, newError(KindNotFound, "submission %d not found", *id)
		}
		return []SubmissionEntry{{ID: *id, Submission: *s}}, nil
	}
	ids, err := ctx.loadSubmissionIndex()
	if err != nil {
		return nil, err
	}
	limit := pageLimit(page)
	out := make([]SubmissionEntry, 0, limit)
	for _, sid := range ids {
		if page.StartAfter != nil && sid <= *page.StartAfter {
			continue
		}
		if len(out) >= limit {
			break
		}
		s, err := ctx.loadSubmission(sid)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		out = append(out, SubmissionEntry{ID: sid, Submission: *s})
	}
	return out, nil
}

// QueryPendingAuctions pages through the queue by position; StartAfter is the last position seen.
func QueryPendingAuctions(ctx *Context, page PageArgs) ([]Auction, error) {
	if _, err := ctx.loadConfig(); err != nil {
		return nil, err
	}
	q, err := ctx.loadQueueBounds()
	if err != nil {
		return nil, err
	}
	var start uint64
	if page.StartAfter != nil {
		start = *page.StartAfter + 1
	}
	limit := pageLimit(page)
	out := make([]Auction, 0, limit)
	for pos := start; pos < q.Len() && len(out) < limit; pos++ {
		a, err := ctx.pendingAt(q, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

// QueryMintedToken reads the record HandleMintReply wrote for a token id.
func QueryMintedToken(ctx *Context, tokenID uint64) (*MintedToken, error) {
	if _, err := ctx.loadConfig(); err != nil {
		return nil, err
	}
	t, err := ctx.loadMintedToken(tokenID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, newError(KindNotFound, "token %d not recorded", tokenID)
	}
	return t, nil
}

// -----------------------------------------------------------------------------
// JSON
// -----------------------------------------------------------------------------

// jsonObject writes comma separated members, it keeps the MarshalJSON bodies short.
type jsonObject struct {
	w     *jwriter.Writer
	first bool
}

func beginObject(w *jwriter.Writer) *jsonObject {
	w.RawByte('{')
	return &jsonObject{w: w, first: true}
}

func (o *jsonObject) key(k string) *jwriter.Writer {
	if !o.first {
		o.w.RawByte(',')
	}
	o.first = false
	o.w.String(k)
	o.w.RawByte(':')
	return o.w
}

func (o *jsonObject) end() { o.w.RawByte('}') }

// amounts are strings so js clients do not lose precision.
func writeAmount(w *jwriter.Writer, v int64) {
	w.String(strconv.FormatInt(v, 10))
}

func writeBidJSON(w *jwriter.Writer, b Bid) {
	o := beginObject(w)
	o.key("bidder").String(b.Bidder.String())
	writeAmount(o.key("amount"), b.Amount)
	o.end()
}

func writeAddressList(w *jwriter.Writer, list []sdk.Address) {
	w.RawByte('[')
	for i, a := range list {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(a.String())
	}
	w.RawByte(']')
}

func writeSubmissionJSON(w *jwriter.Writer, s *Submission) {
	o := beginObject(w)
	o.key("submitter").String(s.Info.Submitter.String())
	o.key("proceeds_recipient").String(s.Info.ProceedsRecipient.String())
	o.key("token_uri").String(s.Info.TokenURI)
	writeAddressList(o.key("curators"), s.Curators)
	o.key("votes").Uint64(s.Votes)
	o.key("end_time").Int64(s.EndTime)
	o.end()
}

func writeAuctionJSON(w *jwriter.Writer, a *Auction) {
	o := beginObject(w)
	writeSubmissionJSON(o.key("submission"), &a.Submission)
	bw := o.key("bids")
	bw.RawByte('[')
	for i, b := range a.Bids {
		if i > 0 {
			bw.RawByte(',')
		}
		writeBidJSON(bw, b)
	}
	bw.RawByte(']')
	writeBidJSON(o.key("highest_bid"), a.HighestBid)
	o.key("end_time").Int64(a.EndTime)
	o.end()
}

// ConfigJSON renders the config for the query surface.
func ConfigJSON(cfg *Config) ([]byte, error) {
	w := &jwriter.Writer{}
	o := beginObject(w)
	o.key("owner").String(cfg.Owner.String())
	o.key("free_vote_addr").String(cfg.FreeVoteAddr.String())
	o.key("collection").String(cfg.Collection.String())
	o.key("burn_addr").String(cfg.BurnAddr.String())
	o.key("bid_asset").String(cfg.BidAsset.String())
	o.key("incentive_asset").String(cfg.IncentiveAsset.String())
	o.key("minimum_outbid").String(cfg.MinimumOutbid.String())
	writeAmount(o.key("incentive_distribution_amount"), cfg.IncentiveDistributionAmount)
	o.key("incentive_bid_percent").String(cfg.IncentiveBidPercent.String())
	writeAmount(o.key("mint_cost"), cfg.MintCost)
	writeAmount(o.key("submission_cost"), cfg.SubmissionCost)
	o.key("submission_limit").Uint64(cfg.SubmissionLimit)
	o.key("submission_vote_period").Uint64(cfg.SubmissionVotePeriod)
	o.key("curation_threshold").String(cfg.CurationThreshold.String())
	o.key("auction_period").Uint64(cfg.AuctionPeriod)
	o.key("current_submission_id").Uint64(cfg.CurrentSubmissionID)
	o.key("submission_total").Uint64(cfg.SubmissionTotal)
	o.key("current_token_id").Uint64(cfg.CurrentTokenID)
	o.end()
	return w.BuildBytes()
}

// AuctionJSON renders an auction, nil becomes null.
func AuctionJSON(a *Auction) ([]byte, error) {
	w := &jwriter.Writer{}
	if a == nil {
		w.RawString("null")
	} else {
		writeAuctionJSON(w, a)
	}
	return w.BuildBytes()
}

func AssetAuctionJSON(a *AssetAuction) ([]byte, error) {
	w := &jwriter.Writer{}
	if a == nil {
		w.RawString("null")
		return w.BuildBytes()
	}
	o := beginObject(w)
	ao := beginObject(o.key("asset"))
	ao.key("denom").String(a.Asset.Asset.String())
	writeAmount(ao.key("amount"), a.Asset.Amount)
	ao.end()
	writeBidJSON(o.key("highest_bid"), a.HighestBid)
	o.end()
	return w.BuildBytes()
}

func SubmissionsJSON(list []SubmissionEntry) ([]byte, error) {
	w := &jwriter.Writer{}
	w.RawByte('[')
	for i := range list {
		if i > 0 {
			w.RawByte(',')
		}
		o := beginObject(w)
		o.key("id").Uint64(list[i].ID)
		writeSubmissionJSON(o.key("submission"), &list[i].Submission)
		o.end()
	}
	w.RawByte(']')
	return w.BuildBytes()
}

func AuctionsJSON(list []Auction) ([]byte, error) {
	w := &jwriter.Writer{}
	w.RawByte('[')
	for i := range list {
		if i > 0 {
			w.RawByte(',')
		}
		writeAuctionJSON(w, &list[i])
	}
	w.RawByte(']')
	return w.BuildBytes()
}

func MintedTokenJSON(t *MintedToken) ([]byte, error) {
	w := &jwriter.Writer{}
	o := beginObject(w)
	o.key("token_id").Uint64(t.TokenID)
	o.key("owner").String(t.Owner.String())
	o.key("token_uri").String(t.TokenURI)
	o.key("minted_at").Int64(t.MintedAt)
	o.end()
	return w.BuildBytes()
}
