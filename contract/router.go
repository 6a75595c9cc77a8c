package contract

import "strings"

// Action names shared by the wasm exports and the native chain.
const (
	ActionInstantiate     = "instantiate"
	ActionSubmitNft       = "submit_nft"
	ActionCurateNft       = "curate_nft"
	ActionBidForNft       = "bid_for_nft"
	ActionBidForAssets    = "bid_for_assets"
	ActionConcludeAuction = "conclude_auction"
	ActionUpdateConfig    = "update_config"

	QueryGetConfig           = "get_config"
	QueryGetLiveAuction      = "get_live_auction"
	QueryGetLiveAssetAuction = "get_live_asset_auction"
	QueryListSubmissions     = "list_submissions"
	QueryListPending         = "list_pending_auctions"
	QueryGetMintedToken      = "get_minted_token"
)

// Execute decodes the payload and runs the matching operation. The caller dispatches
// ctx.Response afterwards.
func Execute(ctx *Context, action string, payload *string) error {
	switch action {
	case ActionInstantiate:
		args, err := DecodeInstantiateArgs(payload)
		if err != nil {
			return err
		}
		return Instantiate(ctx, args)
	case ActionSubmitNft:
		args, err := DecodeSubmitArgs(payload)
		if err != nil {
			return err
		}
		_, err = SubmitNft(ctx, args)
		return err
	case ActionCurateNft:
		args, err := DecodeCurateArgs(payload)
		if err != nil {
			return err
		}
		return CurateNft(ctx, args)
	case ActionBidForNft:
		return BidForNft(ctx)
	case ActionBidForAssets:
		return BidForAssets(ctx)
	case ActionConcludeAuction:
		return ConcludeAuction(ctx)
	case ActionUpdateConfig:
		args, err := DecodeUpdateConfigArgs(payload)
		if err != nil {
			return err
		}
		return UpdateConfig(ctx, args)
	default:
		return newError(KindInvalidPayload, "unknown action %q", action)
	}
}

// Query runs a read-only query and returns its JSON form.
func Query(ctx *Context, name string, payload *string) ([]byte, error) {
	switch name {
	case QueryGetConfig:
		cfg, err := QueryConfig(ctx)
		if err != nil {
			return nil, err
		}
		return ConfigJSON(cfg)
	case QueryGetLiveAuction:
		a, err := QueryLiveAuction(ctx)
		if err != nil {
			return nil, err
		}
		return AuctionJSON(a)
	case QueryGetLiveAssetAuction:
		a, err := QueryLiveAssetAuction(ctx)
		if err != nil {
			return nil, err
		}
		return AssetAuctionJSON(a)
	case QueryListSubmissions:
		id, page, err := DecodeSubmissionQuery(payload)
		if err != nil {
			return nil, err
		}
		list, err := QuerySubmissions(ctx, id, page)
		if err != nil {
			return nil, err
		}
		return SubmissionsJSON(list)
	case QueryListPending:
		page, err := DecodePageArgs(payload)
		if err != nil {
			return nil, err
		}
		list, err := QueryPendingAuctions(ctx, page)
		if err != nil {
			return nil, err
		}
		return AuctionsJSON(list)
	case QueryGetMintedToken:
		if payload == nil {
			return nil, newError(KindInvalidPayload, "token id missing")
		}
		id, err := parseUintField(strings.Trim(*payload, "\" "), "token id")
		if err != nil {
			return nil, err
		}
		t, err := QueryMintedToken(ctx, id)
		if err != nil {
			return nil, err
		}
		return MintedTokenJSON(t)
	default:
		return nil, newError(KindInvalidPayload, "unknown query %q", name)
	}
}
