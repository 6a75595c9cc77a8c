//go:build wasm

package main

import (
	"strings"

	"brane_auction/contract"
	"brane_auction/sdk"
)

//go:wasmexport instantiate
func Instantiate(payload *string) *string { return run(contract.ActionInstantiate, payload) }

//go:wasmexport submit_nft
func SubmitNft(payload *string) *string { return run(contract.ActionSubmitNft, payload) }

//go:wasmexport curate_nft
func CurateNft(payload *string) *string { return run(contract.ActionCurateNft, payload) }

//go:wasmexport bid_for_nft
func BidForNft(payload *string) *string { return run(contract.ActionBidForNft, payload) }

//go:wasmexport bid_for_assets
func BidForAssets(payload *string) *string { return run(contract.ActionBidForAssets, payload) }

//go:wasmexport conclude_auction
func ConcludeAuction(payload *string) *string { return run(contract.ActionConcludeAuction, payload) }

//go:wasmexport update_config
func UpdateConfig(payload *string) *string { return run(contract.ActionUpdateConfig, payload) }

//go:wasmexport get_config
func GetConfig(payload *string) *string { return query(contract.QueryGetConfig, payload) }

//go:wasmexport get_live_auction
func GetLiveAuction(payload *string) *string { return query(contract.QueryGetLiveAuction, payload) }

//go:wasmexport get_live_asset_auction
func GetLiveAssetAuction(payload *string) *string {
	return query(contract.QueryGetLiveAssetAuction, payload)
}

//go:wasmexport list_submissions
func ListSubmissions(payload *string) *string { return query(contract.QueryListSubmissions, payload) }

//go:wasmexport list_pending_auctions
func ListPendingAuctions(payload *string) *string { return query(contract.QueryListPending, payload) }

//go:wasmexport get_minted_token
func GetMintedToken(payload *string) *string { return query(contract.QueryGetMintedToken, payload) }

func newContext() *contract.Context {
	ctx, err := contract.NewContext(sdk.WasmHost{}, sdk.GetEnv())
	if err != nil {
		sdk.Abort(err.Error())
	}
	return ctx
}

// run executes an action and then its messages. Any failure aborts, which makes the host revert
// state writes, draws and transfers of the whole transaction.
func run(action string, payload *string) *string {
	ctx := newContext()
	if err := contract.Execute(ctx, action, payload); err != nil {
		sdk.Abort(err.Error())
	}
	attrs := ctx.Response.Attributes
	attrs = append(attrs, dispatch(ctx)...)
	return result(attrs)
}

func dispatch(ctx *contract.Context) []contract.Attribute {
	var attrs []contract.Attribute
	for _, msg := range ctx.Response.Messages {
		switch m := msg.(type) {
		case sdk.TransferMsg:
			sdk.HiveTransfer(m.To, m.Amount, m.Asset)
		case sdk.MintMsg:
			reply, err := sdk.MintVia(m)
			if err != nil {
				sdk.Abort(err.Error())
			}
			rctx, err := contract.NewContext(ctx.Host, ctx.Env)
			if err != nil {
				sdk.Abort(err.Error())
			}
			if err := contract.HandleMintReply(rctx, reply); err != nil {
				sdk.Abort(err.Error())
			}
			attrs = append(attrs, rctx.Response.Attributes...)
			attrs = append(attrs, dispatch(rctx)...)
		default:
			sdk.Abort("unsupported message " + msg.MsgType())
		}
	}
	return attrs
}

// result renders attributes as `key=value|key=value`.
func result(attrs []contract.Attribute) *string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, a.Key+"="+a.Value)
	}
	s := strings.Join(parts, "|")
	return &s
}

func query(name string, payload *string) *string {
	out, err := contract.Query(newContext(), name, payload)
	if err != nil {
		sdk.Abort(err.Error())
	}
	s := string(out)
	return &s
}
