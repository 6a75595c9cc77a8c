// Brane auction: a continuous NFT auction for the vsc network.
// The wasm exports live in exports_wasm.go, native runs go through cmd/braned.

package main

func main() {}
