package chain

import (
	"os"
	"sort"
	"strings"

	"brane_auction/contract"
	"brane_auction/sdk"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Genesis seeds a fresh chain directory.
//
//	chain_time: 1700000000
//	contract_id: brane
//	collection: contract:brane_nft
//	balances:
//	  - {address: hive:alice, asset: hbd, amount: 1000000000}
//	holders:
//	  hive:alice: 1
//	instantiate:
//	  sender: hive:owner
//	  payload: "hbd|hive|contract:brane_nft||0|hive:artist|ipfs://genesis"
type Genesis struct {
	ChainTime   int64             `yaml:"chain_time"`
	ContractID  string            `yaml:"contract_id"`
	Collection  string            `yaml:"collection"`
	Balances    []GenesisBalance  `yaml:"balances"`
	Holders     map[string]uint64 `yaml:"holders"`
	Instantiate GenesisCall       `yaml:"instantiate"`
}

type GenesisBalance struct {
	Address string `yaml:"address"`
	Asset   string `yaml:"asset"`
	Amount  int64  `yaml:"amount"`
}

type GenesisCall struct {
	Sender  string          `yaml:"sender"`
	Payload string          `yaml:"payload"`
	Funds   []GenesisAmount `yaml:"funds"`
}

type GenesisAmount struct {
	Asset  string `yaml:"asset"`
	Amount int64  `yaml:"amount"`
}

// LoadGenesis reads a YAML genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return ParseGenesis(data)
}

func ParseGenesis(data []byte) (*Genesis, error) {
	var g Genesis
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Genesis) validate() error {
	if g.ContractID == "" || strings.ContainsAny(g.ContractID, ":| ") {
		return errors.Errorf("invalid contract_id %q", g.ContractID)
	}
	if !sdk.Address(g.Collection).IsValid() {
		return errors.Errorf("invalid collection %q", g.Collection)
	}
	if g.ChainTime <= 0 {
		return errors.New("chain_time must be positive")
	}
	for _, b := range g.Balances {
		if !sdk.Address(b.Address).IsValid() || b.Asset == "" || b.Amount < 0 {
			return errors.Errorf("invalid balance entry %+v", b)
		}
	}
	for addr := range g.Holders {
		if !sdk.Address(addr).IsValid() {
			return errors.Errorf("invalid holder %q", addr)
		}
	}
	if !sdk.Address(g.Instantiate.Sender).IsValid() {
		return errors.Errorf("invalid instantiate sender %q", g.Instantiate.Sender)
	}
	return nil
}

// holderList returns the holders sorted by address so token ids are reproducible.
func (g *Genesis) holderList() []sdk.Address {
	out := make([]sdk.Address, 0, len(g.Holders))
	for addr := range g.Holders {
		out = append(out, sdk.Address(addr))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c GenesisCall) call(at int64) Call {
	call := Call{
		Sender:  sdk.Address(c.Sender),
		Action:  contract.ActionInstantiate,
		Payload: c.Payload,
		Time:    at,
	}
	for _, f := range c.Funds {
		call.Funds = append(call.Funds, sdk.Coin{Asset: sdk.Asset(f.Asset), Amount: f.Amount})
	}
	return call
}
