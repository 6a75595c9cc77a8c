//go:build wasm

package sdk

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

//go:wasmimport sdk console.log
func log(s *string) *string

//go:wasmimport sdk db.set_object
func stateSetObject(key *string, value *string) *string

//go:wasmimport sdk db.get_object
func stateGetObject(key *string) *string

//go:wasmimport sdk db.rm_object
func stateDeleteObject(key *string) *string

//go:wasmimport sdk system.get_env
func getEnv(arg *string) *string

//go:wasmimport sdk system.get_env_key
func getEnvKey(arg *string) *string

//go:wasmimport sdk hive.get_balance
func getBalance(arg1 *string, arg2 *string) *string

//go:wasmimport sdk hive.draw
func hiveDraw(arg1 *string, arg2 *string) *string

//go:wasmimport sdk hive.transfer
func hiveTransfer(arg1 *string, arg2 *string, arg3 *string) *string

//go:wasmimport sdk contracts.read
func contractRead(contractId *string, key *string) *string

//go:wasmimport sdk contracts.call
func contractCall(contractId *string, method *string, payload *string, options *string) *string

//go:wasmimport env abort
func abort(msg, file *string, line, column *int32)

// Log writes a message to the wasm console so we can trace contract steps.
// Example payload: sdk.Log("hello brane")
func Log(s string) {
	log(&s)
}

// Abort stops execution immediately and surfaces the message to the chain, the host reverts
// every write and transfer of the transaction.
// Example payload: sdk.Abort("auction is still live")
func Abort(msg string) {
	ln := int32(0)
	abort(&msg, nil, &ln, &ln)
	panic(msg)
}

// StateSetObject stores a key/value string pair into contract kv storage.
func StateSetObject(key string, value string) {
	stateSetObject(&key, &value)
}

// StateGetObject fetches a key and returns nil when missing.
func StateGetObject(key string) *string {
	return stateGetObject(&key)
}

// StateDeleteObject removes the key entirely.
func StateDeleteObject(key string) {
	stateDeleteObject(&key)
}

// GetEnv pulls the JSON env blob from the chain and maps it to Env struct.
func GetEnv() Env {
	envStr := *getEnv(nil)
	env := Env{}
	json.Unmarshal([]byte(envStr), &env)
	envMap := map[string]interface{}{}
	json.Unmarshal([]byte(envStr), &envMap)

	env.Sender = Sender{
		Address:              Address(stringField(envMap, "msg.sender")),
		RequiredAuths:        addressList(envMap["msg.required_auths"]),
		RequiredPostingAuths: addressList(envMap["msg.required_posting_auths"]),
	}
	if raw, ok := envMap["msg.intents"]; ok {
		if b, err := json.Marshal(raw); err == nil {
			json.Unmarshal(b, &env.Intents)
		}
	}
	return env
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func addressList(raw interface{}) []Address {
	out := make([]Address, 0)
	list, ok := raw.([]interface{})
	if !ok {
		return out
	}
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, Address(s))
		}
	}
	return out
}

// GetEnvKey pulls a single env key (like tx.id) to avoid parsing the whole struct.
func GetEnvKey(key string) *string {
	return getEnvKey(&key)
}

// GetBalance queries the ledger balance for the given account+asset combo.
func GetBalance(address Address, asset Asset) int64 {
	addr := address.String()
	as := asset.String()
	balStr := *getBalance(&addr, &as)
	bal, err := strconv.ParseInt(balStr, 10, 64)
	if err != nil {
		Abort("invalid balance from host")
	}
	return bal
}

// HiveDraw pulls tokens from the caller to the contract within the transfer.allow limit.
func HiveDraw(amount int64, asset Asset) {
	amt := strconv.FormatInt(amount, 10)
	as := asset.String()
	hiveDraw(&amt, &as)
}

// HiveTransfer sends tokens from the contract towards a user address.
func HiveTransfer(to Address, amount int64, asset Asset) {
	toaddr := to.String()
	amt := strconv.FormatInt(amount, 10)
	as := asset.String()
	hiveTransfer(&toaddr, &amt, &as)
}

// ContractStateGet reads another contract's state key (view-only).
func ContractStateGet(contractId string, key string) *string {
	return contractRead(&contractId, &key)
}

// ContractCall performs a synchronous call into another contract with optional intents.
func ContractCall(contractId string, method string, payload string, options *ContractCallOptions) *string {
	optStr := ""
	if options != nil {
		optByte, err := json.Marshal(options)
		if err != nil {
			Abort("could not serialize options")
		}
		optStr = string(optByte)
	}
	return contractCall(&contractId, &method, &payload, &optStr)
}

// WasmHost implements Host on top of the wasm imports above.
type WasmHost struct{}

func (WasmHost) Set(key, value string)  { StateSetObject(key, value) }
func (WasmHost) Get(key string) *string { return StateGetObject(key) }
func (WasmHost) Delete(key string)      { StateDeleteObject(key) }
func (WasmHost) Log(msg string)         { Log(msg) }

func (WasmHost) GetBalance(address Address, asset Asset) int64 {
	return GetBalance(address, asset)
}

func (WasmHost) Draw(amount int64, asset Asset) error {
	HiveDraw(amount, asset)
	return nil
}

func (WasmHost) TokensOf(collection Address, owner Address) (uint64, error) {
	return readCounter(collection, "owned|"+owner.String())
}

func (WasmHost) TotalSupply(collection Address) (uint64, error) {
	return readCounter(collection, "supply")
}

func readCounter(collection Address, key string) (uint64, error) {
	id := strings.TrimPrefix(collection.String(), "contract:")
	ptr := ContractStateGet(id, key)
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, errors.New("invalid counter in collection state")
	}
	return n, nil
}

// MintVia executes a MintMsg against the collection contract and returns the minted token id.
func MintVia(msg MintMsg) (*MintReply, error) {
	var opts *ContractCallOptions
	if msg.Fee.Amount > 0 {
		opts = &ContractCallOptions{Intents: []Intent{TransferAllow(msg.Fee)}}
	}
	id := strings.TrimPrefix(msg.Collection.String(), "contract:")
	ret := ContractCall(id, "mint", msg.Owner.String()+"|"+msg.TokenURI, opts)
	if ret == nil {
		return nil, errors.New("mint returned no token id")
	}
	tokenID, err := strconv.ParseUint(strings.Trim(*ret, "\" "), 10, 64)
	if err != nil {
		return nil, errors.New("mint returned invalid token id")
	}
	return &MintReply{Collection: msg.Collection, TokenID: tokenID}, nil
}
