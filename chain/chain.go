// Package chain is a single node host for the auction contract. Every call runs inside one
// goleveldb transaction: contract state, ledger moves, collection mints and the mint reply either
// commit together or not at all.
package chain

import (
	"strconv"
	"sync"
	"time"

	"brane_auction/contract"
	"brane_auction/sdk"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"go.uber.org/zap"
)

var (
	ErrNotInitialized     = errors.New("chain is not initialized")
	ErrAlreadyInitialized = errors.New("chain is already initialized")
	ErrTimeReversed       = errors.New("block time goes backwards")
)

type Chain struct {
	mu         sync.Mutex
	db         *leveldb.DB
	log        *zap.Logger
	registry   *prometheus.Registry
	metrics    *metrics
	contractID string
	collection sdk.Address
}

type Option func(*Chain)

func WithLogger(l *zap.Logger) Option {
	return func(c *Chain) { c.log = l }
}

// WithRegistry exports the chain metrics through reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Chain) { c.registry = reg }
}

// Call is one signed contract invocation. Time zero means "at the current chain time".
type Call struct {
	Sender  sdk.Address
	Action  string
	Payload string
	Funds   []sdk.Coin
	Time    int64
}

// Receipt describes the outcome of a call. Logs and messages are only set for committed calls.
type Receipt struct {
	TxID       string
	Success    bool
	Kind       string
	Error      string
	Time       int64
	Attributes []contract.Attribute
	Messages   []sdk.Msg
	Logs       []string
	Data       []byte
}

// Attribute returns the value recorded for key.
func (r *Receipt) Attribute(key string) string {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Open opens or creates a chain directory.
func Open(dir string, opts ...Option) (*Chain, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dir)
	}
	return newChain(db, opts...)
}

// OpenMemory is a throwaway chain for tests and dry runs.
func OpenMemory(opts ...Option) (*Chain, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "open memory storage")
	}
	return newChain(db, opts...)
}

func newChain(db *leveldb.DB, opts ...Option) (*Chain, error) {
	c := &Chain{db: db, log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}
	c.metrics = newMetrics(c.registry)
	if err := c.loadMeta(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Chain) loadMeta() error {
	id, err := getRaw(c.db, []byte(metaContract))
	if err != nil {
		return err
	}
	coll, err := getRaw(c.db, []byte(metaCollect))
	if err != nil {
		return err
	}
	c.contractID = string(id)
	c.collection = sdk.Address(coll)
	return nil
}

func (c *Chain) Close() error {
	return c.db.Close()
}

// Registry exposes the chain metrics for scraping.
func (c *Chain) Registry() *prometheus.Registry {
	return c.registry
}

// ContractAddress is the custody account of the contract.
func (c *Chain) ContractAddress() sdk.Address {
	return sdk.Address("contract:" + c.contractID)
}

func (c *Chain) Collection() sdk.Address {
	return c.collection
}

// Time is the last committed block time.
func (c *Chain) Time() (int64, error) {
	return getInt(c.db, []byte(metaTime))
}

// Init writes the genesis state and instantiates the contract.
func (c *Chain) Init(g *Genesis) (*Receipt, error) {
	if err := c.writeGenesis(g); err != nil {
		return nil, err
	}
	c.log.Info("genesis written",
		zap.String("contract", c.ContractAddress().String()),
		zap.String("collection", c.collection.String()),
		zap.Int("balances", len(g.Balances)),
		zap.Int("holders", len(g.Holders)))
	return c.Execute(g.Instantiate.call(g.ChainTime))
}

func (c *Chain) writeGenesis(g *Genesis) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.contractID != "" {
		return ErrAlreadyInitialized
	}
	tr, err := c.db.OpenTransaction()
	if err != nil {
		return errors.Wrap(err, "open transaction")
	}
	coll := sdk.Address(g.Collection)
	err = func() error {
		if err := tr.Put([]byte(metaContract), []byte(g.ContractID), nil); err != nil {
			return err
		}
		if err := tr.Put([]byte(metaCollect), []byte(coll), nil); err != nil {
			return err
		}
		if err := putInt(tr, []byte(metaTime), g.ChainTime); err != nil {
			return err
		}
		for _, b := range g.Balances {
			if err := credit(tr, sdk.Address(b.Address), sdk.Asset(b.Asset), b.Amount); err != nil {
				return err
			}
		}
		for _, holder := range g.holderList() {
			for i := uint64(0); i < g.Holders[holder.String()]; i++ {
				if _, err := mintToken(tr, coll, holder, "genesis"); err != nil {
					return err
				}
			}
		}
		return nil
	}()
	if err != nil {
		tr.Discard()
		return errors.Wrap(err, "write genesis")
	}
	if err := tr.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	c.contractID = g.ContractID
	c.collection = coll
	return nil
}

// Execute runs a call and commits its effects, or discards all of them when the contract, a
// transfer or the mint fails. The returned receipt is never nil.
func (c *Chain) Execute(call Call) (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	rcpt := &Receipt{TxID: uuid.NewString()}
	err := c.execute(call, rcpt)
	c.metrics.observe(call.Action, err, time.Since(start))

	fields := []zap.Field{
		zap.String("tx", rcpt.TxID),
		zap.String("action", call.Action),
		zap.String("sender", call.Sender.String()),
		zap.Int64("time", rcpt.Time),
	}
	if err != nil {
		rcpt.Success = false
		rcpt.Error = err.Error()
		rcpt.Kind = "host"
		if k := contract.KindOf(err); k != 0 {
			rcpt.Kind = k.String()
		}
		rcpt.Attributes, rcpt.Messages, rcpt.Logs, rcpt.Data = nil, nil, nil, nil
		c.log.Warn("call reverted", append(fields, zap.String("kind", rcpt.Kind), zap.Error(err))...)
		return rcpt, err
	}
	rcpt.Success = true
	c.log.Info("call committed", append(fields,
		zap.Int("messages", len(rcpt.Messages)),
		zap.Strings("events", rcpt.Logs))...)
	return rcpt, nil
}

func (c *Chain) execute(call Call, rcpt *Receipt) error {
	if c.contractID == "" {
		return ErrNotInitialized
	}
	tr, err := c.db.OpenTransaction()
	if err != nil {
		return errors.Wrap(err, "open transaction")
	}
	if err := c.apply(tr, call, rcpt); err != nil {
		tr.Discard()
		return err
	}
	return errors.Wrap(tr.Commit(), "commit")
}

func (c *Chain) blockTime(db kv, at int64) (int64, error) {
	now, err := getInt(db, []byte(metaTime))
	if err != nil {
		return 0, err
	}
	if at == 0 {
		return now, nil
	}
	if at < now {
		return 0, errors.Wrapf(ErrTimeReversed, "%d < %d", at, now)
	}
	return at, nil
}

func (c *Chain) env(txID string, call Call, now int64) sdk.Env {
	env := sdk.Env{
		ContractId: c.contractID,
		TxId:       txID,
		Timestamp:  strconv.FormatInt(now, 10),
		Sender: sdk.Sender{
			Address:              call.Sender,
			RequiredAuths:        []sdk.Address{call.Sender},
			RequiredPostingAuths: []sdk.Address{},
		},
	}
	for _, f := range call.Funds {
		env.Intents = append(env.Intents, sdk.TransferAllow(f))
	}
	return env
}

func (c *Chain) apply(tr *leveldb.Transaction, call Call, rcpt *Receipt) error {
	if !call.Sender.IsValid() {
		return errors.Errorf("invalid sender %q", call.Sender)
	}
	now, err := c.blockTime(tr, call.Time)
	if err != nil {
		return err
	}
	rcpt.Time = now

	host := newTxHost(tr, call.Sender, c.ContractAddress(), call.Funds)
	env := c.env(rcpt.TxID, call, now)
	ctx, err := contract.NewContext(host, env)
	if err != nil {
		return err
	}
	var payload *string
	if call.Payload != "" {
		p := call.Payload
		payload = &p
	}
	if err := contract.Execute(ctx, call.Action, payload); err != nil {
		return err
	}
	if host.err != nil {
		return host.err
	}
	rcpt.Attributes = append(rcpt.Attributes, ctx.Response.Attributes...)
	rcpt.Data = ctx.Response.Data
	if err := c.dispatch(tr, host, env, ctx.Response.Messages, rcpt); err != nil {
		return err
	}
	rcpt.Logs = host.logs
	return putInt(tr, []byte(metaTime), now)
}

// dispatch executes the messages a call returned, in order. A mint is answered right away with
// the reply handler so the saga finishes inside the same transaction.
func (c *Chain) dispatch(tr *leveldb.Transaction, host *txHost, env sdk.Env, msgs []sdk.Msg, rcpt *Receipt) error {
	self := c.ContractAddress()
	for _, msg := range msgs {
		rcpt.Messages = append(rcpt.Messages, msg)
		switch m := msg.(type) {
		case sdk.TransferMsg:
			if err := transfer(tr, self, m.To, m.Asset, m.Amount); err != nil {
				return errors.Wrapf(err, "transfer to %s", m.To)
			}
			c.metrics.payouts.WithLabelValues(m.Asset.String()).Add(float64(m.Amount))
		case sdk.MintMsg:
			if err := transfer(tr, self, m.Collection, m.Fee.Asset, m.Fee.Amount); err != nil {
				return errors.Wrap(err, "mint fee")
			}
			id, err := mintToken(tr, m.Collection, m.Owner, m.TokenURI)
			if err != nil {
				return err
			}
			c.metrics.mints.Inc()
			replyEnv := env
			replyEnv.Intents = nil
			rctx, err := contract.NewContext(host, replyEnv)
			if err != nil {
				return err
			}
			if err := contract.HandleMintReply(rctx, &sdk.MintReply{Collection: m.Collection, TokenID: id}); err != nil {
				return err
			}
			if host.err != nil {
				return host.err
			}
			rcpt.Attributes = append(rcpt.Attributes, rctx.Response.Attributes...)
			if err := c.dispatch(tr, host, env, rctx.Response.Messages, rcpt); err != nil {
				return err
			}
		default:
			return errors.Errorf("unsupported message %s", msg.MsgType())
		}
	}
	return nil
}

// Query runs a read-only contract query against committed state.
func (c *Chain) Query(name, payload string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.contractID == "" {
		return nil, ErrNotInitialized
	}
	tr, err := c.db.OpenTransaction()
	if err != nil {
		return nil, errors.Wrap(err, "open transaction")
	}
	defer tr.Discard()

	now, err := c.blockTime(tr, 0)
	if err != nil {
		return nil, err
	}
	host := newTxHost(tr, c.ContractAddress(), c.ContractAddress(), nil)
	ctx, err := contract.NewContext(host, c.env(uuid.NewString(), Call{Sender: c.ContractAddress()}, now))
	if err != nil {
		return nil, err
	}
	var p *string
	if payload != "" {
		p = &payload
	}
	out, err := contract.Query(ctx, name, p)
	if err != nil {
		return nil, err
	}
	return out, host.err
}
