package contract

import (
	"bytes"
	"encoding/binary"

	"brane_auction/sdk"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var errUnexpectedEOF = errors.New("unexpected EOF")

type binWriter struct {
	buf bytes.Buffer
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *binWriter { return &binWriter{} }

func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

// writeUint64 writes big endian numbers so tooling can read them without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *binWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

// writeVarUint uses varints to keep counts and lens compact.
func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeString prefixes its length then dumps UTF-8 directly.
func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *binWriter) writeAddress(a sdk.Address) { w.writeString(a.String()) }
func (w *binWriter) writeAsset(a sdk.Asset) { w.writeString(a.String()) }

// writeDecimal stores the canonical decimal string, exact and independent of float rounding.
func (w *binWriter) writeDecimal(d decimal.Decimal) {
	w.writeString(d.String())
}

func (w *binWriter) writeBid(b Bid) {
	w.writeAddress(b.Bidder)
	w.writeInt64(b.Amount)
}

type binReader struct {
	data []byte
	pos  int
}

// newReader wraps raw bytes so we can peek sequentially w/out copying.
func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

// readUint64 decodes big endian integers for ids and totals.
func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errUnexpectedEOF
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

func (r *binReader) readInt64() (int64, error) {
	v, err := r.readUint64()
	return int64(v), err
}

func (r *binReader) readVarUint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errUnexpectedEOF
	}
	r.pos += n
	return v, nil
}

func (r *binReader) readString() (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if uint64(len(r.data)-r.pos) < l {
		return "", errUnexpectedEOF
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

func (r *binReader) readAddress() (sdk.Address, error) {
	s, err := r.readString()
	return sdk.Address(s), err
}

func (r *binReader) readAsset() (sdk.Asset, error) {
	s, err := r.readString()
	return sdk.Asset(s), err
}

func (r *binReader) readDecimal() (decimal.Decimal, error) {
	s, err := r.readString()
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "decimal")
	}
	return d, nil
}

func (r *binReader) readBid() (Bid, error) {
	var b Bid
	var err error
	if b.Bidder, err = r.readAddress(); err != nil {
		return b, err
	}
	b.Amount, err = r.readInt64()
	return b, err
}

// -----------------------------------------------------------------------------
// Config
// -----------------------------------------------------------------------------

func EncodeConfig(cfg *Config) []byte {
	w := newWriter()
	w.writeAddress(cfg.Owner)
	w.writeAddress(cfg.FreeVoteAddr)
	w.writeAddress(cfg.Collection)
	w.writeAddress(cfg.BurnAddr)
	w.writeAsset(cfg.BidAsset)
	w.writeAsset(cfg.IncentiveAsset)
	w.writeDecimal(cfg.MinimumOutbid)
	w.writeInt64(cfg.IncentiveDistributionAmount)
	w.writeDecimal(cfg.IncentiveBidPercent)
	w.writeInt64(cfg.MintCost)
	w.writeInt64(cfg.SubmissionCost)
	w.writeUint64(cfg.SubmissionLimit)
	w.writeUint64(cfg.SubmissionVotePeriod)
	w.writeDecimal(cfg.CurationThreshold)
	w.writeUint64(cfg.AuctionPeriod)
	w.writeUint64(cfg.CurrentSubmissionID)
	w.writeUint64(cfg.SubmissionTotal)
	w.writeUint64(cfg.CurrentTokenID)
	return w.bytes()
}

func DecodeConfig(data []byte) (*Config, error) {
	r := newReader(data)
	cfg := &Config{}
	var err error
	steps := []func() error{
		func() error { cfg.Owner, err = r.readAddress(); return err },
		func() error { cfg.FreeVoteAddr, err = r.readAddress(); return err },
		func() error { cfg.Collection, err = r.readAddress(); return err },
		func() error { cfg.BurnAddr, err = r.readAddress(); return err },
		func() error { cfg.BidAsset, err = r.readAsset(); return err },
		func() error { cfg.IncentiveAsset, err = r.readAsset(); return err },
		func() error { cfg.MinimumOutbid, err = r.readDecimal(); return err },
		func() error { cfg.IncentiveDistributionAmount, err = r.readInt64(); return err },
		func() error { cfg.IncentiveBidPercent, err = r.readDecimal(); return err },
		func() error { cfg.MintCost, err = r.readInt64(); return err },
		func() error { cfg.SubmissionCost, err = r.readInt64(); return err },
		func() error { cfg.SubmissionLimit, err = r.readUint64(); return err },
		func() error { cfg.SubmissionVotePeriod, err = r.readUint64(); return err },
		func() error { cfg.CurationThreshold, err = r.readDecimal(); return err },
		func() error { cfg.AuctionPeriod, err = r.readUint64(); return err },
		func() error { cfg.CurrentSubmissionID, err = r.readUint64(); return err },
		func() error { cfg.SubmissionTotal, err = r.readUint64(); return err },
		func() error { cfg.CurrentTokenID, err = r.readUint64(); return err },
	}
	for _, step := range steps {
		if e := step(); e != nil {
			return nil, errors.Wrap(e, "decode config")
		}
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Submissions
// -----------------------------------------------------------------------------

func encodeSubmission(w *binWriter, s *Submission) {
	w.writeAddress(s.Info.Submitter)
	w.writeAddress(s.Info.ProceedsRecipient)
	w.writeString(s.Info.TokenURI)
	w.writeVarUint(uint64(len(s.Curators)))
	for _, c := range s.Curators {
		w.writeAddress(c)
	}
	w.writeUint64(s.Votes)
	w.writeInt64(s.EndTime)
}

func decodeSubmission(r *binReader) (Submission, error) {
	var s Submission
	var err error
	if s.Info.Submitter, err = r.readAddress(); err != nil {
		return s, err
	}
	if s.Info.ProceedsRecipient, err = r.readAddress(); err != nil {
		return s, err
	}
	if s.Info.TokenURI, err = r.readString(); err != nil {
		return s, err
	}
	n, err := r.readVarUint()
	if err != nil {
		return s, err
	}
	if n > 0 {
		s.Curators = make([]sdk.Address, 0, n)
	}
	for i := uint64(0); i < n; i++ {
		c, err := r.readAddress()
		if err != nil {
			return s, err
		}
		s.Curators = append(s.Curators, c)
	}
	if s.Votes, err = r.readUint64(); err != nil {
		return s, err
	}
	s.EndTime, err = r.readInt64()
	return s, err
}

func EncodeSubmission(s *Submission) []byte {
	w := newWriter()
	encodeSubmission(w, s)
	return w.bytes()
}

func DecodeSubmission(data []byte) (*Submission, error) {
	s, err := decodeSubmission(newReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode submission")
	}
	return &s, nil
}

func encodeIDList(ids []uint64) []byte {
	w := newWriter()
	w.writeVarUint(uint64(len(ids)))
	for _, id := range ids {
		w.writeUint64(id)
	}
	return w.bytes()
}

func decodeIDList(data []byte) ([]uint64, error) {
	r := newReader(data)
	n, err := r.readVarUint()
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, n)
	for i := uint64(0); i < n; i++ {
		id, err := r.readUint64()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// -----------------------------------------------------------------------------
// Auctions
// -----------------------------------------------------------------------------

func EncodeAuction(a *Auction) []byte {
	w := newWriter()
	encodeSubmission(w, &a.Submission)
	w.writeVarUint(uint64(len(a.Bids)))
	for _, b := range a.Bids {
		w.writeBid(b)
	}
	w.writeBid(a.HighestBid)
	w.writeInt64(a.EndTime)
	return w.bytes()
}

func DecodeAuction(data []byte) (*Auction, error) {
	r := newReader(data)
	a := &Auction{}
	var err error
	if a.Submission, err = decodeSubmission(r); err != nil {
		return nil, errors.Wrap(err, "decode auction")
	}
	n, err := r.readVarUint()
	if err != nil {
		return nil, errors.Wrap(err, "decode auction")
	}
	a.Bids = make([]Bid, 0, n)
	for i := uint64(0); i < n; i++ {
		b, err := r.readBid()
		if err != nil {
			return nil, errors.Wrap(err, "decode auction bid")
		}
		a.Bids = append(a.Bids, b)
	}
	if a.HighestBid, err = r.readBid(); err != nil {
		return nil, errors.Wrap(err, "decode auction")
	}
	if a.EndTime, err = r.readInt64(); err != nil {
		return nil, errors.Wrap(err, "decode auction")
	}
	return a, nil
}

func EncodeAssetAuction(a *AssetAuction) []byte {
	w := newWriter()
	w.writeAsset(a.Asset.Asset)
	w.writeInt64(a.Asset.Amount)
	w.writeBid(a.HighestBid)
	return w.bytes()
}

func DecodeAssetAuction(data []byte) (*AssetAuction, error) {
	r := newReader(data)
	a := &AssetAuction{}
	var err error
	if a.Asset.Asset, err = r.readAsset(); err != nil {
		return nil, errors.Wrap(err, "decode asset auction")
	}
	if a.Asset.Amount, err = r.readInt64(); err != nil {
		return nil, errors.Wrap(err, "decode asset auction")
	}
	if a.HighestBid, err = r.readBid(); err != nil {
		return nil, errors.Wrap(err, "decode asset auction")
	}
	return a, nil
}

// queueBounds is the head/tail pair of the pending FIFO; head == tail means empty.
type queueBounds struct {
	Head uint64
	Tail uint64
}

func (q queueBounds) Len() uint64 { return q.Tail - q.Head }

func encodeQueueBounds(q queueBounds) []byte {
	w := newWriter()
	w.writeUint64(q.Head)
	w.writeUint64(q.Tail)
	return w.bytes()
}

func decodeQueueBounds(data []byte) (queueBounds, error) {
	r := newReader(data)
	var q queueBounds
	var err error
	if q.Head, err = r.readUint64(); err != nil {
		return q, err
	}
	q.Tail, err = r.readUint64()
	return q, err
}

// -----------------------------------------------------------------------------
// Mints
// -----------------------------------------------------------------------------

func EncodePendingMint(p *PendingMint) []byte {
	w := newWriter()
	w.writeAddress(p.Owner)
	w.writeString(p.TokenURI)
	return w.bytes()
}

func DecodePendingMint(data []byte) (*PendingMint, error) {
	r := newReader(data)
	p := &PendingMint{}
	var err error
	if p.Owner, err = r.readAddress(); err != nil {
		return nil, errors.Wrap(err, "decode pending mint")
	}
	if p.TokenURI, err = r.readString(); err != nil {
		return nil, errors.Wrap(err, "decode pending mint")
	}
	return p, nil
}

func EncodeMintedToken(t *MintedToken) []byte {
	w := newWriter()
	w.writeUint64(t.TokenID)
	w.writeAddress(t.Owner)
	w.writeString(t.TokenURI)
	w.writeInt64(t.MintedAt)
	return w.bytes()
}

func DecodeMintedToken(data []byte) (*MintedToken, error) {
	r := newReader(data)
	t := &MintedToken{}
	var err error
	if t.TokenID, err = r.readUint64(); err != nil {
		return nil, errors.Wrap(err, "decode minted token")
	}
	if t.Owner, err = r.readAddress(); err != nil {
		return nil, errors.Wrap(err, "decode minted token")
	}
	if t.TokenURI, err = r.readString(); err != nil {
		return nil, errors.Wrap(err, "decode minted token")
	}
	if t.MintedAt, err = r.readInt64(); err != nil {
		return nil, errors.Wrap(err, "decode minted token")
	}
	return t, nil
}
