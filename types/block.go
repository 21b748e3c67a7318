package types

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BlockNumber selects a block by number or by symbolic tag.
// The zero value refers to the genesis block; use Latest for the chain tip.
type BlockNumber int64

const (
	LatestBlock   BlockNumber = -1
	EarliestBlock BlockNumber = -2
	PendingBlock  BlockNumber = -3
)

// Num returns the BlockNumber for a concrete block height.
func Num(n uint64) BlockNumber {
	return BlockNumber(n)
}

func (bn BlockNumber) MarshalJSON() ([]byte, error) {
	switch {
	case bn == LatestBlock:
		return json.Marshal("latest")
	case bn == EarliestBlock:
		return json.Marshal("earliest")
	case bn == PendingBlock:
		return json.Marshal("pending")
	case bn >= 0:
		return json.Marshal(hexutil.Uint64(bn))
	default:
		return nil, fmt.Errorf("invalid block number: %d", bn)
	}
}

func (bn *BlockNumber) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "latest":
		*bn = LatestBlock
	case "earliest":
		*bn = EarliestBlock
	case "pending":
		*bn = PendingBlock
	default:
		var n hexutil.Uint64
		if err := n.UnmarshalText([]byte(tag)); err != nil {
			return fmt.Errorf("invalid block number %q: %w", tag, err)
		}
		*bn = BlockNumber(n)
	}
	return nil
}

func (bn BlockNumber) String() string {
	b, err := bn.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid block number %d>", int64(bn))
	}
	var s string
	_ = json.Unmarshal(b, &s)
	return s
}

// BlockID selects a block by hash or by number. This is the object form some
// trace methods take instead of a bare BlockNumber: it serializes as
// {"blockHash": …} or {"blockNumber": …}. Note that the tip in this form is
// {"blockNumber":"latest"}, a different wire token than the bare "latest"
// used elsewhere; the remote protocol wants both, so we keep both.
type BlockID struct {
	Hash   *common.Hash
	Number *BlockNumber
}

// BlockIDFromHash selects a block by its hash.
func BlockIDFromHash(h common.Hash) BlockID {
	return BlockID{Hash: &h}
}

// BlockIDFromNumber selects a block by number or symbolic tag.
func BlockIDFromNumber(bn BlockNumber) BlockID {
	return BlockID{Number: &bn}
}

func (id BlockID) MarshalJSON() ([]byte, error) {
	switch {
	case id.Hash != nil && id.Number != nil:
		return nil, fmt.Errorf("block id must not carry both hash and number")
	case id.Hash != nil:
		return json.Marshal(map[string]common.Hash{"blockHash": *id.Hash})
	case id.Number != nil:
		return json.Marshal(map[string]BlockNumber{"blockNumber": *id.Number})
	default:
		return nil, fmt.Errorf("empty block id")
	}
}

func (id *BlockID) UnmarshalJSON(data []byte) error {
	var fields struct {
		Hash   *common.Hash `json:"blockHash"`
		Number *BlockNumber `json:"blockNumber"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields.Hash == nil && fields.Number == nil {
		return fmt.Errorf("block id carries neither blockHash nor blockNumber")
	}
	id.Hash = fields.Hash
	id.Number = fields.Number
	return nil
}
