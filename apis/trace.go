package apis

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/traceworks/tracekit/types"
)

// TraceAPI is the trace inspection surface of an execution node: ad-hoc
// simulation (Call, CallMany, RawTransaction), replay of committed
// transactions, and filtered lookups over recorded traces.
type TraceAPI interface {
	// Call simulates the given call on top of block and returns its trace
	// tree. A nil block means the chain tip.
	Call(ctx context.Context, req types.CallRequest, traceTypes []types.TraceType, block *types.BlockNumber) (*types.BlockTrace, error)
	// CallMany simulates the given calls in order on top of the same block,
	// so later calls observe the effects of earlier ones. A nil block means
	// the chain tip.
	CallMany(ctx context.Context, calls []types.TraceCall, block *types.BlockID) ([]types.BlockTrace, error)
	// RawTransaction traces a signed, RLP-encoded transaction without
	// submitting it.
	RawTransaction(ctx context.Context, data hexutil.Bytes, traceTypes []types.TraceType) (*types.BlockTrace, error)
	// ReplayTransaction re-executes a committed transaction and returns the
	// requested traces.
	ReplayTransaction(ctx context.Context, hash common.Hash, traceTypes []types.TraceType) (*types.BlockTrace, error)
	// ReplayBlockTransactions re-executes every transaction in a block,
	// returning one trace tree per transaction.
	ReplayBlockTransactions(ctx context.Context, block types.BlockNumber, traceTypes []types.TraceType) ([]types.BlockTrace, error)
	// Block returns the traces recorded for every transaction in a block.
	Block(ctx context.Context, block types.BlockNumber) ([]types.Trace, error)
	// Filter returns the recorded traces matching the filter.
	Filter(ctx context.Context, filter types.TraceFilter) ([]types.Trace, error)
	// Get returns the trace at the given position within a transaction.
	Get(ctx context.Context, hash common.Hash, indices []hexutil.Uint64) (*types.Trace, error)
	// Transaction returns all traces of a committed transaction.
	Transaction(ctx context.Context, hash common.Hash) ([]types.Trace, error)
}
