// Package sources exports typed clients over a JSON-RPC transport.
//
// [TraceClient] binds the trace inspection namespace of an execution node:
// every method is one remote procedure, dispatched through a shared
// [client.RPC] handle. Calls are independent and stateless; any number may
// be in flight concurrently against the same handle.
package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/traceworks/tracekit/apis"
	"github.com/traceworks/tracekit/client"
	"github.com/traceworks/tracekit/types"
)

// blockTracerConfig is the fixed second parameter of debug_traceBlockByNumber.
// Nodes expect exactly this shape; it is not caller-configurable.
var blockTracerConfig = map[string]string{"tracer": "callTracer"}

// TraceClient gives typed access to an execution node's trace APIs.
type TraceClient struct {
	client client.RPC
}

// This type-check keeps the client in sync with the API surface.
var _ apis.TraceAPI = (*TraceClient)(nil)

func NewTraceClient(client client.RPC) *TraceClient {
	return &TraceClient{client: client}
}

// Call executes the given call on top of block and returns its trace tree.
// A nil block traces against the chain tip.
func (tc *TraceClient) Call(ctx context.Context, req types.CallRequest, traceTypes []types.TraceType, block *types.BlockNumber) (*types.BlockTrace, error) {
	params, err := encodeParams(req, nonNilTraceTypes(traceTypes), blockNumberOrLatest(block))
	if err != nil {
		return nil, err
	}
	return call[*types.BlockTrace](ctx, tc.client, "trace_call", params)
}

// CallMany executes the given calls in order on top of the same block, so
// later calls observe the state changes of earlier ones. A nil block traces
// against the chain tip.
func (tc *TraceClient) CallMany(ctx context.Context, calls []types.TraceCall, block *types.BlockID) ([]types.BlockTrace, error) {
	params, err := encodeParams(nonNilTraceCalls(calls), blockIDOrLatest(block))
	if err != nil {
		return nil, err
	}
	return call[[]types.BlockTrace](ctx, tc.client, "trace_callMany", params)
}

// RawTransaction traces a signed, RLP-encoded transaction without
// submitting it.
func (tc *TraceClient) RawTransaction(ctx context.Context, data hexutil.Bytes, traceTypes []types.TraceType) (*types.BlockTrace, error) {
	params, err := encodeParams(data, nonNilTraceTypes(traceTypes))
	if err != nil {
		return nil, err
	}
	return call[*types.BlockTrace](ctx, tc.client, "trace_rawTransaction", params)
}

// ReplayTransaction re-executes the committed transaction and returns the
// requested traces.
func (tc *TraceClient) ReplayTransaction(ctx context.Context, hash common.Hash, traceTypes []types.TraceType) (*types.BlockTrace, error) {
	params, err := encodeParams(hash, nonNilTraceTypes(traceTypes))
	if err != nil {
		return nil, err
	}
	return call[*types.BlockTrace](ctx, tc.client, "trace_replayTransaction", params)
}

// ReplayBlockTransactions re-executes every transaction in block, returning
// one trace tree per transaction.
func (tc *TraceClient) ReplayBlockTransactions(ctx context.Context, block types.BlockNumber, traceTypes []types.TraceType) ([]types.BlockTrace, error) {
	params, err := encodeParams(block, nonNilTraceTypes(traceTypes))
	if err != nil {
		return nil, err
	}
	return call[[]types.BlockTrace](ctx, tc.client, "trace_replayBlockTransactions", params)
}

// Block returns the call traces recorded for every transaction in block.
func (tc *TraceClient) Block(ctx context.Context, block types.BlockNumber) ([]types.Trace, error) {
	params, err := encodeParams(block, blockTracerConfig)
	if err != nil {
		return nil, err
	}
	return call[[]types.Trace](ctx, tc.client, "debug_traceBlockByNumber", params)
}

// Filter returns the recorded traces matching filter.
func (tc *TraceClient) Filter(ctx context.Context, filter types.TraceFilter) ([]types.Trace, error) {
	params, err := encodeParams(filter)
	if err != nil {
		return nil, err
	}
	return call[[]types.Trace](ctx, tc.client, "trace_filter", params)
}

// Get returns the trace at the given position within a transaction. The
// indices walk the call tree, one zero-based subcall index per level.
func (tc *TraceClient) Get(ctx context.Context, hash common.Hash, indices []hexutil.Uint64) (*types.Trace, error) {
	if indices == nil {
		indices = []hexutil.Uint64{}
	}
	params, err := encodeParams(hash, indices)
	if err != nil {
		return nil, err
	}
	return call[*types.Trace](ctx, tc.client, "trace_get", params)
}

// Transaction returns all traces of the committed transaction.
func (tc *TraceClient) Transaction(ctx context.Context, hash common.Hash) ([]types.Trace, error) {
	params, err := encodeParams(hash)
	if err != nil {
		return nil, err
	}
	return call[[]types.Trace](ctx, tc.client, "trace_transaction", params)
}

// call dispatches one remote procedure and decodes its raw result into T.
// Transport errors pass through unchanged; a result that does not fit T
// comes back as a *DecodeError carrying the raw payload.
func call[T any](ctx context.Context, cl client.RPC, method string, params []json.RawMessage) (T, error) {
	var result T
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p
	}
	var raw json.RawMessage
	if err := cl.CallContext(ctx, &raw, method, args...); err != nil {
		return result, err
	}
	if err := jsonCodec.Unmarshal(raw, &result); err != nil {
		return result, &DecodeError{
			Method: method,
			Target: fmt.Sprintf("%T", result),
			Raw:    raw,
			Err:    err,
		}
	}
	return result, nil
}
