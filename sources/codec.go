package sources

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"

	"github.com/traceworks/tracekit/types"
)

// Positional params are serialized before dispatch so that malformed
// arguments fail here, synchronously, and never reach the transport.
var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// encodeParams serializes each value into one positional wire parameter,
// preserving order.
func encodeParams(values ...any) ([]json.RawMessage, error) {
	params := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		p, err := jsonCodec.Marshal(v)
		if err != nil {
			return nil, &EncodeError{Value: v, Err: err}
		}
		params = append(params, p)
	}
	return params, nil
}

// blockNumberOrLatest substitutes the chain tip for an absent block
// selector. The remote methods require the block parameter to be present,
// omitting it is not an option.
func blockNumberOrLatest(block *types.BlockNumber) types.BlockNumber {
	if block == nil {
		return types.LatestBlock
	}
	return *block
}

// blockIDOrLatest is the object-form counterpart of blockNumberOrLatest,
// used by trace_callMany. It defaults to {"blockNumber":"latest"}, which is
// a different wire token than the bare "latest" even though both name the
// tip; the node accepts each form only where it expects it.
func blockIDOrLatest(block *types.BlockID) types.BlockID {
	if block == nil {
		return types.BlockIDFromNumber(types.LatestBlock)
	}
	return *block
}

// nonNilTraceTypes keeps a nil trace-type list from serializing as null; the
// wire contract wants an array even when empty or singleton.
func nonNilTraceTypes(traceTypes []types.TraceType) []types.TraceType {
	if traceTypes == nil {
		return []types.TraceType{}
	}
	return traceTypes
}

// nonNilTraceCalls is nonNilTraceTypes for the trace_callMany batch.
func nonNilTraceCalls(calls []types.TraceCall) []types.TraceCall {
	if calls == nil {
		return []types.TraceCall{}
	}
	return calls
}
