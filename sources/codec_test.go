package sources

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/traceworks/tracekit/types"
)

func TestEncodeParamsIsDeterministic(t *testing.T) {
	to := common.HexToAddress("0x0000000000000000000000000000000000000123")
	req := types.CallRequest{To: &to, Value: (*hexutil.Big)(big.NewInt(1))}

	first, err := encodeParams(req, nonNilTraceTypes(nil), blockNumberOrLatest(nil))
	require.NoError(t, err)
	second, err := encodeParams(req, nonNilTraceTypes(nil), blockNumberOrLatest(nil))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEncodeParamsPreservesOrder(t *testing.T) {
	params, err := encodeParams(types.Num(0x10), []types.TraceType{types.TraceTypeTrace})
	require.NoError(t, err)
	require.Len(t, params, 2)
	require.Equal(t, `"0x10"`, string(params[0]))
	require.Equal(t, `["trace"]`, string(params[1]))
}

func TestEncodeParamsSurfacesEncodeError(t *testing.T) {
	_, err := encodeParams([]types.TraceType{types.TraceType("bogus")})
	require.Error(t, err)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
}

func TestBlockNumberOrLatest(t *testing.T) {
	require.Equal(t, types.LatestBlock, blockNumberOrLatest(nil))

	n := types.Num(7)
	require.Equal(t, n, blockNumberOrLatest(&n))
}

// The two tip defaults are distinct wire tokens: bare "latest" for
// number-typed params, {"blockNumber":"latest"} for identifier-typed ones.
// This mirrors the remote protocol's own asymmetry; do not unify them.
func TestTipDefaultsEncodeDistinctly(t *testing.T) {
	params, err := encodeParams(blockNumberOrLatest(nil), blockIDOrLatest(nil))
	require.NoError(t, err)
	require.Equal(t, `"latest"`, string(params[0]))
	require.JSONEq(t, `{"blockNumber":"latest"}`, string(params[1]))
	require.NotEqual(t, string(params[0]), string(params[1]))
}

func TestBlockIDOrLatestKeepsExplicitSelector(t *testing.T) {
	id := types.BlockIDFromHash(common.HexToHash("0x01"))
	require.Equal(t, id, blockIDOrLatest(&id))
}

func TestTraceTypeListsAlwaysEncodeAsList(t *testing.T) {
	tests := []struct {
		name string
		in   []types.TraceType
		want string
	}{
		{"Nil", nil, `[]`},
		{"Empty", []types.TraceType{}, `[]`},
		{"Singleton", []types.TraceType{types.TraceTypeTrace}, `["trace"]`},
		{"Multiple", []types.TraceType{types.TraceTypeTrace, types.TraceTypeStateDiff}, `["trace","stateDiff"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := encodeParams(nonNilTraceTypes(tt.in))
			require.NoError(t, err)
			require.Equal(t, tt.want, string(params[0]))
		})
	}
}
