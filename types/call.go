package types

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

// TraceType requests one category of trace output from the node.
type TraceType string

const (
	TraceTypeTrace     TraceType = "trace"
	TraceTypeVMTrace   TraceType = "vmTrace"
	TraceTypeStateDiff TraceType = "stateDiff"
)

func (t TraceType) valid() bool {
	switch t {
	case TraceTypeTrace, TraceTypeVMTrace, TraceTypeStateDiff:
		return true
	}
	return false
}

func (t TraceType) MarshalJSON() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("unknown trace type %q", string(t))
	}
	return json.Marshal(string(t))
}

func (t *TraceType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !TraceType(s).valid() {
		return fmt.Errorf("unknown trace type %q", s)
	}
	*t = TraceType(s)
	return nil
}

// CallRequest describes the call to simulate. Unset fields are left out of
// the serialized object entirely: the node treats a missing field as
// unspecified, which is not the same as a zero value.
type CallRequest struct {
	From                 *common.Address       `json:"from,omitempty"`
	To                   *common.Address       `json:"to,omitempty"`
	Gas                  *hexutil.Big          `json:"gas,omitempty"`
	GasPrice             *hexutil.Big          `json:"gasPrice,omitempty"`
	Value                *hexutil.Big          `json:"value,omitempty"`
	Data                 hexutil.Bytes         `json:"data,omitempty"`
	TransactionType      *hexutil.Uint64       `json:"type,omitempty"`
	AccessList           *gethtypes.AccessList `json:"accessList,omitempty"`
	MaxFeePerGas         *hexutil.Big          `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big          `json:"maxPriorityFeePerGas,omitempty"`
}

// TraceCall pairs one call request with the trace types to collect for it.
// It is the element type of the trace_callMany batch and serializes as a
// two-element array [request, traceTypes] per that method's wire contract.
type TraceCall struct {
	Request    CallRequest
	TraceTypes []TraceType
}

func (tc TraceCall) MarshalJSON() ([]byte, error) {
	traceTypes := tc.TraceTypes
	if traceTypes == nil {
		traceTypes = []TraceType{}
	}
	return json.Marshal([2]any{tc.Request, traceTypes})
}

func (tc *TraceCall) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &tc.Request); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &tc.TraceTypes)
}
