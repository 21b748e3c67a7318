package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Trace is one entry of the flat, parity-format trace listing returned by
// trace_filter, trace_get, trace_transaction and friends. TraceAddress is
// the position of this frame in the call tree: the empty path is the root
// call, and each element selects a subcall at that depth.
type Trace struct {
	Action              TraceAction  `json:"action"`
	Result              *TraceResult `json:"result,omitempty"`
	Error               *string      `json:"error,omitempty"`
	Type                string       `json:"type"`
	Subtraces           uint64       `json:"subtraces"`
	TraceAddress        []uint64     `json:"traceAddress"`
	TransactionHash     *common.Hash `json:"transactionHash,omitempty"`
	TransactionPosition *uint64      `json:"transactionPosition,omitempty"`
	BlockHash           common.Hash  `json:"blockHash"`
	BlockNumber         uint64       `json:"blockNumber"`
}

// TraceAction covers the call, create, suicide and reward action variants.
// Which fields are populated depends on the enclosing trace's Type.
type TraceAction struct {
	// call
	CallType string          `json:"callType,omitempty"`
	From     *common.Address `json:"from,omitempty"`
	To       *common.Address `json:"to,omitempty"`
	Gas      *hexutil.Big    `json:"gas,omitempty"`
	Input    hexutil.Bytes   `json:"input,omitempty"`
	Value    *hexutil.Big    `json:"value,omitempty"`

	// create
	Init hexutil.Bytes `json:"init,omitempty"`

	// suicide
	Address       *common.Address `json:"address,omitempty"`
	RefundAddress *common.Address `json:"refundAddress,omitempty"`
	Balance       *hexutil.Big    `json:"balance,omitempty"`

	// reward
	Author     *common.Address `json:"author,omitempty"`
	RewardType string          `json:"rewardType,omitempty"`
}

// TraceResult is the outcome of a successfully executed frame. Address and
// Code are only present for create frames.
type TraceResult struct {
	GasUsed *hexutil.Big    `json:"gasUsed,omitempty"`
	Output  hexutil.Bytes   `json:"output,omitempty"`
	Address *common.Address `json:"address,omitempty"`
	Code    hexutil.Bytes   `json:"code,omitempty"`
}
