package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BlockTrace is the full trace tree for one simulated or replayed execution:
// the overall output bytes plus whichever of the trace, vmTrace and
// stateDiff sections were requested. Nodes return null for sections that
// were not requested, so all of them are optional.
type BlockTrace struct {
	Output          hexutil.Bytes      `json:"output"`
	Trace           []TransactionTrace `json:"trace,omitempty"`
	VMTrace         *VMTrace           `json:"vmTrace,omitempty"`
	StateDiff       *StateDiff         `json:"stateDiff,omitempty"`
	TransactionHash *common.Hash       `json:"transactionHash,omitempty"`
}

// TransactionTrace is one frame of a BlockTrace's execution trace. Unlike
// the flat Trace entry it carries no block or transaction linkage; that
// context is implied by the enclosing BlockTrace.
type TransactionTrace struct {
	TraceAddress []uint64     `json:"traceAddress"`
	Subtraces    uint64       `json:"subtraces"`
	Action       TraceAction  `json:"action"`
	Type         string       `json:"type"`
	Result       *TraceResult `json:"result,omitempty"`
	Error        *string      `json:"error,omitempty"`
}

// VMTrace is a full EVM-level trace of one code body.
type VMTrace struct {
	Code hexutil.Bytes `json:"code"`
	Ops  []VMOperation `json:"ops"`
}

// VMOperation is one executed instruction. Sub is set when the instruction
// entered a subcall, holding that call's own VMTrace.
type VMOperation struct {
	PC   uint64               `json:"pc"`
	Cost uint64               `json:"cost"`
	Ex   *VMExecutedOperation `json:"ex,omitempty"`
	Sub  *VMTrace             `json:"sub,omitempty"`
}

type VMExecutedOperation struct {
	Used  uint64         `json:"used"`
	Push  []*hexutil.Big `json:"push"`
	Mem   *MemoryDiff    `json:"mem,omitempty"`
	Store *StorageDiff   `json:"store,omitempty"`
}

type MemoryDiff struct {
	Off  uint64        `json:"off"`
	Data hexutil.Bytes `json:"data"`
}

type StorageDiff struct {
	Key *hexutil.Big `json:"key"`
	Val *hexutil.Big `json:"val"`
}

// StateDiff maps each touched account to the changes execution made to it.
type StateDiff map[common.Address]AccountDiff

type AccountDiff struct {
	Balance Diff[*hexutil.Big]                `json:"balance"`
	Nonce   Diff[*hexutil.Big]                `json:"nonce"`
	Code    Diff[hexutil.Bytes]               `json:"code"`
	Storage map[common.Hash]Diff[common.Hash] `json:"storage"`
}

// DiffKind says how a value changed during execution.
type DiffKind int

const (
	DiffSame DiffKind = iota
	DiffBorn
	DiffDied
	DiffChanged
)

// Diff records one value transition in the parity stateDiff encoding:
// "=" for unchanged, {"+": v} for created, {"-": v} for deleted and
// {"*": {"from": a, "to": b}} for changed.
type Diff[T any] struct {
	Kind DiffKind
	From T
	To   T
}

var diffSameToken = []byte(`"="`)

func (d Diff[T]) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DiffSame:
		return diffSameToken, nil
	case DiffBorn:
		return json.Marshal(map[string]T{"+": d.To})
	case DiffDied:
		return json.Marshal(map[string]T{"-": d.From})
	case DiffChanged:
		return json.Marshal(map[string]changedValue[T]{"*": {From: d.From, To: d.To}})
	default:
		return nil, fmt.Errorf("unknown diff kind %d", int(d.Kind))
	}
}

func (d *Diff[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), diffSameToken) {
		*d = Diff[T]{Kind: DiffSame}
		return nil
	}
	var fields struct {
		Born    *T               `json:"+"`
		Died    *T               `json:"-"`
		Changed *changedValue[T] `json:"*"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	switch {
	case fields.Born != nil:
		*d = Diff[T]{Kind: DiffBorn, To: *fields.Born}
	case fields.Died != nil:
		*d = Diff[T]{Kind: DiffDied, From: *fields.Died}
	case fields.Changed != nil:
		*d = Diff[T]{Kind: DiffChanged, From: fields.Changed.From, To: fields.Changed.To}
	default:
		return fmt.Errorf("diff %s matches no known variant", string(data))
	}
	return nil
}

type changedValue[T any] struct {
	From T `json:"from"`
	To   T `json:"to"`
}
