package types

import (
	"github.com/ethereum/go-ethereum/common"
)

// TraceFilter selects traces by block range and participating addresses for
// trace_filter. Empty fields match everything.
type TraceFilter struct {
	FromBlock   *BlockNumber     `json:"fromBlock,omitempty"`
	ToBlock     *BlockNumber     `json:"toBlock,omitempty"`
	FromAddress []common.Address `json:"fromAddress,omitempty"`
	ToAddress   []common.Address `json:"toAddress,omitempty"`
	After       *uint64          `json:"after,omitempty"`
	Count       *uint64          `json:"count,omitempty"`
}

// TraceFilterBuilder assembles a TraceFilter.
type TraceFilterBuilder struct {
	filter TraceFilter
}

func NewTraceFilterBuilder() *TraceFilterBuilder {
	return &TraceFilterBuilder{}
}

// FromBlock sets the start of the matched block range.
func (b *TraceFilterBuilder) FromBlock(block BlockNumber) *TraceFilterBuilder {
	b.filter.FromBlock = &block
	return b
}

// ToBlock sets the end of the matched block range.
func (b *TraceFilterBuilder) ToBlock(block BlockNumber) *TraceFilterBuilder {
	b.filter.ToBlock = &block
	return b
}

// FromAddress restricts matches to traces sent from any of the given addresses.
func (b *TraceFilterBuilder) FromAddress(addrs ...common.Address) *TraceFilterBuilder {
	b.filter.FromAddress = append(b.filter.FromAddress, addrs...)
	return b
}

// ToAddress restricts matches to traces sent to any of the given addresses.
func (b *TraceFilterBuilder) ToAddress(addrs ...common.Address) *TraceFilterBuilder {
	b.filter.ToAddress = append(b.filter.ToAddress, addrs...)
	return b
}

// After skips the first n matching traces.
func (b *TraceFilterBuilder) After(n uint64) *TraceFilterBuilder {
	b.filter.After = &n
	return b
}

// Count caps the number of returned traces.
func (b *TraceFilterBuilder) Count(n uint64) *TraceFilterBuilder {
	b.filter.Count = &n
	return b
}

func (b *TraceFilterBuilder) Build() TraceFilter {
	return b.filter
}
