package testutils

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/traceworks/tracekit/client"
)

// MockRPC implements client.RPC with testify mocks. Expectations use the
// raw mock surface, e.g.:
//
//	rpc.On("CallContext", ctx, new(json.RawMessage), "trace_transaction", []any{...}).Return([]error{nil})
//
// or the ExpectCallContext helper below.
type MockRPC struct {
	mock.Mock
}

var _ client.RPC = (*MockRPC)(nil)

func (m *MockRPC) Close() {
	m.MethodCalled("Close")
}

func (m *MockRPC) CallContext(ctx context.Context, result any, method string, args ...any) error {
	out := m.MethodCalled("CallContext", ctx, result, method, args)
	return out.Get(0).([]error)[0]
}

// ExpectCallContext arranges for one CallContext with the given method and
// args to write raw into the result target and return err. The result
// target is assumed to be a *json.RawMessage, which is what the typed
// clients in this module dispatch with.
func (m *MockRPC) ExpectCallContext(raw json.RawMessage, method string, args []any, err error) {
	m.On("CallContext", mock.Anything, new(json.RawMessage), method, args).Run(func(margs mock.Arguments) {
		*margs[1].(*json.RawMessage) = raw
	}).Return([]error{err}).Once()
}

func (m *MockRPC) ExpectClose() {
	m.On("Close").Once()
}
