package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"

	"github.com/traceworks/tracekit/client"
)

func startTestJSONRPCServerWithDataField() *httptest.Server {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"jsonrpc": "2.0",
			"error": map[string]interface{}{
				"code":    -32000,
				"message": "execution aborted",
				"data":    "test error",
			},
			"id": "0",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})
	return httptest.NewServer(handler)
}

func startTestJSONRPCServerWithoutDataField() *httptest.Server {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"jsonrpc": "2.0",
			"error": map[string]interface{}{
				"code":    -32000,
				"message": "execution aborted",
			},
			"id": "0",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})
	return httptest.NewServer(handler)
}

func startTestJSONRPCServerWithResult(result string) *httptest.Server {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		response := map[string]interface{}{
			"jsonrpc": "2.0",
			"result":  json.RawMessage(result),
			"id":      req.ID,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})
	return httptest.NewServer(handler)
}

func TestBaseRPCClientCallContextJSONRPCError(t *testing.T) {
	server := startTestJSONRPCServerWithDataField()
	defer server.Close()
	rpcClient, err := rpc.DialHTTP(server.URL)
	require.NoError(t, err)
	cl := client.NewBaseRPCClient(rpcClient)
	defer cl.Close()
	var result any
	err = cl.CallContext(context.Background(), &result, "test_method")
	require.Contains(t, err.Error(), "execution aborted", "Error should contain message field")
	require.Contains(t, err.Error(), "test error", "Error should contain data field")
}

func TestBaseRPCClientCallContextJSONRPCErrorNoData(t *testing.T) {
	server := startTestJSONRPCServerWithoutDataField()
	defer server.Close()
	rpcClient, err := rpc.DialHTTP(server.URL)
	require.NoError(t, err)
	cl := client.NewBaseRPCClient(rpcClient)
	defer cl.Close()
	var result any
	err = cl.CallContext(context.Background(), &result, "test_method")
	require.Exactly(t, err.Error(), "execution aborted", "Error should exactly match the message field")
}

func TestNewRPC(t *testing.T) {
	server := startTestJSONRPCServerWithResult(`"0x1"`)
	defer server.Close()

	lgr := log.NewLogger(log.DiscardHandler())
	cl, err := client.NewRPC(context.Background(), lgr, server.URL)
	require.NoError(t, err)
	defer cl.Close()

	var result json.RawMessage
	require.NoError(t, cl.CallContext(context.Background(), &result, "test_method"))
	require.Equal(t, `"0x1"`, string(result))
}

func TestNewRPCRejectsBadOptions(t *testing.T) {
	lgr := log.NewLogger(log.DiscardHandler())
	_, err := client.NewRPC(context.Background(), lgr, "http://127.0.0.1:0", client.WithDialAttempts(0))
	require.Error(t, err)
}

type countingMetricer struct {
	requests  atomic.Int64
	responses atomic.Int64
}

func (m *countingMetricer) RecordRPCClientRequest(method string) func(err error) {
	m.requests.Add(1)
	return func(err error) {
		m.responses.Add(1)
	}
}

func TestInstrumentedRPCRecordsRequests(t *testing.T) {
	server := startTestJSONRPCServerWithResult(`true`)
	defer server.Close()

	rpcClient, err := rpc.DialHTTP(server.URL)
	require.NoError(t, err)

	m := new(countingMetricer)
	cl := client.NewInstrumentedRPC(client.NewBaseRPCClient(rpcClient), m)
	defer cl.Close()

	var result bool
	require.NoError(t, cl.CallContext(context.Background(), &result, "test_method"))
	require.True(t, result)
	require.EqualValues(t, 1, m.requests.Load())
	require.EqualValues(t, 1, m.responses.Load())
}

func TestNewRPCDialBackoffGivesUp(t *testing.T) {
	lgr := log.NewLogger(log.DiscardHandler())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Unix socket path that does not exist: every attempt fails fast.
	_, err := client.NewRPC(ctx, lgr, "/tmp/tracekit-does-not-exist.ipc",
		client.WithDialAttempts(2), client.WithFixedDialBackoff(time.Millisecond))
	require.Error(t, err)
}
