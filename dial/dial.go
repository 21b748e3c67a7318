// Package dial connects typed clients to remote nodes.
package dial

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/traceworks/tracekit/client"
	"github.com/traceworks/tracekit/sources"
)

// DefaultDialTimeout is a default timeout for dialing a client.
const DefaultDialTimeout = 1 * time.Minute

const defaultRetryCount = 30
const defaultRetryTime = 2 * time.Second
const defaultConnectTimeout = 10 * time.Second

// DialTraceClientWithTimeout attempts to dial the RPC provider at url and
// wraps it in a TraceClient. Retry and backoff of the dial are handled
// internally; the timeout bounds the whole dial.
func DialTraceClientWithTimeout(ctx context.Context, timeout time.Duration, lgr log.Logger, url string, callerOpts ...client.RPCOption) (*sources.TraceClient, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rpcCl, err := dialClientWithTimeout(ctx, lgr, url, callerOpts...)
	if err != nil {
		return nil, err
	}
	return sources.NewTraceClient(rpcCl), nil
}

// DialRPCClientWithTimeout dials a bare RPC handle with the default backoff
// policy, for callers wanting to wrap it themselves.
func DialRPCClientWithTimeout(ctx context.Context, timeout time.Duration, lgr log.Logger, url string, callerOpts ...client.RPCOption) (client.RPC, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return dialClientWithTimeout(ctx, lgr, url, callerOpts...)
}

func dialClientWithTimeout(ctx context.Context, lgr log.Logger, url string, callerOpts ...client.RPCOption) (client.RPC, error) {
	opts := []client.RPCOption{
		client.WithFixedDialBackoff(defaultRetryTime),
		client.WithDialAttempts(defaultRetryCount),
		client.WithConnectTimeout(defaultConnectTimeout),
	}
	opts = append(opts, callerOpts...)

	return client.NewRPC(ctx, lgr, url, opts...)
}
