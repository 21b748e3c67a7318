package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/traceworks/tracekit/metrics"
	"github.com/traceworks/tracekit/retry"
)

// RPC is the transport used by the typed clients in this module: execute one
// named remote call with positional args, decode into result. It is safe for
// concurrent use; implementations that wrap *rpc.Client inherit its
// connection sharing.
type RPC interface {
	Close()
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

type rpcConfig struct {
	backoffAttempts int
	backoffStrategy retry.Strategy
	connectTimeout  time.Duration
	metrics         metrics.RPCClientMetricer
	gethOpts        []rpc.ClientOption
}

type RPCOption func(cfg *rpcConfig) error

// WithDialAttempts sets how many times to attempt the initial dial before
// giving up. This retries connection establishment only, never calls.
func WithDialAttempts(attempts int) RPCOption {
	return func(cfg *rpcConfig) error {
		if attempts < 1 {
			return fmt.Errorf("invalid dial attempts: %d", attempts)
		}
		cfg.backoffAttempts = attempts
		return nil
	}
}

// WithFixedDialBackoff waits a fixed duration between dial attempts.
func WithFixedDialBackoff(d time.Duration) RPCOption {
	return func(cfg *rpcConfig) error {
		cfg.backoffStrategy = retry.Fixed(d)
		return nil
	}
}

// WithExponentialDialBackoff grows the wait between dial attempts from min
// up to max.
func WithExponentialDialBackoff(min, max time.Duration) RPCOption {
	return func(cfg *rpcConfig) error {
		cfg.backoffStrategy = retry.Exponential(min, max)
		return nil
	}
}

// WithConnectTimeout bounds each individual dial attempt.
func WithConnectTimeout(d time.Duration) RPCOption {
	return func(cfg *rpcConfig) error {
		cfg.connectTimeout = d
		return nil
	}
}

// WithMetrics instruments the returned client with per-method request
// counters and durations.
func WithMetrics(m metrics.RPCClientMetricer) RPCOption {
	return func(cfg *rpcConfig) error {
		cfg.metrics = m
		return nil
	}
}

// WithGethRPCOptions passes client options through to the underlying geth
// RPC client, e.g. for auth headers.
func WithGethRPCOptions(opts ...rpc.ClientOption) RPCOption {
	return func(cfg *rpcConfig) error {
		cfg.gethOpts = append(cfg.gethOpts, opts...)
		return nil
	}
}

// NewRPC dials addr (http(s), ws(s) or a unix socket path) with backoff and
// returns the RPC handle for it, instrumented when configured.
func NewRPC(ctx context.Context, lgr log.Logger, addr string, opts ...RPCOption) (RPC, error) {
	cfg := rpcConfig{
		backoffAttempts: 1,
		backoffStrategy: retry.Fixed(2 * time.Second),
		connectTimeout:  10 * time.Second,
	}
	for i, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("rpc option %d: %w", i, err)
		}
	}

	underlying, err := dialRPCClientWithBackoff(ctx, lgr, addr, &cfg)
	if err != nil {
		return nil, err
	}

	var wrapped RPC = NewBaseRPCClient(underlying)
	if cfg.metrics != nil {
		wrapped = NewInstrumentedRPC(wrapped, cfg.metrics)
	}
	return wrapped, nil
}

// Dials a JSON-RPC endpoint repeatedly, with a backoff, until a client
// connection is established.
func dialRPCClientWithBackoff(ctx context.Context, lgr log.Logger, addr string, cfg *rpcConfig) (*rpc.Client, error) {
	return retry.Do(ctx, cfg.backoffAttempts, cfg.backoffStrategy, func() (*rpc.Client, error) {
		dialCtx, cancel := context.WithTimeout(ctx, cfg.connectTimeout)
		defer cancel()
		cl, err := rpc.DialOptions(dialCtx, addr, cfg.gethOpts...)
		if err != nil {
			lgr.Warn("failed to dial rpc endpoint", "addr", addr, "err", err)
			return nil, err
		}
		return cl, nil
	})
}

// BaseRPCClient is an RPC backed by a geth rpc.Client.
type BaseRPCClient struct {
	c *rpc.Client
}

var _ RPC = (*BaseRPCClient)(nil)

func NewBaseRPCClient(c *rpc.Client) *BaseRPCClient {
	return &BaseRPCClient{c: c}
}

func (b *BaseRPCClient) Close() {
	b.c.Close()
}

func (b *BaseRPCClient) CallContext(ctx context.Context, result any, method string, args ...any) error {
	return wrapErrorData(b.c.CallContext(ctx, result, method, args...))
}

// Some nodes attach the interesting part of an error to the JSON-RPC data
// field, which geth drops from the message. Surface it.
func wrapErrorData(err error) error {
	if err == nil {
		return nil
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data := dataErr.ErrorData(); data != nil {
			return fmt.Errorf("%w (data: %v)", err, data)
		}
	}
	return err
}

// InstrumentedRPCClient records per-method request metrics around an inner
// RPC. Errors pass through untouched.
type InstrumentedRPCClient struct {
	c RPC
	m metrics.RPCClientMetricer
}

var _ RPC = (*InstrumentedRPCClient)(nil)

func NewInstrumentedRPC(c RPC, m metrics.RPCClientMetricer) *InstrumentedRPCClient {
	return &InstrumentedRPCClient{c: c, m: m}
}

func (ic *InstrumentedRPCClient) Close() {
	ic.c.Close()
}

func (ic *InstrumentedRPCClient) CallContext(ctx context.Context, result any, method string, args ...any) error {
	record := ic.m.RecordRPCClientRequest(method)
	err := ic.c.CallContext(ctx, result, method, args...)
	record(err)
	return err
}
