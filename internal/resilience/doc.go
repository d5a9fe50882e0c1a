// Package resilience provides fault tolerance helpers for calls that leave the process.
//
// The package supports:
//   - Circuit breakers around notification channels (websocket hub, Redis bridge)
//   - Retry with exponential backoff and jitter for database start-up and Redis publishes
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ChannelConfig("redis"))
//	err := cb.Run(func() error {
//	    return bridge.Send(ctx, event)
//	})
//
//	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
