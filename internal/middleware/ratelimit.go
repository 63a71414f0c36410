package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"
)

// maxTrackedPeers bounds the limiter map.
const maxTrackedPeers = 10000

// ErrTooManyAttempts is returned when a peer exceeds its login budget.
var ErrTooManyAttempts = errors.New("too many login attempts, try again later")

// RateLimiter throttles selected procedures per remote peer.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	rate       rate.Limit
	burst      int
	maxPeers   int
	procedures map[string]bool
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the given
// burst for each peer calling one of procedures.
func NewRateLimiter(requestsPerSecond float64, burst int, procedures ...string) *RateLimiter {
	guarded := make(map[string]bool, len(procedures))
	for _, p := range procedures {
		guarded[p] = true
	}
	return &RateLimiter{
		limiters:   make(map[string]*rate.Limiter),
		rate:       rate.Limit(requestsPerSecond),
		burst:      burst,
		maxPeers:   maxTrackedPeers,
		procedures: guarded,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		if len(rl.limiters) >= rl.maxPeers {
			rl.evict(time.Now())
		}
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// evict makes room for a new peer. Peers whose bucket has refilled are
// indistinguishable from new ones and are all dropped; otherwise only the
// peer with the most tokens left goes, so throttled peers keep their state.
// Caller holds rl.mu.
func (rl *RateLimiter) evict(now time.Time) {
	var (
		fullest    string
		mostTokens = -1.0
	)
	for key, limiter := range rl.limiters {
		tokens := limiter.TokensAt(now)
		if tokens >= float64(rl.burst) {
			delete(rl.limiters, key)
			continue
		}
		if tokens > mostTokens {
			fullest, mostTokens = key, tokens
		}
	}
	if len(rl.limiters) >= rl.maxPeers {
		delete(rl.limiters, fullest)
	}
}

// Allow reports whether key may make another call now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Interceptor returns the Connect interceptor enforcing the limit.
func (rl *RateLimiter) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			if !rl.procedures[procedure] {
				return next(ctx, req)
			}

			key := peerHost(req.Peer().Addr)
			if !rl.Allow(key) {
				slog.Warn("Rate limit exceeded", "procedure", procedure, "peer", key)
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrTooManyAttempts)
			}
			return next(ctx, req)
		}
	}
}

// peerHost drops the port so reconnecting does not reset the budget.
func peerHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
