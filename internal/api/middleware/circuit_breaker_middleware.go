package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreakerConfig holds configuration for the circuit breaker
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive 5xx responses before opening
	SuccessThreshold int           // successes in half-open before closing
	Timeout          time.Duration // time spent open before probing again
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// CircuitBreaker sheds /api traffic with 503 after the store keeps failing,
// so a down database is not hammered by every request.
type CircuitBreaker struct {
	config    CircuitBreakerConfig
	state     CircuitState
	failures  int
	successes int
	openedAt  time.Time
	mutex     sync.Mutex
	logger    *zap.Logger
	now       func() time.Time
}

func NewCircuitBreaker(config CircuitBreakerConfig, logger *zap.Logger) *CircuitBreaker {
	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		logger: logger,
		now:    time.Now,
	}
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// allow reports whether a request may pass, moving an expired open
// circuit to half-open.
func (cb *CircuitBreaker) allow() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.config.Timeout {
			return false
		}
		cb.state = StateHalfOpen
		cb.successes = 0
	}
	return true
}

func (cb *CircuitBreaker) record(path string, status int) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if status >= http.StatusInternalServerError {
		cb.failures++
		cb.successes = 0
		if cb.state == StateHalfOpen || cb.failures >= cb.config.FailureThreshold {
			cb.state = StateOpen
			cb.openedAt = cb.now()
			cb.logger.Error("Circuit breaker opened",
				zap.String("path", path),
				zap.Int("failures", cb.failures))
		}
		return
	}

	cb.failures = 0
	if cb.state != StateHalfOpen {
		return
	}
	cb.successes++
	if cb.successes >= cb.config.SuccessThreshold {
		cb.state = StateClosed
		cb.successes = 0
		cb.logger.Info("Circuit breaker closed", zap.String("path", path))
	}
}

func (cb *CircuitBreaker) CircuitBreakerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cb.allow() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "服务暂时不可用",
			})
			return
		}

		c.Next()

		cb.record(c.Request.URL.Path, c.Writer.Status())
	}
}
