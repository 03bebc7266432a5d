// Package circuitbreaker 封装sony/gobreaker，附带状态指标与日志
//
// 状态流转：CLOSED → (连续失败达到阈值) → OPEN → (Timeout后) → HALF_OPEN → 成功则CLOSED，失败则OPEN
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/krishivsaini/BookBazaar/pkg/metrics"
)

// Config 熔断器配置
type Config struct {
	MaxRequests         uint32        // 半开状态下允许的探测请求数
	Interval            time.Duration // CLOSED状态下统计窗口，0表示不清零
	Timeout             time.Duration // OPEN状态持续时间
	ConsecutiveFailures uint32        // 连续失败多少次后熔断
}

// DefaultConfig 缓存类依赖的默认配置
func DefaultConfig() Config {
	return Config{
		MaxRequests:         1,
		Interval:            30 * time.Second,
		Timeout:             10 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// Breaker 熔断器
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New 创建熔断器
func New(name string, cfg Config) *Breaker {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
				log.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state changed")
			},
		}),
	}
}

// Execute 通过熔断器执行请求
// 熔断打开时直接返回ErrOpen，不调用fn
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	return err
}

// State 当前状态
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Name 熔断器名称
func (b *Breaker) Name() string {
	return b.cb.Name()
}

// ErrOpen 熔断器打开（或半开状态下探测请求已满）
var ErrOpen = errors.New("circuit breaker is open")
