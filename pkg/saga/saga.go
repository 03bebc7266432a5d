// Package saga 顺序执行一组本地步骤，失败时按逆序补偿已完成的步骤
//
// 下单流程示例：
//
//	s := saga.NewSaga("place_order", 10*time.Second)
//	s.AddStep("create_order", createOrder, deleteOrder)
//	s.AddStep("reserve_stock", reserveStock, releaseStock)
//	s.AddStep("clear_cart", clearCart, nil)
//	err := s.Execute(ctx)
package saga

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/pkg/metrics"
)

// Step Saga中的一个步骤
// Compensate可以为nil（最后一步通常无需补偿）
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次Saga执行，非并发安全，每次请求新建
type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
}

// NewSaga 创建Saga，timeout<=0表示不设置整体超时
func NewSaga(name string, timeout time.Duration) *Saga {
	return &Saga{
		name:    name,
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 添加步骤，按添加顺序执行，按逆序补偿
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga
// 某步失败时补偿已完成步骤，返回的错误包裹原始错误（可用errors.As取出AppError）
func (s *Saga) Execute(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.SagaExecutionDuration.Observe(time.Since(start).Seconds())
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			s.compensate(context.WithoutCancel(ctx))
			s.record("failure")
			return fmt.Errorf("saga %s timed out before step %s: %w", s.name, step.Name, err)
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				log.Warn().
					Err(err).
					Str("saga", s.name).
					Str("step", step.Name).
					Int("index", i).
					Msg("saga step failed, compensating")
				// 补偿使用不会被取消的Context，避免超时后补偿也失败
				s.compensate(context.WithoutCancel(ctx))
				s.record("failure")
				return fmt.Errorf("saga %s step %s: %w", s.name, step.Name, err)
			}
		}

		s.executed = append(s.executed, step)
	}

	s.record("success")
	return nil
}

// compensate 逆序补偿，单个补偿失败不中断后续补偿
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		metrics.SagaCompensationsTotal.Inc()
		if err := step.Compensate(ctx); err != nil {
			log.Error().
				Err(err).
				Str("saga", s.name).
				Str("step", step.Name).
				Msg("saga compensation failed, manual intervention required")
		}
	}

	s.executed = nil
}

func (s *Saga) record(result string) {
	metrics.SagaExecutionsTotal.WithLabelValues(result).Inc()
}
