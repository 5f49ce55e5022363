// Package retry 提供固定间隔的重试辅助函数，用于对象存储等易受瞬时故障影响的操作.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Do 以固定间隔重试 fn，最多执行 attempts 次.
// fn 返回 nil 即成功；全部失败时返回最后一次错误.
// ctx 取消时立即停止并返回 ctx.Err().
func Do(ctx context.Context, attempts int, interval time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("retry: attempts must be >= 1, got %d", attempts)
	}

	var lastErr error

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		// 最后一次失败后不再等待
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	return lastErr
}

// DoWithAttemptTimeout 同 Do，但每次尝试带独立超时，单次调用挂死不会
// 拖垮整个重试循环.fn 必须尊重传入的 context.
func DoWithAttemptTimeout(ctx context.Context, attempts int, interval, attemptTimeout time.Duration, fn func(ctx context.Context) error) error {
	return Do(ctx, attempts, interval, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		defer cancel()

		return fn(attemptCtx)
	})
}
