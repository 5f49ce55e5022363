package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yeisme/sitevault/pkg/retry"
)

// TestDoSucceedsFirstTry 测试首次成功时不重试.
func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0

	err := retry.Do(context.Background(), 3, time.Millisecond, func() error {
		calls++

		return nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

// TestDoRetriesUntilSuccess 测试失败后重试直至成功.
func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0

	err := retry.Do(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}

		return nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

// TestDoExhaustsAttempts 测试全部失败时返回最后一次错误.
func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	lastErr := errors.New("still failing")

	err := retry.Do(context.Background(), 3, time.Millisecond, func() error {
		calls++

		return lastErr
	})
	if !errors.Is(err, lastErr) {
		t.Errorf("Expected last error, got %v", err)
	}

	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

// TestDoContextCanceled 测试 ctx 取消时立即停止.
func TestDoContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0

	err := retry.Do(ctx, 3, time.Millisecond, func() error {
		calls++

		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if calls != 0 {
		t.Errorf("Expected 0 calls after cancel, got %d", calls)
	}
}

// TestDoWithAttemptTimeoutBoundsEachAttempt 测试挂死的调用被单次超时打断，且每次尝试都重新计时.
func TestDoWithAttemptTimeoutBoundsEachAttempt(t *testing.T) {
	calls := 0

	err := retry.DoWithAttemptTimeout(context.Background(), 2, time.Millisecond, 20*time.Millisecond,
		func(ctx context.Context) error {
			calls++
			// 模拟无响应的后端：只等 ctx 到期
			<-ctx.Done()

			return ctx.Err()
		})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected DeadlineExceeded, got %v", err)
	}

	if calls != 2 {
		t.Errorf("Expected 2 attempts, got %d", calls)
	}
}

// TestDoWithAttemptTimeoutSuccess 测试快速成功不受超时影响.
func TestDoWithAttemptTimeoutSuccess(t *testing.T) {
	err := retry.DoWithAttemptTimeout(context.Background(), 3, time.Millisecond, time.Second,
		func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

// TestDoInvalidAttempts 测试非法 attempts.
func TestDoInvalidAttempts(t *testing.T) {
	err := retry.Do(context.Background(), 0, time.Millisecond, func() error { return nil })
	if err == nil {
		t.Error("Expected error for attempts=0, got nil")
	}
}
