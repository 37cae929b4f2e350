package common

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestSafeGoWithError(t *testing.T) {
	ctx := context.Background()

	t.Run("正常返回nil错误", func(t *testing.T) {
		errChan := make(chan error, 1)
		SafeGoWithError(ctx, "chunking-ok", func() error {
			return nil
		}, errChan)

		select {
		case err := <-errChan:
			if err != nil {
				t.Errorf("Expected nil error, got: %v", err)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("Did not receive error response in time")
		}
	})

	t.Run("任务错误透传", func(t *testing.T) {
		taskErr := fmt.Errorf("model call failed")
		errChan := make(chan error, 1)
		SafeGoWithError(ctx, "chunking-fail", func() error {
			return taskErr
		}, errChan)

		select {
		case err := <-errChan:
			if err != taskErr {
				t.Errorf("Expected task error, got: %v", err)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("Did not receive error response in time")
		}
	})

	t.Run("panic被转换为错误", func(t *testing.T) {
		errChan := make(chan error, 1)
		SafeGoWithError(ctx, "chunking-panic", func() error {
			panic("worker exploded")
		}, errChan)

		select {
		case err := <-errChan:
			if err == nil {
				t.Error("Expected panic to be converted to error")
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("Did not receive error response in time")
		}
	})
}

func TestSafeGo(t *testing.T) {
	ctx := context.Background()

	t.Run("goroutine中panic被捕获", func(t *testing.T) {
		done := make(chan bool, 1)
		SafeGo(ctx, "panic-goroutine", func() {
			defer func() {
				done <- true
			}()
			panic("intentional panic")
		})

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Error("Goroutine did not complete in time")
		}
	})
}
