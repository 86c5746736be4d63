// Package testutil holds helpers for tests that drive the line-mode host
// from another goroutine.
package testutil

import (
	"context"
	"fmt"
	"time"
)

// Default polling parameters for host tests.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultInterval = 5 * time.Millisecond
)

// Poll repeatedly checks condition until it returns true, ctx is done, or
// timeout expires.
func Poll(ctx context.Context, condition func() bool, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if condition() {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("timeout waiting for condition (threshold: %v)", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// WaitForState polls getter until predicate accepts its value, returning
// that value.
func WaitForState[T any](ctx context.Context, getter func() T, predicate func(T) bool, timeout, interval time.Duration) (T, error) {
	var last T
	err := Poll(ctx, func() bool {
		last = getter()
		return predicate(last)
	}, timeout, interval)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("waiting for %T: %w", zero, err)
	}
	return last, nil
}
