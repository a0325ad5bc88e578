package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// errPermanent marks a failure retrying can't fix, repeater stops on it
var errPermanent = errors.New("permanent failure")

// withRetry runs fn with backoff as long as it fails on SQLite lock errors
func withRetry(ctx context.Context, op string, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err
		}
		return fmt.Errorf("%w: %w", errPermanent, err)
	}, errPermanent)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
