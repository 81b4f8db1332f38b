package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// OpenWithRetry opens a pool for driver/dsn and pings it up to attempts
// times, sleeping delay between tries. onFailure, when non-nil, is called
// after every failed ping with the 1-based attempt number. The last ping
// error is returned once attempts are exhausted.
func OpenWithRetry(ctx context.Context, driver, dsn string, attempts int, delay time.Duration, onFailure func(attempt int, err error)) (*sql.DB, error) {
	if attempts < 1 {
		attempts = 1
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	attempt := 0
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			if onFailure != nil {
				onFailure(attempt, err)
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempt, err)
	}

	return db, nil
}
