// Package retry bounds startup probes against backing stores with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// Do runs op until it succeeds, ctx ends, or maxElapsed passes.
// A maxElapsed of zero or less runs op exactly once.
func Do(ctx context.Context, logger log.FieldLogger, name string, maxElapsed time.Duration, op func(context.Context) error) error {
	if maxElapsed <= 0 {
		return op(ctx)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = maxElapsed

	notify := func(err error, next time.Duration) {
		if logger == nil {
			return
		}
		logger.WithFields(log.Fields{
			"component": name,
			"retry_in":  next.String(),
		}).WithError(err).Warn("startup probe failed, retrying")
	}

	return backoff.RetryNotify(func() error {
		return op(ctx)
	}, backoff.WithContext(bo, ctx), notify)
}
