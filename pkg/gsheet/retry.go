package gsheet

import (
	"context"
	"math"
	"math/rand"
	"time"

	"google.golang.org/api/googleapi"

	log "github.com/sirupsen/logrus"
)

// retryableStatus lists the API status codes treated as transient.
var retryableStatus = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// retrier re-runs a remote call with exponential backoff on transient API
// errors. Any error that is not a googleapi error with a retryable status
// is returned immediately. The sleep, jitter and log collaborators exist so
// tests can run without real delays.
type retrier struct {
	maxRetries int
	baseDelay  time.Duration
	sleep      func(time.Duration)
	jitter     func() float64 // uniform in [0, 1)
	log        log.FieldLogger
}

func newRetrier(maxRetries int, baseDelay time.Duration, logger log.FieldLogger) *retrier {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &retrier{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      time.Sleep,
		jitter:     rand.Float64,
		log:        logger,
	}
}

// do runs fn, retrying on transient API errors. Total attempts made is
// maxRetries+1; a failure on the final attempt is returned without a
// further sleep. Backoff sleeps are not interruptible: once one begins it
// runs to completion regardless of ctx.
func (r *retrier) do(ctx context.Context, description string, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		gErr, ok := err.(*googleapi.Error)
		if !ok || !retryableStatus[gErr.Code] {
			return err
		}
		if attempt == r.maxRetries {
			return err
		}

		delay := time.Duration(
			float64(r.baseDelay)*math.Pow(2, float64(attempt)) +
				r.jitter()*float64(time.Second),
		)
		r.log.WithFields(log.Fields{
			"status":  gErr.Code,
			"op":      description,
			"attempt": attempt + 1,
			"max":     r.maxRetries,
		}).Warnf("API error %d on %s, retrying in %.2fs", gErr.Code, description, delay.Seconds())
		r.sleep(delay)
	}
}
