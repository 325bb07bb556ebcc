package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sandevgo/anjali/pkg/log"
)

type Operation = func() error

// Config describes an exponential backoff. Attempts = MaxRetries + 1.
type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

// NewDefaultConfig suits network handshakes at start-up: about half a
// minute in total before giving up.
func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    5,
		BackoffFactor: 2,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      15 * time.Second,
		Jitter:        100 * time.Millisecond,
	}
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent wraps err so Do returns it without another attempt.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{config: config}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

// Delay is the wait before retry number attempt (0-based), without jitter.
func (c *Config) Delay(attempt int) time.Duration {
	d := float64(c.InitialDelay)
	for range attempt {
		d *= c.BackoffFactor
		if d >= float64(c.MaxDelay) {
			return c.MaxDelay
		}
	}
	return min(time.Duration(d), c.MaxDelay)
}

func (r *Retrier) Do(ctx context.Context, op Operation) error {
	logger := log.FromCtx(ctx)

	var err error
	for attempt := 0; ; attempt++ {
		if err = op(); err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= r.config.MaxRetries {
			return err
		}

		wait := r.config.Delay(attempt)
		if r.config.Jitter > 0 {
			wait += rand.N(r.config.Jitter)
		}
		logger.Debug().Err(err).Int("attempt", attempt+1).Dur("wait", wait).Msg("retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
