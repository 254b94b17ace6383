// Package controls wraps DOM elements in typed controls. A control holds a
// locator, never an element handle: every operation resolves the element
// again, so controls stay valid across re-renders.
package controls

import (
	"context"
	"fmt"
	"io"
	"time"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	DefaultPresenceTimeout   = 5 * time.Second
	DefaultSuggestionTimeout = 10 * time.Second
)

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Scope carries what every control needs to reach the browser
type Scope struct {
	Driver interfaces.Driver
	Logger logrus.FieldLogger

	// PresenceTimeout bounds IsPresent and the clickable wait before Select
	PresenceTimeout time.Duration
	// SuggestionTimeout bounds the wait for auto-suggest entries
	SuggestionTimeout time.Duration
}

// NewScope - creates scope with default timeouts
func NewScope(driver interfaces.Driver, logger logrus.FieldLogger) Scope {
	return Scope{
		Driver:            driver,
		Logger:            logger,
		PresenceTimeout:   DefaultPresenceTimeout,
		SuggestionTimeout: DefaultSuggestionTimeout,
	}
}

// Log - returns the scope logger, discarding output when none is set
func (s Scope) Log() logrus.FieldLogger {
	if s.Logger == nil {
		return discard
	}
	return s.Logger
}

func (s Scope) presenceTimeout() time.Duration {
	if s.PresenceTimeout <= 0 {
		return DefaultPresenceTimeout
	}
	return s.PresenceTimeout
}

func (s Scope) suggestionTimeout() time.Duration {
	if s.SuggestionTimeout <= 0 {
		return DefaultSuggestionTimeout
	}
	return s.SuggestionTimeout
}

// Wait - polls cond through the driver until it holds. An error from cond is
// returned as is; expiry is reported as ErrTimeout; ctx cancellation stops the poll.
func (s Scope) Wait(ctx context.Context, timeout time.Duration, cond interfaces.Condition) error {
	var condErr error
	err := s.Driver.WaitWithTimeout(func(d interfaces.Driver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		done, err := cond(d)
		condErr = err
		return done, err
	}, timeout)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case condErr != nil:
		return condErr
	}
	return fmt.Errorf("%w after %s", entities.ErrTimeout, timeout)
}
