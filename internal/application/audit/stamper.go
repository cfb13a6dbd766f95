// Package audit centralizes the acting-user guard and the clock used for
// audit stamping, so every service stamps mutations the same way.
package audit

import (
	"context"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
)

// Stamper verifies acting users and supplies stamp times. The zero Now means
// time.Now; tests inject a fixed clock.
type Stamper struct {
	users shared.ActingUserChecker
	now   func() time.Time
}

// NewStamper creates a Stamper backed by the given acting-user checker
func NewStamper(users shared.ActingUserChecker) *Stamper {
	return &Stamper{users: users, now: time.Now}
}

// WithClock overrides the stamp clock, for tests
func (s *Stamper) WithClock(now func() time.Time) *Stamper {
	s.now = now
	return s
}

// Now returns the current stamp time
func (s *Stamper) Now() time.Time {
	return s.now()
}

// VerifyActor returns a typed failure when the acting user id does not belong
// to an existing active account. It runs before any mutation so a bad actor
// id never changes storage.
func (s *Stamper) VerifyActor(ctx context.Context, actingUserID string) error {
	if actingUserID == "" {
		return shared.NewActingUserError(actingUserID)
	}
	exists, err := s.users.ExistsActive(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewActingUserError(actingUserID)
	}
	return nil
}
