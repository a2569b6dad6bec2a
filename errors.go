package xaholder

import "github.com/gedmarc/xaholder/internal/core"

// Sentinel errors for error inspection with errors.Is. These use the
// sentinel.Error const pattern (see internal/sentinel) instead of
// errors.New vars, so they are immutable and comparable across the wrapped
// error chain.
const (
	// ErrConnectionDead is returned by GetHandle when the validator
	// determines the physical connection is unusable. The caller must
	// discard the holder; the pool allocates a fresh one.
	ErrConnectionDead = core.ErrConnectionDead

	// ErrUnilateralRollback is returned by Release when the transaction
	// manager reports that it already rolled back the enclosing
	// transaction during delist.
	ErrUnilateralRollback = core.ErrUnilateralRollback

	// ErrDelistFailed is returned by Release for any other delist failure.
	ErrDelistFailed = core.ErrDelistFailed

	// ErrRequeueFailed is returned by Release when the pool rejects the
	// holder. usage_count is restored to its pre-release value before this
	// error is returned.
	ErrRequeueFailed = core.ErrRequeueFailed

	// ErrInvalidTransition is returned when a state transition is rejected:
	// a programming error, not a runtime condition.
	ErrInvalidTransition = core.ErrInvalidTransition

	// ErrHolderClosed is returned by GetHandle when called on a holder that
	// has already transitioned to CLOSED.
	ErrHolderClosed = core.ErrHolderClosed

	// ErrHolderPoisoned is returned by GetHandle when PoisonPolicyPoison is
	// configured and a prior release left the holder poisoned after a
	// requeue failure.
	ErrHolderPoisoned = core.ErrHolderPoisoned
)
