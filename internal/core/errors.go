package core

import "github.com/gedmarc/xaholder/internal/sentinel"

// Sentinel errors for the holder's public error kinds. Each is a distinct
// const value so callers can discriminate with errors.Is even after the
// error has been wrapped with additional context.
const (
	// ErrConnectionDead is returned when the validator determines the
	// physical connection is unusable. The caller must discard the holder;
	// the pool allocates a fresh one.
	ErrConnectionDead = sentinel.Error("xaholder: connection is dead")

	// ErrUnilateralRollback is returned by Release when the transaction
	// manager reports that it already rolled back the enclosing transaction
	// during delist. The caller must treat the transaction as rolled back.
	ErrUnilateralRollback = sentinel.Error("xaholder: transaction manager reported unilateral rollback during delist")

	// ErrDelistFailed is returned by Release for any other delist failure.
	ErrDelistFailed = sentinel.Error("xaholder: delist from transaction failed")

	// ErrRequeueFailed is returned by Release when the pool rejects the
	// holder. usage_count is restored to its pre-release value before this
	// error is returned.
	ErrRequeueFailed = sentinel.Error("xaholder: requeue to pool failed")

	// ErrHolderClosed is returned by GetHandle when called on a holder that
	// has already transitioned to CLOSED.
	ErrHolderClosed = sentinel.Error("xaholder: holder is closed")

	// ErrHolderPoisoned is returned by GetHandle when PoisonPolicyPoison is
	// configured and a prior release left the holder poisoned after a
	// requeue failure.
	ErrHolderPoisoned = sentinel.Error("xaholder: holder is poisoned")
)
