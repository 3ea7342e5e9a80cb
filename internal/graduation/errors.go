package graduation

import "errors"

// Eligibility errors: the pool cannot graduate yet. Never retried
// automatically; the caller waits for more trading volume or an unpause.
var (
	// ErrNotReady is returned when the base reserve is below the
	// graduation threshold.
	ErrNotReady = errors.New("not ready for graduation: threshold unmet")

	// ErrInsufficientLiquidity is returned when the post-fee base amount
	// is below the configured minimum liquidity.
	ErrInsufficientLiquidity = errors.New("insufficient post-fee liquidity")
)

// Protocol-invariant errors: programming errors in the calling composition.
// Always fatal to the enclosing migration batch.
var (
	// ErrAlreadyExtracted is returned when an extraction operation is
	// called a second time on the same ticket.
	ErrAlreadyExtracted = errors.New("already extracted")

	// ErrTicketConsumed is returned by any ticket operation after the
	// ticket has been consumed by completion.
	ErrTicketConsumed = errors.New("migration ticket already consumed")

	// ErrBaseNotExtracted is returned by completion when the base-asset
	// liquidity was never extracted.
	ErrBaseNotExtracted = errors.New("base asset not extracted")

	// ErrTokensNotExtracted is returned by completion when the liquidity
	// tokens were never extracted.
	ErrTokensNotExtracted = errors.New("tokens not extracted")

	// ErrStakingNotExtracted is returned by completion when the staking
	// tokens were never extracted. Required even when the locked staking
	// amount is zero.
	ErrStakingNotExtracted = errors.New("staking tokens not extracted")
)

// Accounting errors: fatal, abort the batch.
var (
	// ErrAccountingMismatch is returned when drained reserves disagree
	// with the snapshot taken at lock time.
	ErrAccountingMismatch = errors.New("accounting mismatch between snapshot and drained reserves")
)
