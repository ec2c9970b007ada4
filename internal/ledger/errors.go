package ledger

import "errors"

var (
	// ErrInvalidAmount rejects non-positive or non-finite amounts offered
	// to any append or submit operation.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrMissingCampaign rejects a donation confirmation without a
	// required campaign selection.
	ErrMissingCampaign = errors.New("a campaign selection is required")

	// ErrStorageUnavailable marks a failed persistence read or write. The
	// ledger keeps operating in memory for the rest of the session.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
