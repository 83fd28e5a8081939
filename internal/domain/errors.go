package domain

import (
	"errors"
	"fmt"
)

// Validation errors are raised before any remote call is issued. Anything the
// remote API rejects comes back as the SDK's own error type, so callers can
// tell a local pre-flight failure from a processor rejection with errors.Is /
// errors.As.
var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrMissingField   = errors.New("missing required field")
	ErrNoTransfers    = errors.New("no transfer instructions supplied")
	ErrBadProbeCount  = errors.New("bank verification requires exactly two probe amounts")
)

// MissingField wraps ErrMissingField with the field name.
func MissingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

// PartialTransferError reports a multi-transfer payment that captured its
// charge but failed partway through the transfer fan-out. The charge is not
// reversed automatically; the caller decides whether to compensate.
type PartialTransferError struct {
	ChargeID  string
	Completed []TransferResult
	Err       error
}

func (e *PartialTransferError) Error() string {
	return fmt.Sprintf("multi-transfer payment: charge %s captured, %d transfer(s) completed before failure: %v",
		e.ChargeID, len(e.Completed), e.Err)
}

func (e *PartialTransferError) Unwrap() error { return e.Err }
