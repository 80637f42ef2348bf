package billing

import "errors"

// Typed failures the engine hands back to its caller. Handlers match with
// errors.Is and translate to HTTP responses; nothing here carries partial
// state (registration rolls back completely on any of them).
var (
	// ErrInvalidDueDay means the requested billing day does not exist in
	// the target month (e.g. 31 in April). The operator must pick another
	// day; the engine never clamps.
	ErrInvalidDueDay = errors.New("billing: due day does not exist in target month")

	// ErrUnknownMember means the registration referenced a member id that
	// does not resolve.
	ErrUnknownMember = errors.New("billing: unknown member")

	// ErrInvalidAmount means the payment amount is negative.
	ErrInvalidAmount = errors.New("billing: amount must be non-negative")

	// ErrInvalidDate means a registration date did not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("billing: invalid date")
)
