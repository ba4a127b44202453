package model

import "errors"

// Error kinds shared by every layer. Lower layers wrap these with
// fmt.Errorf("%w: ...") and handlers classify them with errors.Is.
var (
	// ErrValidation marks bad or missing caller input. No storage access
	// has been attempted.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConcurrency marks a contended update that did not complete within
	// its retry budget.
	ErrConcurrency = errors.New("concurrent update conflict")
	// ErrUpstream marks a failure of the third-party live status provider.
	ErrUpstream = errors.New("upstream error")
	// ErrStorage marks any backing store failure not classified above.
	ErrStorage = errors.New("storage error")

	ErrSoldOut            = errors.New("no seats available")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
