package source

import "errors"

var (
	// ErrSourceUnavailable means the snapshot could not be fetched at all.
	ErrSourceUnavailable = errors.New("order source unavailable")
	// ErrSourceMalformed means the snapshot was fetched but is not a usable
	// order sheet.
	ErrSourceMalformed = errors.New("order source malformed")
)
