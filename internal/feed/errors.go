package feed

import "errors"

// ErrNoSource indicates the provider has no media server configured.
var ErrNoSource = errors.New("no media server configured")
