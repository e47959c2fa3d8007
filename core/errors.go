package core

import "errors"

// ErrEmptyInput is returned from the public decode entry points when the
// input buffer is empty. It is the only hard failure the decode pipeline
// surfaces; every other problem is downgraded to a warning or per-page
// diagnostic.
var ErrEmptyInput = errors.New("empty input buffer")
