package script

import "errors"

// ErrRunnerClosed is returned when running code on a closed Runner.
var ErrRunnerClosed = errors.New("script runner is closed")
