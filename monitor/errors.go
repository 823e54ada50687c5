package monitor

import (
	"errors"
	"fmt"
)

// failure classes of a run
var (
	ErrRefresh = fmt.Errorf("data refresh failed")
	ErrInput   = fmt.Errorf("missing or malformed input")
	ErrRender  = fmt.Errorf("render failed")
	ErrUpload  = fmt.Errorf("upload failed")
)

// process exit codes
const (
	ExitOK      = 0
	ExitOther   = 1
	ExitRefresh = 2
	ExitInput   = 3
	ExitRender  = 4
	ExitUpload  = 5
)

// ExitCode maps a run error to the exit code of its class.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrRefresh):
		return ExitRefresh
	case errors.Is(err, ErrInput):
		return ExitInput
	case errors.Is(err, ErrRender):
		return ExitRender
	case errors.Is(err, ErrUpload):
		return ExitUpload
	default:
		return ExitOther
	}
}
