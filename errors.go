// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import (
	"errors"
	"fmt"
)

var errMemory = errors.New("unable to free memory or resize the node arena")

// status is embedded in Manager to give it a sticky error flag: once
// set, it chains subsequent errors together rather than overwriting
// them, so a failure deep in a computation is not silently lost by a
// later unrelated check.
type status struct {
	err error
}

// Error returns the error status of the Manager, or the empty string if
// there has been no error since construction (or since the last call that
// cleared it, if the caller chooses to do so).
func (s *status) Error() string {
	if s.err == nil {
		return ""
	}
	return s.err.Error()
}

// Errored reports whether the Manager has recorded an error.
func (s *status) Errored() bool {
	return s.err != nil
}

// clearError resets the sticky error flag. Used by callers that want to
// keep using a Manager after inspecting (and handling) an error.
func (s *status) clearError() {
	s.err = nil
}

func (s *status) seterror(format string, a ...interface{}) {
	if s.err != nil {
		format = format + "; " + s.err.Error()
	}
	s.err = fmt.Errorf(format, a...)
}
