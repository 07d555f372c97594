package etw

import "github.com/pkg/errors"

// ErrOsCallFailure is the sentinel an OsCallFailure wraps: a
// TdhGetEventMapInformation call returned a status this package did
// not expect at that point in the two-phase probe/allocate protocol.
var ErrOsCallFailure = errors.New("etw: os call failure")

// osCallFailuref builds an OsCallFailure naming the call and the
// status it returned.
func osCallFailuref(call string, status uint32) error {
	return errors.Wrapf(ErrOsCallFailure, "%s: status %#x", call, status)
}
