package perfevent

import (
	"github.com/pkg/errors"
)

// ErrTruncated is the sentinel a TruncatedRecord failure wraps. Callers
// can test for it with errors.Is.
var ErrTruncated = errors.New("perfevent: truncated record")

var errNoByteOrder = errors.New("perfevent: SessionParams.Order is nil")
var errNegativeRegsCount = errors.New("perfevent: SessionParams.RegsCount is negative")

// truncatedf builds a TruncatedRecord failure naming the field that
// could not be read and the number of bytes short.
func truncatedf(field string, want, have int) error {
	return errors.Wrapf(ErrTruncated, "field %s: need %d bytes, have %d", field, want, have)
}
