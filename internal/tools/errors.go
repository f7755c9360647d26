package tools

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"syscall"
)

var closeErrs = []error{io.EOF, net.ErrClosed, io.ErrClosedPipe, os.ErrClosed, syscall.EPIPE, syscall.ECONNRESET, context.Canceled, context.DeadlineExceeded}

// IsCloseOrCanceled reports whether err represents a listener/server
// shutting down rather than an unexpected failure, so callers can skip
// logging it as fatal during a clean shutdown.
func IsCloseOrCanceled(err error) bool {
	for _, e := range closeErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return strings.Contains(err.Error(), "use of closed network connection")
}
