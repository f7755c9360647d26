// Package errs defines the error kinds shared by the index, store,
// compiler and service packages.
package errs

import "github.com/zeebo/errs"

var (
	InvalidAddress = errs.Class("invalid address")
	InvalidCidr    = errs.Class("invalid cidr")
	StoreIoError   = errs.Class("store io error")
	StoreCorrupt   = errs.Class("store corrupt")
	TransportError = errs.Class("transport error")
)
