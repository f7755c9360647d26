// Package ipv4 parses and formats dotted-quad IPv4 addresses and CIDR
// literals without delegating to net/netip, which silently accepts
// forms (leading zeros, shorthand) this codec must reject.
package ipv4

import (
	"strconv"
	"strings"

	"github.com/riverrun/cidrd/errs"
)

// Address is a 32-bit IPv4 address in host byte order.
type Address uint32

// Parse accepts only a canonical dotted-quad: four decimal octets in
// [0, 255], separated by dots, each written without a leading zero
// (except the literal octet "0" itself).
func Parse(s string) (Address, error) {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return 0, errs.InvalidAddress.New("%q: expected 4 octets, got %d", s, len(octets))
	}
	var a Address
	for _, part := range octets {
		if part == "" || len(part) > 3 {
			return 0, errs.InvalidAddress.New("%q: invalid octet %q", s, part)
		}
		if part[0] == '0' && len(part) > 1 {
			return 0, errs.InvalidAddress.New("%q: octet %q has a leading zero", s, part)
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return 0, errs.InvalidAddress.New("%q: octet %q is not decimal", s, part)
			}
		}
		v, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, errs.InvalidAddress.Wrap(err)
		}
		a = a<<8 | Address(v)
	}
	return a, nil
}

// String formats the address as a canonical dotted quad.
func (a Address) String() string {
	return strconv.Itoa(int(a>>24&0xff)) + "." +
		strconv.Itoa(int(a>>16&0xff)) + "." +
		strconv.Itoa(int(a>>8&0xff)) + "." +
		strconv.Itoa(int(a&0xff))
}
