package ipv4

import (
	"strconv"
	"strings"

	"github.com/riverrun/cidrd/errs"
)

// PrefixLength is the number of leading significant bits in a Cidr.
// The valid range is [1, 32]; 0 (the default route) is rejected at
// every entry point.
type PrefixLength = uint8

// Cidr is a network address paired with a prefix length. Network
// always has its low 32-p bits cleared.
type Cidr struct {
	Network Address
	Length  PrefixLength
}

// Offset is 32 - Length: the bucket index used by the prefix index
// and the on-disk record format.
func (c Cidr) Offset() uint8 {
	return 32 - c.Length
}

// ShiftedKey is Network right-shifted into the low Length bits. Two
// Cidrs are equal iff their (Length, ShiftedKey) pairs are equal.
func (c Cidr) ShiftedKey() uint32 {
	return uint32(c.Network) >> c.Offset()
}

// String formats the Cidr in "network/length" notation.
func (c Cidr) String() string {
	return c.Network.String() + "/" + strconv.Itoa(int(c.Length))
}

// ParseCidr splits s on "/", parses each side, verifies 1 <= p <= 32,
// and masks the host bits of the network to zero.
func ParseCidr(s string) (Cidr, error) {
	netPart, lenPart, ok := strings.Cut(s, "/")
	if !ok {
		return Cidr{}, errs.InvalidCidr.New("%q: missing '/'", s)
	}
	addr, err := Parse(netPart)
	if err != nil {
		return Cidr{}, errs.InvalidCidr.Wrap(err)
	}
	length, err := strconv.ParseUint(lenPart, 10, 8)
	if err != nil {
		return Cidr{}, errs.InvalidCidr.New("%q: invalid prefix length %q", s, lenPart)
	}
	if length < 1 || length > 32 {
		return Cidr{}, errs.InvalidCidr.New("%q: prefix length %d out of [1,32]", s, length)
	}
	c := Cidr{Network: addr, Length: PrefixLength(length)}
	c.Network = maskHost(c.Network, c.Length)
	return c, nil
}

// FromOffsetKey reconstructs the Cidr matched by the prefix index at
// the given bucket offset and shifted key.
func FromOffsetKey(offset uint8, key uint32) Cidr {
	return Cidr{
		Network: Address(key << offset),
		Length:  32 - offset,
	}
}

func maskHost(a Address, p PrefixLength) Address {
	if p >= 32 {
		return a
	}
	mask := ^Address(0) << (32 - p)
	return a & mask
}
