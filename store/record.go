package store

import "encoding/binary"

// recordSize is the on-disk size of one record: an 8-byte
// little-endian offset followed by a 4-byte little-endian key.
const recordSize = 8 + 4

// magic identifies the canonical record format (offset = 32 - p, no
// byte reversal, 8-byte little-endian offset field) so that files
// produced by either of the two incompatible legacy encodings are
// refused outright rather than silently misread.
var magic = [4]byte{'C', 'D', 'B', '1'}

func encodeRecord(buf []byte, offset uint8, key uint32) {
	binary.LittleEndian.PutUint64(buf[0:8], uint64(offset))
	binary.LittleEndian.PutUint32(buf[8:12], key)
}

func decodeRecord(buf []byte) (offset uint64, key uint32) {
	offset = binary.LittleEndian.Uint64(buf[0:8])
	key = binary.LittleEndian.Uint32(buf[8:12])
	return offset, key
}
