// Package store reads and writes the flat binary file that persists a
// prefixindex.Index: a 4-byte magic header followed by a concatenation
// of fixed-size records, written once per commit (truncate-and-rewrite
// via a sibling temp file and atomic rename).
package store

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	cidrderrs "github.com/riverrun/cidrd/errs"
	"github.com/riverrun/cidrd/ipv4"
	"github.com/riverrun/cidrd/prefixindex"
)

// Read streams records from path until EOF and returns the rehydrated
// index. A zero-length file yields an empty index. A non-empty file
// whose leading 4 bytes are not the canonical magic is refused with
// StoreCorrupt rather than guessed at: the two legacy offset encodings
// described in the design notes are mutually incompatible with this
// one and must not be silently misread. A trailing partial record (the
// file length is not a multiple of the record size) is treated as EOF,
// not an error. Any other I/O failure is reported as StoreIoError.
func Read(path string) (*prefixindex.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cidrderrs.StoreIoError.Wrap(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, cidrderrs.StoreIoError.Wrap(err)
	}
	idx := prefixindex.New()
	if info.Size() == 0 {
		return idx, nil
	}

	r := bufio.NewReader(f)
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return idx, nil
		}
		return nil, cidrderrs.StoreIoError.Wrap(err)
	}
	if header != magic {
		return nil, cidrderrs.StoreCorrupt.New("%s: unrecognized header %x, expected %x", path, header, magic)
	}

	buf := make([]byte, recordSize)
	for {
		_, err := io.ReadFull(r, buf)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, cidrderrs.StoreIoError.Wrap(err)
		}
		offset, key := decodeRecord(buf)
		if key == 0 {
			continue
		}
		if offset < 1 || offset > 31 {
			continue
		}
		idx.Put(ipv4.FromOffsetKey(uint8(offset), key))
	}
	return idx, nil
}

// Commit writes every Cidr in idx to path, ascending by bucket offset
// and then by key within a bucket, via a sibling temp file renamed
// into place so that a crash mid-write leaves either the previous file
// or the new one, never a half-written one.
func Commit(idx *prefixindex.Index, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(magic[:]); err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	buf := make([]byte, recordSize)
	var writeErr error
	idx.Each(func(c ipv4.Cidr) {
		if writeErr != nil {
			return
		}
		encodeRecord(buf, c.Offset(), c.ShiftedKey())
		if _, err := w.Write(buf); err != nil {
			writeErr = err
		}
	})
	if writeErr != nil {
		return cidrderrs.StoreIoError.Wrap(writeErr)
	}
	if err := w.Flush(); err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	return nil
}
