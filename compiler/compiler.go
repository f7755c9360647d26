// Package compiler streams a whitespace-separated text corpus of CIDR
// literals and writes the binary store format directly, without ever
// building an in-memory prefixindex.Index. Corpora can be large; the
// compiler is a single forward pass over the input.
package compiler

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	cidrderrs "github.com/riverrun/cidrd/errs"
	"github.com/riverrun/cidrd/ipv4"
)

// recordSize matches store.recordSize; duplicated here (rather than
// importing package store) because the compiler and the binary store
// share only the wire layout, not the reader/writer machinery - the
// compiler never builds a prefixindex.Index to hand to store.Commit.
const recordSize = 8 + 4

var magic = [4]byte{'C', 'D', 'B', '1'}

// Build reads CIDR literals from in (one or more per line, whitespace
// separated) and writes the corresponding records to outPath. A literal
// that fails to parse is skipped, not fatal; other literals on the same
// line are still compiled. A network that masks to zero,
// or whose offset falls outside [1,31], is also skipped. The compiler
// does not deduplicate: repeated input lines produce repeated records,
// which the reader then folds together via set insertion.
func Build(in io.Reader, outPath string) error {
	dir := filepath.Dir(outPath)
	tmp, err := os.CreateTemp(dir, filepath.Base(outPath)+".tmp-*")
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
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		c, err := ipv4.ParseCidr(scanner.Text())
		if err != nil {
			continue
		}
		offset := c.Offset()
		if c.Network == 0 || offset < 1 || offset > 31 {
			continue
		}
		encodeRecord(buf, offset, c.ShiftedKey())
		if _, err := w.Write(buf); err != nil {
			return cidrderrs.StoreIoError.Wrap(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	if err := w.Flush(); err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return cidrderrs.StoreIoError.Wrap(err)
	}
	return nil
}

func encodeRecord(buf []byte, offset uint8, key uint32) {
	binary.LittleEndian.PutUint64(buf[0:8], uint64(offset))
	binary.LittleEndian.PutUint32(buf[8:12], key)
}
