// Package prefixindex implements the in-memory prefix set: 32 buckets
// keyed by bucket offset (32 - prefix length), each an ordered set of
// shifted network keys. Lookup probes every populated bucket once,
// from most specific to least specific.
package prefixindex

import (
	"sort"

	"github.com/riverrun/cidrd/ipv4"
)

const numBuckets = 32

// Index is the prefix set. The zero value is an empty index, ready to
// use. It owns its 32 buckets directly; there is no sharing beyond
// whatever the caller layers on top (see package service for the
// readers-writer guard used by the REST adapter).
type Index struct {
	buckets [numBuckets][]uint32
}

// New returns an empty Index.
func New() *Index {
	return &Index{}
}

// Put inserts c into its bucket. Idempotent: inserting an
// already-present Cidr is a no-op. A Cidr whose length is out of
// [1,32] is silently dropped; offset 32 (length 0, the default route)
// is never populated.
func (idx *Index) Put(c ipv4.Cidr) {
	offset, key, ok := offsetKey(c)
	if !ok {
		return
	}
	bucket := idx.buckets[offset]
	i, found := search(bucket, key)
	if found {
		return
	}
	idx.buckets[offset] = insertAt(bucket, i, key)
}

// Del removes c from its bucket if present. Silent no-op when absent
// or when c's length is out of range.
func (idx *Index) Del(c ipv4.Cidr) {
	offset, key, ok := offsetKey(c)
	if !ok {
		return
	}
	bucket := idx.buckets[offset]
	i, found := search(bucket, key)
	if !found {
		return
	}
	idx.buckets[offset] = append(bucket[:i], bucket[i+1:]...)
}

// Has reports whether c is present.
func (idx *Index) Has(c ipv4.Cidr) bool {
	offset, key, ok := offsetKey(c)
	if !ok {
		return false
	}
	_, found := search(idx.buckets[offset], key)
	return found
}

// Lookup returns every stored Cidr that covers a, ordered from most
// specific (largest prefix length) to least specific (smallest).
func (idx *Index) Lookup(a ipv4.Address) []ipv4.Cidr {
	var matches []ipv4.Cidr
	for offset := uint8(0); offset < numBuckets; offset++ {
		bucket := idx.buckets[offset]
		if len(bucket) == 0 {
			continue
		}
		key := uint32(a) >> offset
		if _, found := search(bucket, key); found {
			matches = append(matches, ipv4.FromOffsetKey(offset, key))
		}
	}
	return matches
}

// Each calls fn once per stored Cidr, walking buckets in ascending
// offset order and, within a bucket, keys in ascending order. This is
// the order package store's commit writes records in.
func (idx *Index) Each(fn func(ipv4.Cidr)) {
	for offset := uint8(0); offset < numBuckets; offset++ {
		for _, key := range idx.buckets[offset] {
			fn(ipv4.FromOffsetKey(offset, key))
		}
	}
}

// Len returns the total number of stored Cidrs across all buckets.
func (idx *Index) Len() int {
	n := 0
	for _, b := range idx.buckets {
		n += len(b)
	}
	return n
}

func offsetKey(c ipv4.Cidr) (offset uint8, key uint32, ok bool) {
	if c.Length < 1 || c.Length > 32 {
		return 0, 0, false
	}
	return c.Offset(), c.ShiftedKey(), true
}

func search(bucket []uint32, key uint32) (index int, found bool) {
	i := sort.Search(len(bucket), func(i int) bool { return bucket[i] >= key })
	return i, i < len(bucket) && bucket[i] == key
}

func insertAt(bucket []uint32, i int, key uint32) []uint32 {
	bucket = append(bucket, 0)
	copy(bucket[i+1:], bucket[i:])
	bucket[i] = key
	return bucket
}
