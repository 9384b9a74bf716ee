// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// ADDR facade: a record's own identity (its memory address) is its key.
// Useful for sets keyed by pointer identity rather than any field of the
// pointed-to value — e.g. a live-object registry.
//

package cbtree

import "unsafe"

// AddrRecord is a record whose key is its own address. It carries no
// separate key field; the address is computed once, at construction, and
// stored purely as an opaque uintptr used for ordering and comparison —
// it is never converted back into a pointer, so this does not run afoul of
// the unsafe.Pointer rules around retaining reachability: AddrRecord stays
// alive through whatever real *AddrRecord references the caller already
// holds, exactly as with any other pointer-keyed container.
type AddrRecord struct {
	rec Record[uintptr]
}

// NewAddrRecord allocates a fresh AddrRecord keyed by its own address.
func NewAddrRecord() *AddrRecord {
	a := &AddrRecord{}
	a.rec.key = uintptr(unsafe.Pointer(a))
	return a
}

// Addr returns the uintptr identity of a.
func (a *AddrRecord) Addr() uintptr { return a.rec.key }

// InTree reports whether a is currently linked into some tree.
func (a *AddrRecord) InTree() bool { return a.rec.InTree() }

// AddrTree is a compact binary tree ordered by record address.
type AddrTree struct {
	root *Record[uintptr]
}

func (t *AddrTree) trait() scalarTraits[uintptr] { return scalarTraits[uintptr]{} }

// Insert links a into the tree. Since every AddrRecord's key is its own
// unique address, Insert can never fail on a duplicate.
func (t *AddrTree) Insert(a *AddrRecord) (*AddrRecord, bool) {
	got, ok := insertRecord(&t.root, t.trait(), &a.rec)
	return toAddrRecord(got), ok
}

// Lookup returns the record at addr, if one is currently linked.
func (t *AddrTree) Lookup(addr uintptr) (*AddrRecord, bool) {
	got, ok := lookupRecord(&t.root, t.trait(), addr)
	return toAddrRecord(got), ok
}

// First returns the record with the smallest address, if any.
func (t *AddrTree) First() *AddrRecord { return toAddrRecord(firstRecord(&t.root, t.trait())) }

// Last returns the record with the largest address, if any.
func (t *AddrTree) Last() *AddrRecord { return toAddrRecord(lastRecord(&t.root, t.trait())) }

// Next returns the record immediately after a by address, if any.
func (t *AddrTree) Next(a *AddrRecord) *AddrRecord {
	return toAddrRecord(nextRecord(&t.root, t.trait(), &a.rec))
}

// Prev returns the record immediately before a by address, if any.
func (t *AddrTree) Prev(a *AddrRecord) *AddrRecord {
	return toAddrRecord(prevRecord(&t.root, t.trait(), &a.rec))
}

// Delete unlinks a from the tree.
func (t *AddrTree) Delete(a *AddrRecord) (*AddrRecord, bool) {
	got, ok := deleteRecord(&t.root, t.trait(), &a.rec)
	return toAddrRecord(got), ok
}

// Pick looks up and deletes the record at addr in one operation.
func (t *AddrTree) Pick(addr uintptr) (*AddrRecord, bool) {
	got, ok := pickRecord(&t.root, t.trait(), addr)
	return toAddrRecord(got), ok
}

// toAddrRecord recovers the enclosing *AddrRecord from one of its embedded
// Record[uintptr] fields. Safe because rec is always the first (and only)
// field of AddrRecord, so their addresses coincide.
func toAddrRecord(rec *Record[uintptr]) *AddrRecord {
	if rec == nil {
		return nil
	}
	return (*AddrRecord)(unsafe.Pointer(rec))
}
