// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// U32 facade: keys are bare uint32 values.
//

package cbtree

// U32Record is a record keyed by a uint32.
type U32Record = Record[uint32]

// NewU32Record allocates a record keyed by key.
func NewU32Record(key uint32) *U32Record { return &U32Record{key: key} }

// U32Tree is a compact binary tree over uint32 keys.
type U32Tree struct {
	root *U32Record
}

func (t *U32Tree) trait() scalarTraits[uint32] { return scalarTraits[uint32]{} }

// Insert splices rec into the tree, keyed by rec.Key(). If a record with
// the same key already exists, the existing record is returned unchanged
// and ok is false.
func (t *U32Tree) Insert(rec *U32Record) (got *U32Record, ok bool) {
	return insertRecord(&t.root, t.trait(), rec)
}

// Lookup returns the record keyed by key, if present.
func (t *U32Tree) Lookup(key uint32) (*U32Record, bool) {
	return lookupRecord(&t.root, t.trait(), key)
}

// LookupLE returns the record with the largest key <= key, if any.
func (t *U32Tree) LookupLE(key uint32) (*U32Record, bool) {
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupLT returns the record with the largest key < key, if any.
func (t *U32Tree) LookupLT(key uint32) (*U32Record, bool) {
	if m, ok := t.Lookup(key); ok {
		p := prevRecord(&t.root, t.trait(), m)
		return p, p != nil
	}
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupGE returns the record with the smallest key >= key, if any.
func (t *U32Tree) LookupGE(key uint32) (*U32Record, bool) {
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// LookupGT returns the record with the smallest key > key, if any.
func (t *U32Tree) LookupGT(key uint32) (*U32Record, bool) {
	if m, ok := t.Lookup(key); ok {
		n := nextRecord(&t.root, t.trait(), m)
		return n, n != nil
	}
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// First returns the record with the smallest key, if the tree is non-empty.
func (t *U32Tree) First() *U32Record { return firstRecord(&t.root, t.trait()) }

// Last returns the record with the largest key, if the tree is non-empty.
func (t *U32Tree) Last() *U32Record { return lastRecord(&t.root, t.trait()) }

// Next returns the record immediately after rec in key order, if any.
func (t *U32Tree) Next(rec *U32Record) *U32Record { return nextRecord(&t.root, t.trait(), rec) }

// Prev returns the record immediately before rec in key order, if any.
func (t *U32Tree) Prev(rec *U32Record) *U32Record { return prevRecord(&t.root, t.trait(), rec) }

// Delete unlinks rec from the tree. It is a no-op (returns false) if rec is
// not currently linked into this (or any) tree.
func (t *U32Tree) Delete(rec *U32Record) (*U32Record, bool) {
	return deleteRecord(&t.root, t.trait(), rec)
}

// Pick looks up and deletes the record keyed by key in one operation.
func (t *U32Tree) Pick(key uint32) (*U32Record, bool) {
	return pickRecord(&t.root, t.trait(), key)
}
