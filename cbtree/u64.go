// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// U64 facade: keys are bare uint64 values.
//

package cbtree

// U64Record is a record keyed by a uint64.
type U64Record = Record[uint64]

// NewU64Record allocates a record keyed by key.
func NewU64Record(key uint64) *U64Record { return &U64Record{key: key} }

// U64Tree is a compact binary tree over uint64 keys.
type U64Tree struct {
	root *U64Record
}

func (t *U64Tree) trait() scalarTraits[uint64] { return scalarTraits[uint64]{} }

// Insert splices rec into the tree, keyed by rec.Key(). If a record with
// the same key already exists, the existing record is returned unchanged
// and ok is false.
func (t *U64Tree) Insert(rec *U64Record) (got *U64Record, ok bool) {
	return insertRecord(&t.root, t.trait(), rec)
}

// Lookup returns the record keyed by key, if present.
func (t *U64Tree) Lookup(key uint64) (*U64Record, bool) {
	return lookupRecord(&t.root, t.trait(), key)
}

// LookupLE returns the record with the largest key <= key, if any.
func (t *U64Tree) LookupLE(key uint64) (*U64Record, bool) {
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupLT returns the record with the largest key < key, if any.
func (t *U64Tree) LookupLT(key uint64) (*U64Record, bool) {
	if m, ok := t.Lookup(key); ok {
		p := prevRecord(&t.root, t.trait(), m)
		return p, p != nil
	}
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupGE returns the record with the smallest key >= key, if any.
func (t *U64Tree) LookupGE(key uint64) (*U64Record, bool) {
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// LookupGT returns the record with the smallest key > key, if any.
func (t *U64Tree) LookupGT(key uint64) (*U64Record, bool) {
	if m, ok := t.Lookup(key); ok {
		n := nextRecord(&t.root, t.trait(), m)
		return n, n != nil
	}
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// First returns the record with the smallest key, if the tree is non-empty.
func (t *U64Tree) First() *U64Record { return firstRecord(&t.root, t.trait()) }

// Last returns the record with the largest key, if the tree is non-empty.
func (t *U64Tree) Last() *U64Record { return lastRecord(&t.root, t.trait()) }

// Next returns the record immediately after rec in key order, if any.
func (t *U64Tree) Next(rec *U64Record) *U64Record { return nextRecord(&t.root, t.trait(), rec) }

// Prev returns the record immediately before rec in key order, if any.
func (t *U64Tree) Prev(rec *U64Record) *U64Record { return prevRecord(&t.root, t.trait(), rec) }

// Delete unlinks rec from the tree. It is a no-op (returns false) if rec is
// not currently linked into this (or any) tree.
func (t *U64Tree) Delete(rec *U64Record) (*U64Record, bool) {
	return deleteRecord(&t.root, t.trait(), rec)
}

// Pick looks up and deletes the record keyed by key in one operation.
func (t *U64Tree) Pick(key uint64) (*U64Record, bool) {
	return pickRecord(&t.root, t.trait(), key)
}
