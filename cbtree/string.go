// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// ST facade: keys are ordinary Go strings (callers must not embed NUL
// bytes that would confuse an external C caller; the engine itself does
// not care).
//

package cbtree

// StringRecord is a record keyed by a string.
type StringRecord = Record[string]

// NewStringRecord allocates a record keyed by key.
func NewStringRecord(key string) *StringRecord { return &StringRecord{key: key} }

// StringTree is a compact binary tree over string keys, ordered
// lexicographically by byte value.
type StringTree struct {
	root *StringRecord
}

func (t *StringTree) trait() stringTraits { return stringTraits{} }

// Root returns the tree's root record, or nil if the tree is empty. It
// exists for diagnostic walks (see Dump); ordinary operations never need
// it, since every other StringTree method takes a key or a record instead
// of a raw tree position.
func (t *StringTree) Root() *StringRecord { return t.root }

// Insert splices rec into the tree, keyed by rec.Key(). If a record with
// the same key already exists, the existing record is returned unchanged
// and ok is false.
func (t *StringTree) Insert(rec *StringRecord) (got *StringRecord, ok bool) {
	return insertRecord(&t.root, t.trait(), rec)
}

// Lookup returns the record keyed by key, if present.
func (t *StringTree) Lookup(key string) (*StringRecord, bool) {
	return lookupRecord(&t.root, t.trait(), key)
}

// LookupLE returns the record with the largest key <= key, if any.
func (t *StringTree) LookupLE(key string) (*StringRecord, bool) {
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupLT returns the record with the largest key < key, if any.
func (t *StringTree) LookupLT(key string) (*StringRecord, bool) {
	if m, ok := t.Lookup(key); ok {
		p := prevRecord(&t.root, t.trait(), m)
		return p, p != nil
	}
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupGE returns the record with the smallest key >= key, if any.
func (t *StringTree) LookupGE(key string) (*StringRecord, bool) {
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// LookupGT returns the record with the smallest key > key, if any.
func (t *StringTree) LookupGT(key string) (*StringRecord, bool) {
	if m, ok := t.Lookup(key); ok {
		n := nextRecord(&t.root, t.trait(), m)
		return n, n != nil
	}
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// First returns the record with the smallest key, if the tree is non-empty.
func (t *StringTree) First() *StringRecord { return firstRecord(&t.root, t.trait()) }

// Last returns the record with the largest key, if the tree is non-empty.
func (t *StringTree) Last() *StringRecord { return lastRecord(&t.root, t.trait()) }

// Next returns the record immediately after rec in key order, if any.
func (t *StringTree) Next(rec *StringRecord) *StringRecord {
	return nextRecord(&t.root, t.trait(), rec)
}

// Prev returns the record immediately before rec in key order, if any.
func (t *StringTree) Prev(rec *StringRecord) *StringRecord {
	return prevRecord(&t.root, t.trait(), rec)
}

// Delete unlinks rec from the tree.
func (t *StringTree) Delete(rec *StringRecord) (*StringRecord, bool) {
	return deleteRecord(&t.root, t.trait(), rec)
}

// Pick looks up and deletes the record keyed by key in one operation.
func (t *StringTree) Pick(key string) (*StringRecord, bool) {
	return pickRecord(&t.root, t.trait(), key)
}
