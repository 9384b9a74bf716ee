// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// IS facade: keys are pointers to strings, so a tree holding many long or
// frequently-shared strings pays only one pointer per record, dereferencing
// only when a comparison is actually needed.
//

package cbtree

// IndirectStringRecord is a record keyed by a *string. The string itself
// must outlive the record; the tree never copies or owns it.
type IndirectStringRecord = Record[*string]

// NewIndirectStringRecord allocates a record keyed by key. The caller
// retains ownership of the string key points at.
func NewIndirectStringRecord(key *string) *IndirectStringRecord {
	return &IndirectStringRecord{key: key}
}

// IndirectStringTree is a compact binary tree over *string keys, ordered
// lexicographically by the pointed-to string's byte value.
type IndirectStringTree struct {
	root *IndirectStringRecord
}

func (t *IndirectStringTree) trait() indirectStringTraits { return indirectStringTraits{} }

// Insert splices rec into the tree, keyed by *rec.Key(). If a record with
// an equal string already exists, the existing record is returned
// unchanged and ok is false.
func (t *IndirectStringTree) Insert(rec *IndirectStringRecord) (got *IndirectStringRecord, ok bool) {
	return insertRecord(&t.root, t.trait(), rec)
}

// Lookup returns the record keyed by *key, if present.
func (t *IndirectStringTree) Lookup(key *string) (*IndirectStringRecord, bool) {
	return lookupRecord(&t.root, t.trait(), key)
}

// LookupLE returns the record with the largest key <= *key, if any.
func (t *IndirectStringTree) LookupLE(key *string) (*IndirectStringRecord, bool) {
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupLT returns the record with the largest key < *key, if any.
func (t *IndirectStringTree) LookupLT(key *string) (*IndirectStringRecord, bool) {
	if m, ok := t.Lookup(key); ok {
		p := prevRecord(&t.root, t.trait(), m)
		return p, p != nil
	}
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupGE returns the record with the smallest key >= *key, if any.
func (t *IndirectStringTree) LookupGE(key *string) (*IndirectStringRecord, bool) {
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// LookupGT returns the record with the smallest key > *key, if any.
func (t *IndirectStringTree) LookupGT(key *string) (*IndirectStringRecord, bool) {
	if m, ok := t.Lookup(key); ok {
		n := nextRecord(&t.root, t.trait(), m)
		return n, n != nil
	}
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// First returns the record with the smallest key, if the tree is non-empty.
func (t *IndirectStringTree) First() *IndirectStringRecord { return firstRecord(&t.root, t.trait()) }

// Last returns the record with the largest key, if the tree is non-empty.
func (t *IndirectStringTree) Last() *IndirectStringRecord { return lastRecord(&t.root, t.trait()) }

// Next returns the record immediately after rec in key order, if any.
func (t *IndirectStringTree) Next(rec *IndirectStringRecord) *IndirectStringRecord {
	return nextRecord(&t.root, t.trait(), rec)
}

// Prev returns the record immediately before rec in key order, if any.
func (t *IndirectStringTree) Prev(rec *IndirectStringRecord) *IndirectStringRecord {
	return prevRecord(&t.root, t.trait(), rec)
}

// Delete unlinks rec from the tree.
func (t *IndirectStringTree) Delete(rec *IndirectStringRecord) (*IndirectStringRecord, bool) {
	return deleteRecord(&t.root, t.trait(), rec)
}

// Pick looks up and deletes the record keyed by *key in one operation.
func (t *IndirectStringTree) Pick(key *string) (*IndirectStringRecord, bool) {
	return pickRecord(&t.root, t.trait(), key)
}
